package service

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrTitleRequired = errors.New("post title is required")
	ErrSlugTaken     = errors.New("post slug already in use")
)

// PostService wraps blog post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search   string
	Status   string
	TagNames []string
	Page     int
	PerPage  int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts          []db.Post
	Total          int64
	PublishedCount int64
	DraftCount     int64
	TotalPages     int
	Page           int
	PerPage        int
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title       string
	Slug        string
	Summary     string
	Content     string
	TagNames    []string
	UserID      uint
	CoverURL    string
	CoverWidth  int
	CoverHeight int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Get fetches a post by id with tags preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by slug with tags preloaded.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("User").
		Where("slug = ?", strings.TrimSpace(slug)).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post and associates tags in a transaction.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}

	post := db.Post{
		Slug:        slug,
		Title:       title,
		Summary:     strings.TrimSpace(input.Summary),
		Content:     input.Content,
		Status:      "draft",
		UserID:      input.UserID,
		CoverURL:    strings.TrimSpace(input.CoverURL),
		CoverWidth:  input.CoverWidth,
		CoverHeight: input.CoverHeight,
		ReadingTime: calculateReadingTime(input.Content),
	}

	return s.saveWithTags(&post, input.TagNames)
}

// Update applies updates to an existing post.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	existing.Title = title
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		existing.Slug = slug
	}
	existing.Summary = strings.TrimSpace(input.Summary)
	existing.Content = input.Content
	existing.CoverURL = strings.TrimSpace(input.CoverURL)
	existing.CoverWidth = input.CoverWidth
	existing.CoverHeight = input.CoverHeight
	existing.ReadingTime = calculateReadingTime(input.Content)

	return s.saveWithTags(&existing, input.TagNames)
}

// Publish 将文章标记为已发布并记录发布时间。
func (s *PostService) Publish(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       "published",
		"published_at": now,
	}
	if err := s.db.Model(&db.Post{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Unpublish 将文章撤回为草稿。
func (s *PostService) Unpublish(id uint) (*db.Post, error) {
	result := s.db.Model(&db.Post{}).Where("id = ?", id).Update("status", "draft")
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return s.Get(id)
}

// Delete removes a post by id.
func (s *PostService) Delete(id uint) error {
	return s.db.Delete(&db.Post{}, id).Error
}

// List provides paginated posts with aggregated counters based on filters.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	modelQuery := s.applyFilters(s.db.Model(&db.Post{}), filter)
	if err := modelQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	var posts []db.Post
	dataQuery := s.applyFilters(s.db.Model(&db.Post{}).Preload("Tags").Preload("User"), filter)

	orderBy := "posts.created_at desc"
	if strings.EqualFold(filter.Status, "published") {
		orderBy = "posts.published_at desc, posts.id desc"
	}

	if err := dataQuery.Order(orderBy).Limit(result.PerPage).Offset(offset).Find(&posts).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&db.Post{}).Where("status = ?", "published").Count(&result.PublishedCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&db.Post{}).Where("status = ?", "draft").Count(&result.DraftCount).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	result.Posts = posts
	return result, nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("posts.title LIKE ? OR posts.summary LIKE ? OR posts.content LIKE ?", like, like, like)
	}

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("posts.status = ?", status)
	}

	names := make([]string, 0, len(filter.TagNames))
	for _, name := range filter.TagNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) > 0 {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name IN ?", names).
			Distinct("posts.*")
	}

	return query
}

// saveWithTags 在事务中保存文章并以名称查找或创建标签后替换关联。
func (s *PostService) saveWithTags(post *db.Post, tagNames []string) (*db.Post, error) {
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return ErrSlugTaken
			}
			return err
		}

		tags := make([]db.Tag, 0, len(tagNames))
		seen := make(map[string]struct{}, len(tagNames))
		for _, name := range tagNames {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			if _, dup := seen[trimmed]; dup {
				continue
			}
			seen[trimmed] = struct{}{}

			var tag db.Tag
			if err := tx.Where("name = ?", trimmed).FirstOrCreate(&tag, db.Tag{Name: trimmed}).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}

		return tx.Model(post).Association("Tags").Replace(tags)
	}); err != nil {
		return nil, err
	}

	return s.Get(post.ID)
}

// ListTags returns all tags ordered by name.
func (s *PostService) ListTags() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将标题转换为 URL 友好的 slug，非 ASCII 标题回退为时间戳形式。
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	slug := slugInvalidChars.ReplaceAllString(lowered, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post-" + time.Now().Format("20060102150405")
	}
	if len(slug) > 120 {
		slug = strings.Trim(slug[:120], "-")
	}
	return slug
}

const wordsPerMinute = 200

// calculateReadingTime 以每分钟 200 词估算阅读时长，至少 1 分钟。
func calculateReadingTime(content string) int {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 1
	}

	words := len(strings.Fields(trimmed))
	// 中文等 CJK 内容几乎不含空格，按字符数估算
	if words < utf8.RuneCountInString(trimmed)/4 {
		words = utf8.RuneCountInString(trimmed) / 2
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
