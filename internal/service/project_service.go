package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService 管理作品集项目条目。
type ProjectService struct {
	db *gorm.DB
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Title       string
	Summary     string
	Description string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	TechStack   []string
	RepoURL     string
	DemoURL     string
	Featured    bool
	Status      string
	SortOrder   int
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// List returns projects ordered by sort value; onlyPublished restricts to
// publicly visible entries.
func (s *ProjectService) List(onlyPublished bool) ([]db.Project, error) {
	query := s.db.Model(&db.Project{})
	if onlyPublished {
		query = query.Where("status = ?", "published")
	}

	var projects []db.Project
	if err := query.Order("sort_order asc, id desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get fetches a project by id.
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create persists a new project entry.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("project title is required")
	}

	project := db.Project{
		Title:       title,
		Summary:     strings.TrimSpace(input.Summary),
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		ImageWidth:  input.ImageWidth,
		ImageHeight: input.ImageHeight,
		TechStack:   joinTechStack(input.TechStack),
		RepoURL:     strings.TrimSpace(input.RepoURL),
		DemoURL:     strings.TrimSpace(input.DemoURL),
		Featured:    input.Featured,
		Status:      normalizeProjectStatus(input.Status),
		SortOrder:   input.SortOrder,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies updates to an existing project entry.
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("project title is required")
	}

	project.Title = title
	project.Summary = strings.TrimSpace(input.Summary)
	project.Description = input.Description
	project.ImageURL = strings.TrimSpace(input.ImageURL)
	project.ImageWidth = input.ImageWidth
	project.ImageHeight = input.ImageHeight
	project.TechStack = joinTechStack(input.TechStack)
	project.RepoURL = strings.TrimSpace(input.RepoURL)
	project.DemoURL = strings.TrimSpace(input.DemoURL)
	project.Featured = input.Featured
	project.Status = normalizeProjectStatus(input.Status)
	project.SortOrder = input.SortOrder

	if err := s.db.Save(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project entry by id.
func (s *ProjectService) Delete(id uint) error {
	result := s.db.Delete(&db.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// TechTags 将逗号分隔的技术栈字段拆分为标签列表。
func TechTags(project *db.Project) []string {
	parts := strings.Split(project.TechStack, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func joinTechStack(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}

func normalizeProjectStatus(status string) string {
	if strings.TrimSpace(status) == "draft" {
		return "draft"
	}
	return "published"
}
