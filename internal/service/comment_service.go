package service

import (
	"errors"
	"strings"

	"github.com/devfolio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentInvalid  = errors.New("comment requires name, email and content")
)

// CommentService 负责评论的创建与审核流转。
type CommentService struct {
	db *gorm.DB
}

// CommentInput represents fields accepted when a visitor submits a comment.
type CommentInput struct {
	PostID    uint
	VisitorID string
	Name      string
	Email     string
	Content   string
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create 持久化一条待审核评论，附带提交者的访客标识。
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	content := strings.TrimSpace(input.Content)
	if name == "" || email == "" || content == "" {
		return nil, ErrCommentInvalid
	}

	var post db.Post
	if err := s.db.Select("id").First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := db.Comment{
		PostID:    input.PostID,
		VisitorID: input.VisitorID,
		Name:      name,
		Email:     email,
		Content:   content,
		Status:    "pending",
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListApproved returns approved comments for a post, oldest first.
func (s *CommentService) ListApproved(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Where("post_id = ? AND status = ?", postID, "approved").
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// List returns comments filtered by status for the admin area, newest first.
func (s *CommentService) List(status string) ([]db.Comment, error) {
	query := s.db.Model(&db.Comment{})
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		query = query.Where("status = ?", trimmed)
	}

	var comments []db.Comment
	if err := query.Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// SetStatus 更新评论审核状态，status 取 approved 或 rejected。
func (s *CommentService) SetStatus(id uint, status string) (*db.Comment, error) {
	if status != "approved" && status != "rejected" && status != "pending" {
		return nil, errors.New("invalid comment status")
	}

	result := s.db.Model(&db.Comment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCommentNotFound
	}

	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment by id.
func (s *CommentService) Delete(id uint) error {
	result := s.db.Delete(&db.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
