package handler

import (
	"github.com/devfolio/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	comments   *service.CommentService
	engagement *service.EngagementService
	profiles   *service.ProfileService
	skills     *service.SkillService
	projects   *service.ProjectService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:         db,
		posts:      service.NewPostService(db),
		comments:   service.NewCommentService(db),
		engagement: service.NewEngagementService(db),
		profiles:   service.NewProfileService(db),
		skills:     service.NewSkillService(db),
		projects:   service.NewProjectService(db),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}
