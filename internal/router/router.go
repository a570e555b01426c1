package router

import (
	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Setup 配置 Gin 引擎和路由
func Setup(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("devfolio_session", store))

	// 静态文件服务（上传的图片）
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开 API
	public := r.Group("/api")
	{
		public.GET("/profile", api.GetProfile)
		public.GET("/projects", api.ListProjects)
		public.GET("/posts", api.ListPosts)
		public.GET("/posts/:slug", api.GetPost)
		public.POST("/posts/:slug", api.PostAction)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.Dashboard)

			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/posts", api.AdminListPosts)
				adminAPI.GET("/posts/:id", api.AdminGetPost)
				adminAPI.POST("/posts", api.AdminCreatePost)
				adminAPI.PUT("/posts/:id", api.AdminUpdatePost)
				adminAPI.POST("/posts/:id/publish", api.AdminPublishPost)
				adminAPI.POST("/posts/:id/unpublish", api.AdminUnpublishPost)
				adminAPI.DELETE("/posts/:id", api.AdminDeletePost)
				adminAPI.GET("/tags", api.AdminListTags)

				adminAPI.GET("/comments", api.AdminListComments)
				adminAPI.PUT("/comments/:id", api.AdminModerateComment)
				adminAPI.DELETE("/comments/:id", api.AdminDeleteComment)

				adminAPI.GET("/hero", api.AdminGetHero)
				adminAPI.PUT("/hero", api.AdminSaveHero)
				adminAPI.GET("/about", api.AdminGetAbout)
				adminAPI.PUT("/about", api.AdminSaveAbout)

				adminAPI.GET("/social-links", api.AdminListSocialLinks)
				adminAPI.POST("/social-links", api.AdminCreateSocialLink)
				adminAPI.PUT("/social-links/:id", api.AdminUpdateSocialLink)
				adminAPI.DELETE("/social-links/:id", api.AdminDeleteSocialLink)

				adminAPI.GET("/skills", api.AdminListSkills)
				adminAPI.POST("/skills", api.AdminCreateSkill)
				adminAPI.PUT("/skills/:id", api.AdminUpdateSkill)
				adminAPI.DELETE("/skills/:id", api.AdminDeleteSkill)

				adminAPI.GET("/experiences", api.AdminListExperiences)
				adminAPI.POST("/experiences", api.AdminCreateExperience)
				adminAPI.PUT("/experiences/:id", api.AdminUpdateExperience)
				adminAPI.DELETE("/experiences/:id", api.AdminDeleteExperience)

				adminAPI.GET("/projects", api.AdminListProjects)
				adminAPI.POST("/projects", api.AdminCreateProject)
				adminAPI.PUT("/projects/:id", api.AdminUpdateProject)
				adminAPI.DELETE("/projects/:id", api.AdminDeleteProject)

				adminAPI.POST("/upload", api.UploadImage)
			}
		}
	}

	return r
}
