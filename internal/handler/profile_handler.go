package handler

import (
	"html/template"
	"net/http"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

// GetProfile aggregates the public landing page payload: hero, about,
// skills, experiences and visible social links.
func (a *API) GetProfile(c *gin.Context) {
	hero, err := a.profiles.GetHero()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取主视觉内容失败")
		return
	}

	about, err := a.profiles.GetAbout()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取关于页内容失败")
		return
	}

	var aboutHTML template.HTML
	if about != nil {
		if rendered, renderErr := renderMarkdown(about.Content); renderErr == nil {
			aboutHTML = rendered
		} else {
			c.Error(renderErr)
		}
	}

	skills, err := a.skills.ListSkills()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取技能列表失败")
		return
	}

	experiences, err := a.skills.ListExperiences()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取经历列表失败")
		return
	}

	links, err := a.profiles.ListSocialLinks(true)
	if err != nil {
		links = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"hero":        heroJSON(hero),
		"aboutHtml":   aboutHTML,
		"skills":      skills,
		"experiences": experiences,
		"socialLinks": links,
	})
}

// ListProjects returns published projects for the public portfolio grid.
func (a *API) ListProjects(c *gin.Context) {
	projects, err := a.projects.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取项目列表失败")
		return
	}

	items := make([]gin.H, 0, len(projects))
	for i := range projects {
		items = append(items, projectJSON(&projects[i]))
	}

	c.JSON(http.StatusOK, gin.H{"projects": items})
}

func heroJSON(hero *db.Hero) gin.H {
	if hero == nil {
		return nil
	}
	return gin.H{
		"name":      hero.Name,
		"tagline":   hero.Tagline,
		"intro":     hero.Intro,
		"avatarUrl": hero.AvatarURL,
		"coverUrl":  hero.CoverURL,
		"resumeUrl": hero.ResumeURL,
	}
}

func projectJSON(project *db.Project) gin.H {
	return gin.H{
		"id":          project.ID,
		"title":       project.Title,
		"summary":     project.Summary,
		"description": project.Description,
		"imageUrl":    project.ImageURL,
		"imageWidth":  project.ImageWidth,
		"imageHeight": project.ImageHeight,
		"techStack":   service.TechTags(project),
		"repoUrl":     project.RepoURL,
		"demoUrl":     project.DemoURL,
		"featured":    project.Featured,
		"status":      project.Status,
		"sortOrder":   project.SortOrder,
	}
}
