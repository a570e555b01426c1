package handler

import (
	"errors"
	"net/http"

	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminGetHero 获取主视觉内容
func (a *API) AdminGetHero(c *gin.Context) {
	hero, err := a.profiles.GetHero()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取主视觉内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hero": hero})
}

// AdminSaveHero 创建或更新主视觉内容
func (a *API) AdminSaveHero(c *gin.Context) {
	var payload struct {
		Name      string `json:"name"`
		Tagline   string `json:"tagline"`
		Intro     string `json:"intro"`
		AvatarURL string `json:"avatarUrl"`
		CoverURL  string `json:"coverUrl"`
		ResumeURL string `json:"resumeUrl"`
	}
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	hero, err := a.profiles.SaveHero(service.HeroInput{
		Name:      payload.Name,
		Tagline:   payload.Tagline,
		Intro:     payload.Intro,
		AvatarURL: payload.AvatarURL,
		CoverURL:  payload.CoverURL,
		ResumeURL: payload.ResumeURL,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "保存主视觉内容失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "主视觉内容已保存", "hero": hero})
}

// AdminGetAbout 获取关于页 Markdown 原文
func (a *API) AdminGetAbout(c *gin.Context) {
	about, err := a.profiles.GetAbout()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取关于页内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"about": about})
}

// AdminSaveAbout 创建或更新关于页内容
func (a *API) AdminSaveAbout(c *gin.Context) {
	var payload struct {
		Content string `json:"content"`
	}
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	about, err := a.profiles.SaveAbout(payload.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存关于页内容失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "关于页内容已保存", "about": about})
}

// AdminListSocialLinks 获取全部社交链接（含隐藏项）
func (a *API) AdminListSocialLinks(c *gin.Context) {
	links, err := a.profiles.ListSocialLinks(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取社交链接失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"socialLinks": links})
}

type socialLinkPayload struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Link     string `json:"link"`
	Icon     string `json:"icon"`
	Sort     int    `json:"sort"`
	Visible  bool   `json:"visible"`
}

func (p socialLinkPayload) toInput() service.SocialLinkInput {
	return service.SocialLinkInput{
		Platform: p.Platform,
		Label:    p.Label,
		Value:    p.Value,
		Link:     p.Link,
		Icon:     p.Icon,
		Sort:     p.Sort,
		Visible:  p.Visible,
	}
}

// AdminCreateSocialLink 新增社交链接
func (a *API) AdminCreateSocialLink(c *gin.Context) {
	var payload socialLinkPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	link, err := a.profiles.CreateSocialLink(payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建社交链接失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "社交链接已创建", "socialLink": link})
}

// AdminUpdateSocialLink 更新社交链接
func (a *API) AdminUpdateSocialLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	var payload socialLinkPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	link, err := a.profiles.UpdateSocialLink(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrSocialLinkNotFound) {
			respondError(c, http.StatusNotFound, "社交链接不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "更新社交链接失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "社交链接已更新", "socialLink": link})
}

// AdminDeleteSocialLink 删除社交链接
func (a *API) AdminDeleteSocialLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	if err := a.profiles.DeleteSocialLink(id); err != nil {
		if errors.Is(err, service.ErrSocialLinkNotFound) {
			respondError(c, http.StatusNotFound, "社交链接不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除社交链接失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "社交链接已删除"})
}

type skillPayload struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
	Sort     int    `json:"sort"`
}

// AdminListSkills 获取技能列表
func (a *API) AdminListSkills(c *gin.Context) {
	skills, err := a.skills.ListSkills()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取技能列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// AdminCreateSkill 新增技能
func (a *API) AdminCreateSkill(c *gin.Context) {
	var payload skillPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	skill, err := a.skills.CreateSkill(service.SkillInput{
		Name:     payload.Name,
		Category: payload.Category,
		Level:    payload.Level,
		Icon:     payload.Icon,
		Sort:     payload.Sort,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建技能失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "技能已创建", "skill": skill})
}

// AdminUpdateSkill 更新技能
func (a *API) AdminUpdateSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的技能ID")
		return
	}

	var payload skillPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	skill, err := a.skills.UpdateSkill(id, service.SkillInput{
		Name:     payload.Name,
		Category: payload.Category,
		Level:    payload.Level,
		Icon:     payload.Icon,
		Sort:     payload.Sort,
	})
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			respondError(c, http.StatusNotFound, "技能不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "更新技能失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "技能已更新", "skill": skill})
}

// AdminDeleteSkill 删除技能
func (a *API) AdminDeleteSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的技能ID")
		return
	}

	if err := a.skills.DeleteSkill(id); err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			respondError(c, http.StatusNotFound, "技能不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除技能失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "技能已删除"})
}

type experiencePayload struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
	Sort    int    `json:"sort"`
}

// AdminListExperiences 获取经历列表
func (a *API) AdminListExperiences(c *gin.Context) {
	experiences, err := a.skills.ListExperiences()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取经历列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiences": experiences})
}

// AdminCreateExperience 新增经历
func (a *API) AdminCreateExperience(c *gin.Context) {
	var payload experiencePayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	experience, err := a.skills.CreateExperience(service.ExperienceInput{
		Role:    payload.Role,
		Company: payload.Company,
		Start:   payload.Start,
		End:     payload.End,
		Summary: payload.Summary,
		Sort:    payload.Sort,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建经历失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "经历已创建", "experience": experience})
}

// AdminUpdateExperience 更新经历
func (a *API) AdminUpdateExperience(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的经历ID")
		return
	}

	var payload experiencePayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	experience, err := a.skills.UpdateExperience(id, service.ExperienceInput{
		Role:    payload.Role,
		Company: payload.Company,
		Start:   payload.Start,
		End:     payload.End,
		Summary: payload.Summary,
		Sort:    payload.Sort,
	})
	if err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			respondError(c, http.StatusNotFound, "经历不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "更新经历失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "经历已更新", "experience": experience})
}

// AdminDeleteExperience 删除经历
func (a *API) AdminDeleteExperience(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的经历ID")
		return
	}

	if err := a.skills.DeleteExperience(id); err != nil {
		if errors.Is(err, service.ErrExperienceNotFound) {
			respondError(c, http.StatusNotFound, "经历不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除经历失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "经历已删除"})
}

type projectPayload struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	ImageWidth  int      `json:"imageWidth"`
	ImageHeight int      `json:"imageHeight"`
	TechStack   []string `json:"techStack"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
	Featured    bool     `json:"featured"`
	Status      string   `json:"status"`
	SortOrder   int      `json:"sortOrder"`
}

func (p projectPayload) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:       p.Title,
		Summary:     p.Summary,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		TechStack:   p.TechStack,
		RepoURL:     p.RepoURL,
		DemoURL:     p.DemoURL,
		Featured:    p.Featured,
		Status:      p.Status,
		SortOrder:   p.SortOrder,
	}
}

// AdminListProjects 获取全部项目（含草稿）
func (a *API) AdminListProjects(c *gin.Context) {
	projects, err := a.projects.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取项目列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// AdminCreateProject 新增项目
func (a *API) AdminCreateProject(c *gin.Context) {
	var payload projectPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	project, err := a.projects.Create(payload.toInput())
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建项目失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "项目已创建", "project": project})
}

// AdminUpdateProject 更新项目
func (a *API) AdminUpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var payload projectPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	project, err := a.projects.Update(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "项目不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "更新项目失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "项目已更新", "project": project})
}

// AdminDeleteProject 删除项目
func (a *API) AdminDeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "项目不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除项目失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "项目已删除"})
}
