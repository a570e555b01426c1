package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// postPayload 是后台创建/更新文章的请求体
type postPayload struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	CoverURL    string   `json:"coverUrl"`
	CoverWidth  int      `json:"coverWidth"`
	CoverHeight int      `json:"coverHeight"`
}

// AdminListPosts 获取后台文章列表，支持状态与关键字过滤
func (a *API) AdminListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		TagNames: c.QueryArray("tags"),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("perPage", "20"), 20),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":          result.Posts,
		"total":          result.Total,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
		"page":           result.Page,
		"totalPages":     result.TotalPages,
	})
}

// AdminGetPost 获取单篇文章详情
func (a *API) AdminGetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// AdminCreatePost 创建新文章
func (a *API) AdminCreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	session := sessions.Default(c)
	userID, _ := session.Get("user_id").(uint)

	post, err := a.posts.Create(service.PostInput{
		Title:       payload.Title,
		Slug:        payload.Slug,
		Summary:     payload.Summary,
		Content:     payload.Content,
		TagNames:    payload.Tags,
		UserID:      userID,
		CoverURL:    payload.CoverURL,
		CoverWidth:  payload.CoverWidth,
		CoverHeight: payload.CoverHeight,
	})
	if err != nil {
		status, message := postErrorResponse(err, "创建文章失败")
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "文章创建成功", "post": post})
}

// AdminUpdatePost 更新文章
func (a *API) AdminUpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:       payload.Title,
		Slug:        payload.Slug,
		Summary:     payload.Summary,
		Content:     payload.Content,
		TagNames:    payload.Tags,
		CoverURL:    payload.CoverURL,
		CoverWidth:  payload.CoverWidth,
		CoverHeight: payload.CoverHeight,
	})
	if err != nil {
		status, message := postErrorResponse(err, "更新文章失败")
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "post": post})
}

// AdminPublishPost 发布文章
func (a *API) AdminPublishPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Publish(id)
	if err != nil {
		status, message := postErrorResponse(err, "发布文章失败")
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已发布", "post": post})
}

// AdminUnpublishPost 将文章撤回为草稿
func (a *API) AdminUnpublishPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Unpublish(id)
	if err != nil {
		status, message := postErrorResponse(err, "撤回文章失败")
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已撤回为草稿", "post": post})
}

// AdminDeletePost 删除文章
func (a *API) AdminDeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章已删除"})
}

// AdminListTags 获取全部标签
func (a *API) AdminListTags(c *gin.Context) {
	tags, err := a.posts.ListTags()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// AdminListComments 按状态获取评论列表
func (a *API) AdminListComments(c *gin.Context) {
	comments, err := a.comments.List(strings.TrimSpace(c.Query("status")))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取评论列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AdminModerateComment 审核评论（approved / rejected / pending）
func (a *API) AdminModerateComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	comment, err := a.comments.SetStatus(id, payload.Status)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "评论不存在")
			return
		}
		respondError(c, http.StatusBadRequest, "无效的评论状态")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论状态已更新", "comment": comment})
}

// AdminDeleteComment 删除评论
func (a *API) AdminDeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := a.comments.Delete(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "评论不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}

func postErrorResponse(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound, "文章不存在"
	case errors.Is(err, service.ErrTitleRequired):
		return http.StatusBadRequest, "文章标题不能为空"
	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusConflict, "slug 已被占用"
	default:
		return http.StatusInternalServerError, fallback
	}
}
