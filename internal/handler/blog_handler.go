package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// postActionPayload 是 POST /api/posts/:slug 的多路复用请求体
type postActionPayload struct {
	Action    string `json:"action"`
	VisitorID string `json:"visitorId"`
	Reaction  *int   `json:"reaction"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Content   string `json:"content"`
}

// ListPosts returns published posts for the public blog index.
func (a *API) ListPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   "published",
		TagNames: c.QueryArray("tags"),
		Page:     parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:  parsePositiveInt(c.DefaultQuery("perPage", "10"), 10),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	items := make([]gin.H, 0, len(result.Posts))
	for i := range result.Posts {
		items = append(items, postSummaryJSON(&result.Posts[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      items,
		"total":      result.Total,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"totalPages": result.TotalPages,
	})
}

// GetPost returns a published post by slug; viewing it counts towards the
// post's deduplicated view counter and may mint a visitor cookie.
func (a *API) GetPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil || !post.IsPublished() {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	visitorID, minted := resolveVisitor(c, "")

	views := post.ViewCount
	if recorded, recordErr := a.engagement.RecordView(post.ID, visitorID, c.ClientIP(), c.Request.UserAgent(), minted); recordErr == nil {
		views = recorded
	} else {
		c.Error(recordErr) // 不中断响应，但记录错误
	}

	visitorReaction, reactionErr := a.engagement.VisitorReaction(post.ID, visitorID)
	if reactionErr != nil {
		c.Error(reactionErr)
	}

	comments, commentsErr := a.comments.ListApproved(post.ID)
	if commentsErr != nil {
		comments = nil
	}

	contentHTML, err := renderMarkdown(post.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "渲染内容失败")
		return
	}

	payload := postSummaryJSON(post)
	payload["contentHtml"] = contentHTML
	payload["views"] = views
	payload["reactionsCount"] = post.ReactionCounts()
	payload["visitorReaction"] = visitorReaction
	payload["comments"] = commentListJSON(comments)

	c.JSON(http.StatusOK, payload)
}

// PostAction dispatches view, reaction and comment submissions for a post.
func (a *API) PostAction(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil || !post.IsPublished() {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	var payload postActionPayload
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	visitorID, minted := resolveVisitor(c, payload.VisitorID)

	switch payload.Action {
	case "view":
		views, err := a.engagement.RecordView(post.ID, visitorID, c.ClientIP(), c.Request.UserAgent(), minted)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "记录浏览失败")
			return
		}
		c.JSON(http.StatusOK, gin.H{"views": views})

	case "reaction":
		if payload.Reaction == nil {
			respondError(c, http.StatusBadRequest, "缺少 reaction 字段")
			return
		}
		result, err := a.engagement.SetReaction(post.ID, visitorID, c.ClientIP(), *payload.Reaction, minted)
		if err != nil {
			if errors.Is(err, service.ErrInvalidReaction) {
				respondError(c, http.StatusBadRequest, "reaction 取值必须在 1 到 5 之间")
				return
			}
			respondError(c, http.StatusInternalServerError, "记录反应失败")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reactionsCount":  result.Counts,
			"visitorReaction": result.VisitorReaction,
		})

	case "comment":
		comment, err := a.comments.Create(service.CommentInput{
			PostID:    post.ID,
			VisitorID: visitorID,
			Name:      payload.Name,
			Email:     payload.Email,
			Content:   payload.Content,
		})
		if err != nil {
			if errors.Is(err, service.ErrCommentInvalid) {
				respondError(c, http.StatusBadRequest, "评论需要填写姓名、邮箱和内容")
				return
			}
			respondError(c, http.StatusInternalServerError, "提交评论失败")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "评论已提交，待审核后展示",
			"comment": commentJSON(comment),
		})

	default:
		respondError(c, http.StatusBadRequest, "不支持的 action")
	}
}

func postSummaryJSON(post *db.Post) gin.H {
	tagNames := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	return gin.H{
		"id":          post.ID,
		"slug":        post.Slug,
		"title":       post.Title,
		"summary":     post.Summary,
		"coverUrl":    post.CoverURL,
		"coverWidth":  post.CoverWidth,
		"coverHeight": post.CoverHeight,
		"readingTime": post.ReadingTime,
		"publishedAt": post.PublishedAt,
		"tags":        tagNames,
		"views":       post.ViewCount,
	}
}

func commentListJSON(comments []db.Comment) []gin.H {
	items := make([]gin.H, 0, len(comments))
	for i := range comments {
		items = append(items, commentJSON(&comments[i]))
	}
	return items
}

func commentJSON(comment *db.Comment) gin.H {
	return gin.H{
		"id":        comment.ID,
		"name":      comment.Name,
		"content":   comment.Content,
		"status":    comment.Status,
		"createdAt": comment.CreatedAt,
	}
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(value)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}
