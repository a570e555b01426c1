package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "visitor-id"
	visitorHeaderName   = "X-Visitor-Id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// resolveVisitor 按 cookie → 调用方显式提供值 → 新生成 的优先级确定访客标识。
// supplied 来自请求体的 visitorId 字段，用于 cookie 被禁用的客户端。
// minted 为 true 表示标识为本次请求新签发，此时已在响应中种下持久 cookie，
// 后续请求将稳定解析到同一访客。
func resolveVisitor(c *gin.Context, supplied string) (visitorID string, minted bool) {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id), false
	}

	if trimmed := strings.TrimSpace(supplied); trimmed != "" {
		return trimmed, false
	}

	if header := strings.TrimSpace(c.GetHeader(visitorHeaderName)); header != "" {
		return header, false
	}

	visitorID = uuid.NewString()
	setVisitorCookie(c, visitorID)
	return visitorID, true
}

func setVisitorCookie(c *gin.Context, visitorID string) {
	secure := c.Request.TLS != nil || gin.Mode() == gin.ReleaseMode

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})
}
