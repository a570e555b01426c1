package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devfolio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPITest(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{}, &db.Post{}, &db.Tag{},
		&db.ViewEvent{}, &db.ReactionEvent{}, &db.Comment{},
		&db.Hero{}, &db.About{}, &db.SocialLink{},
		&db.Skill{}, &db.Experience{}, &db.Project{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	db.DB = gdb

	api := NewAPI(gdb, t.TempDir(), "/static/uploads")

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("devfolio_session", store))

	r.GET("/api/posts", api.ListPosts)
	r.GET("/api/posts/:slug", api.GetPost)
	r.POST("/api/posts/:slug", api.PostAction)

	r.POST("/admin/login", api.Login)
	r.GET("/admin/logout", api.Logout)
	auth := r.Group("/admin", AuthRequired())
	auth.GET("/dashboard", api.Dashboard)

	return r, gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func seedPublishedPost(t *testing.T, gdb *gorm.DB, slug string) *db.Post {
	t.Helper()

	post := db.Post{Slug: slug, Title: "测试文章", Content: "# 标题\n正文", Status: "published"}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return &post
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return payload
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestGetPostCountsOncePerVisitor(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "first-visit")

	w := doJSON(t, r, http.MethodGet, "/api/posts/first-visit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	visitor := responseCookie(w, visitorCookieName)
	if visitor == nil {
		t.Fatal("expected visitor cookie on first view")
	}

	payload := decodeJSON(t, w)
	if views, _ := payload["views"].(float64); views != 1 {
		t.Fatalf("expected views=1 on first view, got %v", payload["views"])
	}
	if html, _ := payload["contentHtml"].(string); !strings.Contains(html, "<h1") {
		t.Fatalf("expected rendered markdown, got %q", html)
	}

	// 携带 cookie 重复浏览：计数不变，cookie 不重发
	w = doJSON(t, r, http.MethodGet, "/api/posts/first-visit", nil, &http.Cookie{Name: visitorCookieName, Value: visitor.Value})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat view, got %d", w.Code)
	}
	if responseCookie(w, visitorCookieName) != nil {
		t.Fatal("expected no cookie re-issue on repeat view")
	}
	payload = decodeJSON(t, w)
	if views, _ := payload["views"].(float64); views != 1 {
		t.Fatalf("expected views to stay 1 on repeat view, got %v", payload["views"])
	}
}

func TestGetPostHidesUnpublished(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	draft := db.Post{Slug: "still-draft", Title: "草稿", Content: "内容", Status: "draft"}
	if err := gdb.Create(&draft).Error; err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}

	if w := doJSON(t, r, http.MethodGet, "/api/posts/still-draft", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for draft, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/posts/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", w.Code)
	}
}

func TestPostActionView(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "action-view")

	body := map[string]any{"action": "view", "visitorId": "v-1"}
	w := doJSON(t, r, http.MethodPost, "/api/posts/action-view", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if views, _ := decodeJSON(t, w)["views"].(float64); views != 1 {
		t.Fatalf("expected views=1, got %v", views)
	}

	w = doJSON(t, r, http.MethodPost, "/api/posts/action-view", body)
	if views, _ := decodeJSON(t, w)["views"].(float64); views != 1 {
		t.Fatalf("expected views to stay 1 for same visitor, got %v", views)
	}
}

func TestPostActionReactionFlow(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "action-reaction")

	w := doJSON(t, r, http.MethodPost, "/api/posts/action-reaction", map[string]any{
		"action": "reaction", "reaction": 3, "visitorId": "v-2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	payload := decodeJSON(t, w)
	if reaction, _ := payload["visitorReaction"].(float64); reaction != 3 {
		t.Fatalf("expected visitorReaction=3, got %v", payload["visitorReaction"])
	}
	counts, _ := payload["reactionsCount"].(map[string]any)
	if counts == nil || counts["3"].(float64) != 1 {
		t.Fatalf("unexpected reactionsCount: %v", payload["reactionsCount"])
	}

	// 再次提交相同 reaction 即取消
	w = doJSON(t, r, http.MethodPost, "/api/posts/action-reaction", map[string]any{
		"action": "reaction", "reaction": 3, "visitorId": "v-2",
	})
	payload = decodeJSON(t, w)
	if payload["visitorReaction"] != nil {
		t.Fatalf("expected visitorReaction=null after toggle, got %v", payload["visitorReaction"])
	}
	counts, _ = payload["reactionsCount"].(map[string]any)
	if counts == nil || counts["3"].(float64) != 0 {
		t.Fatalf("expected reaction count back to 0, got %v", payload["reactionsCount"])
	}
}

func TestPostActionReactionValidation(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "bad-reaction")

	w := doJSON(t, r, http.MethodPost, "/api/posts/bad-reaction", map[string]any{
		"action": "reaction", "reaction": 9, "visitorId": "v-3",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reaction out of range, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/posts/bad-reaction", map[string]any{
		"action": "reaction", "visitorId": "v-3",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing reaction, got %d", w.Code)
	}
}

func TestPostActionComment(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "action-comment")

	w := doJSON(t, r, http.MethodPost, "/api/posts/action-comment", map[string]any{
		"action": "comment", "visitorId": "v-4",
		"name": "访客", "email": "a@b.c", "content": "好文章",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := gdb.Model(&db.Comment{}).Where("status = ?", "pending").Count(&count).Error; err != nil {
		t.Fatalf("failed to count comments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending comment, got %d", count)
	}

	w = doJSON(t, r, http.MethodPost, "/api/posts/action-comment", map[string]any{
		"action": "comment", "visitorId": "v-4", "name": "访客", "content": "缺邮箱",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid comment, got %d", w.Code)
	}
}

func TestPostActionUnknown(t *testing.T) {
	r, gdb, cleanup := setupAPITest(t)
	defer cleanup()

	seedPublishedPost(t, gdb, "action-unknown")

	w := doJSON(t, r, http.MethodPost, "/api/posts/action-unknown", map[string]any{
		"action": "boom", "visitorId": "v-5",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", w.Code)
	}
}
