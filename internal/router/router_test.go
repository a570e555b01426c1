package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/handler"
	"github.com/gin-gonic/gin"
)

func testConfig(uploadDir string) config.AppConfig {
	return config.AppConfig{
		SessionSecret: "test-secret",
		UploadDir:     uploadDir,
		UploadURLPath: "/static/uploads",
	}
}

func TestSetupServesStaticUploads(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	fileName := "example.txt"
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	api := handler.NewAPI(nil, uploadDir, "/static/uploads")
	r := Setup(api, testConfig(uploadDir))

	req := httptest.NewRequest(http.MethodGet, "/static/uploads/"+fileName, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestSetupPing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	api := handler.NewAPI(nil, t.TempDir(), "/static/uploads")
	r := Setup(api, testConfig(t.TempDir()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	api := handler.NewAPI(nil, t.TempDir(), "/static/uploads")
	r := Setup(api, testConfig(t.TempDir()))

	for _, path := range []string{"/admin/dashboard", "/admin/api/posts", "/admin/api/comments"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without session, got %d", path, rr.Code)
		}
	}
}
