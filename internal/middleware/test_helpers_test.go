package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"image-management-server/internal/config"

	"github.com/gin-gonic/gin"
)

// withConfig 在测试期间替换配置快照，结束时恢复
func withConfig(t *testing.T, mutate func(c *config.Config)) {
	t.Helper()
	prev := config.Get()
	next := prev
	mutate(&next)
	config.Set(next)
	t.Cleanup(func() { config.Set(prev) })
}

func performFrom(r *gin.Engine, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }
