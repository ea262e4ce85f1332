package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证未携带请求 ID 时生成新的 ID，携带时原样透传。
func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.Len(t, generated, 36)
	assert.Equal(t, generated, seen)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", seen)
}

// 测试内容：验证 panic 被捕获并返回 500 JSON，访问日志中间件不影响响应。
func TestHandlePanics_Returns500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(), gin.CustomRecovery(HandlePanics()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error."}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
