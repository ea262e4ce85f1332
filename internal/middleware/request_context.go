package middleware

import (
	"net/http"
	"time"

	"image-management-server/internal/consts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID 透传或生成请求 ID，写入上下文和响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 返回当前请求的 ID，未经过 RequestID 中间件时为空
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger 每个请求结束后输出一条访问日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// HandlePanics 配合 gin.CustomRecovery 使用，记录 panic 并返回 500
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("❌ 请求处理发生 panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": consts.MsgInternalError})
	}
}
