package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"image-management-server/internal/config"

	"github.com/gin-gonic/gin"
)

const megabyte = 1024 * 1024

// BodyLimitMiddleware 限制普通接口的请求体大小
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 上传接口由 UploadBodyLimitMiddleware 单独限制
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxBytes := int64(config.Get().Upload.MaxRequestBodyMB) * megabyte
		if maxBytes <= 0 {
			maxBytes = 2 * megabyte
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小。
// Base64 文本比原图大约三分之一，且一次最多 10 张，默认上限 80MB。
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxUploadBodyMB
		if maxSizeMB <= 0 {
			maxSizeMB = 80
		}
		maxBytes := int64(maxSizeMB) * megabyte

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("Request body exceeds %dMB.", maxSizeMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
