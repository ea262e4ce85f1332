package router

import (
	"image-management-server/internal/handler"
	"image-management-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerImageRoutes(api *gin.RouterGroup, h *handler.ImageHandler, uploadLimiter gin.HandlerFunc) {
	images := api.Group("/images")
	{
		images.POST("/upload", middleware.UploadBodyLimitMiddleware(), uploadLimiter, h.UploadImages)
		images.GET("", h.ListImages)
		images.DELETE("/:id", h.DeleteImage)
		images.PUT("/:id/main", h.SetMainImage)
		images.POST("/set-main", h.SetMainImageByBody)
	}
}
