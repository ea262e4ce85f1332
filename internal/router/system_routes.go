package router

import (
	"image-management-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(api *gin.RouterGroup, h *handler.SystemHandler) {
	api.GET("/ping", h.Ping)
	api.GET("/version", h.Version)
}
