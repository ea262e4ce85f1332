package handler

import (
	"net/http"

	"image-management-server/internal/consts"

	"github.com/gin-gonic/gin"
)

func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    consts.ApplicationName,
		"version": consts.ApplicationVersion,
	})
}
