package router

import (
	"image-management-server/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerOwnerRoutes(api *gin.RouterGroup, h *handler.OwnerHandler) {
	api.GET("/customers", h.ListCustomers)
	api.GET("/customers/:id", h.GetCustomer)
	api.GET("/leads", h.ListLeads)
	api.GET("/leads/:id", h.GetLead)
}
