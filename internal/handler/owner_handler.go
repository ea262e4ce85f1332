package handler

import (
	"net/http"

	"image-management-server/internal/common/httpx"
	"image-management-server/internal/consts"

	"github.com/gin-gonic/gin"
)

func (h *OwnerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.ownerUC.ListCustomers(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, consts.MsgListOwnersFailed)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer 客户资料、图片配额与全部图片
func (h *OwnerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httpx.WriteBadRequest(c, consts.MsgInvalidOwnerID)
		return
	}
	customer, err := h.ownerUC.GetCustomer(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, consts.MsgListOwnersFailed)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *OwnerHandler) ListLeads(c *gin.Context) {
	leads, err := h.ownerUC.ListLeads(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, consts.MsgListOwnersFailed)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *OwnerHandler) GetLead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		httpx.WriteBadRequest(c, consts.MsgInvalidOwnerID)
		return
	}
	lead, err := h.ownerUC.GetLead(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, consts.MsgListOwnersFailed)
		return
	}
	c.JSON(http.StatusOK, lead)
}
