package handler

import (
	"net/http"

	"image-management-server/internal/common/httpx"
	"image-management-server/internal/consts"
	"image-management-server/internal/dto"
	"image-management-server/internal/model"

	"github.com/gin-gonic/gin"
)

// UploadImages 为客户或线索上传一张或多张 Base64 图片
func (h *ImageHandler) UploadImages(c *gin.Context) {
	var req dto.UploadImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	owner, err := model.ParseOwnerRef(req.CustomerID, req.LeadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgOwnerRefInvalid))
		return
	}

	result := h.imageUC.UploadImages(c.Request.Context(), owner, req.Images)
	writeCommandResult(c, result, consts.MsgUploadFailed)
}

// ListImages 返回归属方的全部图片，主图在前
func (h *ImageHandler) ListImages(c *gin.Context) {
	owner, ok := bindOwnerQuery(c)
	if !ok {
		return
	}
	if owner == nil {
		httpx.WriteBadRequest(c, consts.MsgOwnerRefInvalid)
		return
	}

	images, err := h.imageUC.ListImages(c.Request.Context(), *owner)
	if err != nil {
		httpx.WriteServiceError(c, err, consts.MsgListImagesFailed)
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteImage 删除图片；提供 customerId 或 leadId 时只删除其名下的图片
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgInvalidImageID))
		return
	}

	var q dto.OwnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgInvalidQuery))
		return
	}
	owner, err := model.ParseOptionalOwnerRef(q.CustomerID, q.LeadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgOwnerRefInvalid))
		return
	}

	result := h.imageUC.DeleteImage(c.Request.Context(), imageID, owner)
	writeCommandResult(c, result, consts.MsgDeleteFailed)
}

// SetMainImage PUT /images/:id/main?customerId=|leadId=
func (h *ImageHandler) SetMainImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgInvalidImageID))
		return
	}

	var q dto.OwnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgInvalidQuery))
		return
	}
	h.setMain(c, imageID, q.CustomerID, q.LeadID)
}

// SetMainImageByBody POST /images/set-main，请求体 {imageId, customerId|leadId}
func (h *ImageHandler) SetMainImageByBody(c *gin.Context) {
	var req dto.SetMainImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	h.setMain(c, req.ImageID, req.CustomerID, req.LeadID)
}

func (h *ImageHandler) setMain(c *gin.Context, imageID uint, customerID, leadID *uint) {
	owner, err := model.ParseOwnerRef(customerID, leadID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgOwnerRefInvalid))
		return
	}
	result := h.imageUC.SetMainImage(c.Request.Context(), imageID, owner)
	writeCommandResult(c, result, consts.MsgSetMainFailed)
}
