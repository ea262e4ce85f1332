package handler

import (
	"errors"
	"net/http"
	"strconv"

	"image-management-server/internal/common/httpx"
	"image-management-server/internal/consts"
	"image-management-server/internal/dto"
	"image-management-server/internal/model"
	"image-management-server/internal/usecase/app"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageUC *app.ImageUseCase
}

type OwnerHandler struct {
	ownerUC *app.OwnerUseCase
}

type SystemHandler struct{}

func NewImageHandler(imageUC *app.ImageUseCase) *ImageHandler {
	return &ImageHandler{imageUC: imageUC}
}

func NewOwnerHandler(ownerUC *app.OwnerUseCase) *OwnerHandler {
	return &OwnerHandler{ownerUC: ownerUC}
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// writeCommandResult 成功返回 200，意外故障返回 500，其余失败返回 400
func writeCommandResult(c *gin.Context, result *dto.CommandResult, faultMessage string) {
	switch {
	case result.Success:
		c.JSON(http.StatusOK, result)
	case result.Message == faultMessage:
		c.JSON(http.StatusInternalServerError, result)
	default:
		c.JSON(http.StatusBadRequest, result)
	}
}

// writeBindError 请求体超出限制时返回 413，其余绑定错误返回 400
func writeBindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewCommandResult().Fail(consts.MsgRequestTooLarge))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewCommandResult().Fail(consts.MsgInvalidRequestBody))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindOwnerQuery 解析 ?customerId=&leadId=，返回可能为空的归属方
func bindOwnerQuery(c *gin.Context) (*model.OwnerRef, bool) {
	var q dto.OwnerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.WriteBadRequest(c, consts.MsgInvalidQuery)
		return nil, false
	}
	owner, err := model.ParseOptionalOwnerRef(q.CustomerID, q.LeadID)
	if err != nil {
		httpx.WriteBadRequest(c, consts.MsgOwnerRefInvalid)
		return nil, false
	}
	return owner, true
}
