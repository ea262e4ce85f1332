package dto

import (
	"time"

	"image-management-server/internal/model"
)

type ImageUploadItem struct {
	Base64Data  string `json:"base64Data"`
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
	Description string `json:"description"`
	IsMainImage bool   `json:"isMainImage"`
}

type UploadImagesRequest struct {
	CustomerID *uint             `json:"customerId"`
	LeadID     *uint             `json:"leadId"`
	Images     []ImageUploadItem `json:"images"`
}

type SetMainImageRequest struct {
	ImageID    uint  `json:"imageId" binding:"required"`
	CustomerID *uint `json:"customerId"`
	LeadID     *uint `json:"leadId"`
}

// OwnerQuery 从查询参数 ?customerId=&leadId= 绑定
type OwnerQuery struct {
	CustomerID *uint `form:"customerId"`
	LeadID     *uint `form:"leadId"`
}

type ImageResponse struct {
	ID          uint      `json:"id"`
	Base64Data  string    `json:"base64Data"`
	ContentType string    `json:"contentType"`
	FileName    string    `json:"fileName"`
	Description string    `json:"description"`
	IsMainImage bool      `json:"isMainImage"`
	FileSize    int64     `json:"fileSize"`
	DateCreated time.Time `json:"dateCreated"`
	CustomerID  *uint     `json:"customerId"`
	LeadID      *uint     `json:"leadId"`
}

func NewImageResponse(image model.ProfileImage) ImageResponse {
	return ImageResponse{
		ID:          image.ID,
		Base64Data:  image.Base64Data,
		ContentType: image.ContentType,
		FileName:    image.FileName,
		Description: image.Description,
		IsMainImage: image.IsMainImage,
		FileSize:    image.FileSize,
		DateCreated: image.CreatedAt,
		CustomerID:  image.CustomerID,
		LeadID:      image.LeadID,
	}
}

func NewImageResponses(images []model.ProfileImage) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, image := range images {
		out = append(out, NewImageResponse(image))
	}
	return out
}

// CommandResult 上传、删除、设置主图的统一结果。Errors 始终非 nil。
type CommandResult struct {
	ID      uint     `json:"id"`
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}

func NewCommandResult() *CommandResult {
	return &CommandResult{Errors: []string{}}
}

// Fail 标记失败并返回自身，便于在用例中直接 return
func (r *CommandResult) Fail(message string, errs ...string) *CommandResult {
	r.Success = false
	r.Message = message
	r.Errors = append(r.Errors, errs...)
	return r
}
