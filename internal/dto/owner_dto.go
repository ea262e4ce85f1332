package dto

import (
	"time"

	"image-management-server/internal/consts"
	"image-management-server/internal/model"
)

// ImageSlots 归属方的图片配额概况
type ImageSlots struct {
	ImageCount          int  `json:"imageCount"`
	MaxImages           int  `json:"maxImages"`
	RemainingImageSlots int  `json:"remainingImageSlots"`
	CanAddMoreImages    bool `json:"canAddMoreImages"`
}

func NewImageSlots(count int64) ImageSlots {
	remaining := model.RemainingImageSlots(count)
	return ImageSlots{
		ImageCount:          int(count),
		MaxImages:           consts.MaxImagesPerOwner,
		RemainingImageSlots: remaining,
		CanAddMoreImages:    remaining > 0,
	}
}

type CustomerResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	DateCreated      time.Time `json:"dateCreated"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
	ImageSlots
}

type CustomerDetailResponse struct {
	CustomerResponse
	Images []ImageResponse `json:"images"`
}

type LeadResponse struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Company          string     `json:"company"`
	Source           string     `json:"source"`
	ContactDate      *time.Time `json:"contactDate"`
	DateCreated      time.Time  `json:"dateCreated"`
	LastModifiedDate time.Time  `json:"lastModifiedDate"`
	ImageSlots
}

type LeadDetailResponse struct {
	LeadResponse
	Images []ImageResponse `json:"images"`
}

func NewCustomerResponse(c model.Customer, imageCount int64) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		DateCreated:      c.CreatedAt,
		LastModifiedDate: c.UpdatedAt,
		ImageSlots:       NewImageSlots(imageCount),
	}
}

func NewLeadResponse(l model.Lead, imageCount int64) LeadResponse {
	return LeadResponse{
		ID:               l.ID,
		Name:             l.Name,
		Email:            l.Email,
		Phone:            l.Phone,
		Company:          l.Company,
		Source:           l.Source,
		ContactDate:      l.ContactDate,
		DateCreated:      l.CreatedAt,
		LastModifiedDate: l.UpdatedAt,
		ImageSlots:       NewImageSlots(imageCount),
	}
}
