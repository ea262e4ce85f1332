package model

import (
	"image-management-server/internal/consts"
	"strings"
	"time"
)

// ProfileImage 客户或线索的资料图片，图片内容以 Base64 文本存储。
// customer_id 与 lead_id 有且仅有一个非空，由 chk_profile_images_one_owner 约束保证。
type ProfileImage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Base64Data  string    `json:"base64Data" gorm:"not null"`
	ContentType string    `json:"contentType" gorm:"size:100"`
	FileName    string    `json:"fileName" gorm:"size:255"`
	Description string    `json:"description" gorm:"size:500"`
	FileSize    int64     `json:"fileSize" gorm:"not null"`
	IsMainImage bool      `json:"isMainImage" gorm:"not null;default:false;index"`
	CustomerID  *uint     `json:"customerId" gorm:"index;check:chk_profile_images_one_owner,(customer_id IS NOT NULL AND lead_id IS NULL) OR (customer_id IS NULL AND lead_id IS NOT NULL)"`
	LeadID      *uint     `json:"leadId" gorm:"index"`
	CreatedAt   time.Time `json:"dateCreated" gorm:"index"`
	UpdatedAt   time.Time `json:"-"`
}

// Owner 返回图片的归属方；数据不满足单一归属约束时 ok 为 false。
func (p *ProfileImage) Owner() (OwnerRef, bool) {
	switch {
	case p.CustomerID != nil && p.LeadID == nil:
		return CustomerOwner(*p.CustomerID), true
	case p.LeadID != nil && p.CustomerID == nil:
		return LeadOwner(*p.LeadID), true
	default:
		return OwnerRef{}, false
	}
}

// IsAllowedImageContentType 判断类型是否属于允许的图片类型，按前缀匹配且忽略大小写
func IsAllowedImageContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return false
	}
	for _, allowed := range consts.AllowedImageContentTypes {
		if strings.HasPrefix(ct, allowed) {
			return true
		}
	}
	return false
}

// RemainingImageSlots 计算在已有 count 张图片时还可上传的数量
func RemainingImageSlots(count int64) int {
	remaining := consts.MaxImagesPerOwner - int(count)
	if remaining < 0 {
		return 0
	}
	return remaining
}
