package testutils

import (
	"encoding/base64"
	"testing"

	"image-management-server/internal/model"

	"gorm.io/gorm"
)

// MinimalPNG 1x1 透明 PNG
var MinimalPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// MinimalJPEG 仅含 SOI、JFIF 头与 EOI，足以被识别为 image/jpeg
var MinimalJPEG = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46, 0x00, 0x01, 0xff, 0xd9}

func PNGBase64() string {
	return base64.StdEncoding.EncodeToString(MinimalPNG)
}

func JPEGBase64() string {
	return base64.StdEncoding.EncodeToString(MinimalJPEG)
}

// PNGDataURL 带 data URL 前缀的 PNG 载荷
func PNGDataURL() string {
	return "data:image/png;base64," + PNGBase64()
}

func CreateCustomer(t *testing.T, gdb *gorm.DB, name string) model.Customer {
	t.Helper()
	c := model.Customer{Name: name}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func CreateLead(t *testing.T, gdb *gorm.DB, name string) model.Lead {
	t.Helper()
	l := model.Lead{Name: name}
	if err := gdb.Create(&l).Error; err != nil {
		t.Fatalf("create lead: %v", err)
	}
	return l
}

// CreateImages 直接写库，为归属方预置 n 张 PNG 图片
func CreateImages(t *testing.T, gdb *gorm.DB, owner model.OwnerRef, n int) []model.ProfileImage {
	t.Helper()
	images := make([]model.ProfileImage, 0, n)
	for i := 0; i < n; i++ {
		img := model.ProfileImage{
			Base64Data:  PNGBase64(),
			ContentType: "image/png",
			FileSize:    int64(len(MinimalPNG)),
		}
		owner.Assign(&img)
		if err := gdb.Create(&img).Error; err != nil {
			t.Fatalf("create image: %v", err)
		}
		images = append(images, img)
	}
	return images
}
