package service

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"image-management-server/internal/config"
	"image-management-server/internal/consts"
	"image-management-server/internal/model"

	"github.com/gabriel-vasile/mimetype"
)

var dataURLPattern = regexp.MustCompile(`(?s)^data:([^;]+);base64,(.+)$`)

// ImageService 负责单张图片载荷的解析与校验，不访问数据库
type ImageService struct {
	enforceContentType bool
}

// ValidatedImage 通过校验、可直接落库的载荷
type ValidatedImage struct {
	Base64Data  string
	ContentType string
	FileSize    int64
}

func NewImageService(cfg config.Config) *ImageService {
	return &ImageService{enforceContentType: cfg.Upload.EnforceContentType}
}

// ValidateImage 校验一张 Base64 图片。
// 载荷可带 data:<mime>;base64, 前缀，此时前缀中的类型优先于 declaredContentType；
// 两者都没有时根据解码后的字节识别类型。
func (s *ImageService) ValidateImage(raw string, declaredContentType string) (*ValidatedImage, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return nil, ErrBase64Required
	}

	contentType := strings.TrimSpace(declaredContentType)
	if strings.HasPrefix(payload, "data:") {
		if m := dataURLPattern.FindStringSubmatch(payload); m != nil {
			contentType = strings.TrimSpace(m[1])
			payload = m[2]
		}
	}

	payload = stripWhitespace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if len(data) > consts.MaxImageSizeBytes {
		return nil, ErrImageTooLarge
	}

	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}
	if s.enforceContentType && !model.IsAllowedImageContentType(contentType) {
		return nil, fmt.Errorf("%w '%s'.", ErrUnsupportedContentType, contentType)
	}

	return &ValidatedImage{
		Base64Data:  payload,
		ContentType: contentType,
		FileSize:    int64(len(data)),
	}, nil
}

// ValidateMetadata 校验文件名与描述长度（按字符计）
func (s *ImageService) ValidateMetadata(fileName string, description string) error {
	if utf8.RuneCountInString(fileName) > consts.MaxFileNameLength {
		return ErrFileNameTooLong
	}
	if utf8.RuneCountInString(description) > consts.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func stripWhitespace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
