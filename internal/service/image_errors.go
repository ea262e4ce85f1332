package service

import (
	"errors"

	"image-management-server/internal/consts"
)

// 单张图片的校验错误，错误文本即对外提示语
var (
	ErrBase64Required         = errors.New(consts.MsgBase64Required)
	ErrInvalidBase64          = errors.New(consts.MsgInvalidBase64)
	ErrImageTooLarge          = errors.New(consts.MsgImageTooLarge)
	ErrUnsupportedContentType = errors.New(consts.MsgUnsupportedImageType)
	ErrFileNameTooLong        = errors.New(consts.MsgFileNameTooLong)
	ErrDescriptionTooLong     = errors.New(consts.MsgDescriptionTooLong)
)
