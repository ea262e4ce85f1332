package repository

import (
	"context"

	"image-management-server/internal/model"
)

// ImageStore 以归属方为范围的图片读写。所有方法都不做数量上限校验，由调用方负责。
type ImageStore interface {
	Add(ctx context.Context, images ...*model.ProfileImage) error
	FindByID(ctx context.Context, id uint) (*model.ProfileImage, error)
	ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.ProfileImage, error)
	CountByOwner(ctx context.Context, owner model.OwnerRef) (int64, error)
	FindMain(ctx context.Context, owner model.OwnerRef) (*model.ProfileImage, error)
	ClearMain(ctx context.Context, owner model.OwnerRef) error
	SetMain(ctx context.Context, imageID uint, owner model.OwnerRef) (bool, error)
	DeleteImage(ctx context.Context, imageID uint, owner *model.OwnerRef) (bool, error)
}
