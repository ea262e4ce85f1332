package repository

import (
	"context"
	"errors"

	"image-management-server/internal/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

// ownedBy 将查询限定在某个归属方之下
func ownedBy(owner model.OwnerRef) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(owner.Column()+" = ?", owner.ID)
	}
}

func (r *ImageRepository) Add(ctx context.Context, images ...*model.ProfileImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(images).Error
}

func (r *ImageRepository) FindByID(ctx context.Context, id uint) (*model.ProfileImage, error) {
	var image model.ProfileImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) ListByOwner(ctx context.Context, owner model.OwnerRef) ([]model.ProfileImage, error) {
	images := make([]model.ProfileImage, 0)
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(owner)).
		Order("is_main_image desc").
		Order("created_at asc").
		Order("id asc").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) CountByOwner(ctx context.Context, owner model.OwnerRef) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ProfileImage{}).Scopes(ownedBy(owner)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindMain 没有主图时返回 nil, nil
func (r *ImageRepository) FindMain(ctx context.Context, owner model.OwnerRef) (*model.ProfileImage, error) {
	var image model.ProfileImage
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(owner)).
		Where("is_main_image = ?", true).
		Order("id asc").
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) ClearMain(ctx context.Context, owner model.OwnerRef) error {
	return r.db.WithContext(ctx).
		Model(&model.ProfileImage{}).
		Scopes(ownedBy(owner)).
		Where("is_main_image = ?", true).
		Update("is_main_image", false).Error
}

// SetMain 先清除该归属方的其他主图，再设置目标图片。
// 目标图片不属于该归属方时不做任何修改并返回 false。
func (r *ImageRepository) SetMain(ctx context.Context, imageID uint, owner model.OwnerRef) (bool, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.ProfileImage{}).Scopes(ownedBy(owner)).Where("id = ?", imageID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	if err := db.Model(&model.ProfileImage{}).
		Scopes(ownedBy(owner)).
		Where("is_main_image = ? AND id <> ?", true, imageID).
		Update("is_main_image", false).Error; err != nil {
		return false, err
	}
	if err := db.Model(&model.ProfileImage{}).Where("id = ?", imageID).Update("is_main_image", true).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DeleteImage owner 为 nil 时不校验归属；图片不存在或归属不符时返回 false。
func (r *ImageRepository) DeleteImage(ctx context.Context, imageID uint, owner *model.OwnerRef) (bool, error) {
	query := r.db.WithContext(ctx).Where("id = ?", imageID)
	if owner != nil {
		query = query.Scopes(ownedBy(*owner))
	}
	result := query.Delete(&model.ProfileImage{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
