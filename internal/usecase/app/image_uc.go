package app

import (
	"context"
	"fmt"

	"image-management-server/internal/common"
	"image-management-server/internal/consts"
	"image-management-server/internal/dto"
	"image-management-server/internal/model"
	"image-management-server/internal/repository"

	"github.com/rs/zerolog/log"
)

// batchFold 逐张校验上传批次时的累加状态
type batchFold struct {
	images      []*model.ProfileImage
	errors      []string
	mainClaimed bool
}

// foldBatch 校验批次内每一张图片。失败项记录为 "Image <k>: <原因>"，k 为其在批次中的位置（从 1 开始）；
// 批次内只有第一张请求设为主图且通过校验的图片成为主图。
func (c *ImageUseCase) foldBatch(owner model.OwnerRef, items []dto.ImageUploadItem) batchFold {
	var acc batchFold
	for i, item := range items {
		validated, err := c.imageService.ValidateImage(item.Base64Data, item.ContentType)
		if err == nil {
			err = c.imageService.ValidateMetadata(item.FileName, item.Description)
		}
		if err != nil {
			acc.errors = append(acc.errors, fmt.Sprintf("Image %d: %s", i+1, err.Error()))
			continue
		}

		isMain := item.IsMainImage && !acc.mainClaimed
		if isMain {
			acc.mainClaimed = true
		}

		image := &model.ProfileImage{
			Base64Data:  validated.Base64Data,
			ContentType: validated.ContentType,
			FileName:    item.FileName,
			Description: item.Description,
			FileSize:    validated.FileSize,
			IsMainImage: isMain,
		}
		owner.Assign(image)
		acc.images = append(acc.images, image)
	}
	return acc
}

// UploadImages 为归属方批量上传图片。
// 整个过程持有归属方锁并在同一事务内完成：校验归属方、计数、截断批次、逐张校验、写入。
// 超出剩余配额的图片被静默丢弃。批次中有主图时，归属方原有主图在同一事务内被清除。
func (c *ImageUseCase) UploadImages(ctx context.Context, owner model.OwnerRef, items []dto.ImageUploadItem) *dto.CommandResult {
	result := dto.NewCommandResult()
	if len(items) == 0 {
		return result.Fail(consts.MsgImagesRequired)
	}

	unlock, err := c.locker.Lock(ctx, owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner.String()).Msg("获取归属方锁失败")
		return result.Fail(consts.MsgUploadFailed, err.Error())
	}
	defer unlock()

	err = c.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		exists, err := tx.Owner.LockOwner(ctx, owner)
		if err != nil {
			return err
		}
		if !exists {
			result.Fail(fmt.Sprintf("%s with ID %d not found.", owner.Label(), owner.ID))
			return nil
		}

		count, err := tx.Image.CountByOwner(ctx, owner)
		if err != nil {
			return err
		}
		available := model.RemainingImageSlots(count)
		if available <= 0 {
			result.Fail(fmt.Sprintf("Maximum of %d images allowed. Currently have %d images.", consts.MaxImagesPerOwner, count))
			return nil
		}

		batch := items
		if len(batch) > available {
			batch = batch[:available]
		}

		acc := c.foldBatch(owner, batch)
		result.Errors = append(result.Errors, acc.errors...)
		if len(acc.images) == 0 {
			result.Fail(consts.MsgNoValidImages)
			return nil
		}

		if acc.mainClaimed {
			if err := tx.Image.ClearMain(ctx, owner); err != nil {
				return err
			}
		}
		if err := tx.Image.Add(ctx, acc.images...); err != nil {
			return err
		}

		result.Success = true
		result.Count = len(acc.images)
		result.ID = uint(len(acc.images))
		result.Message = fmt.Sprintf("Successfully uploaded %d image(s).", len(acc.images))
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("owner", owner.String()).Msg("上传图片失败")
		result.Count = 0
		result.ID = 0
		return result.Fail(consts.MsgUploadFailed, err.Error())
	}

	if result.Success {
		log.Info().Str("owner", owner.String()).Int("count", result.Count).Int("rejected", len(result.Errors)).Msg("图片上传成功")
	}
	return result
}

// ListImages 按主图优先、上传时间升序返回归属方的图片；归属方不存在时返回空列表
func (c *ImageUseCase) ListImages(ctx context.Context, owner model.OwnerRef) ([]dto.ImageResponse, error) {
	images, err := c.repos.Image.ListByOwner(ctx, owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner.String()).Msg("查询图片失败")
		return nil, common.NewInternalError(consts.MsgListImagesFailed)
	}
	return dto.NewImageResponses(images), nil
}

// DeleteImage 删除图片。owner 非空时只删除该归属方下的图片；
// 图片不存在与归属不符返回相同提示，不暴露图片是否存在。
func (c *ImageUseCase) DeleteImage(ctx context.Context, imageID uint, owner *model.OwnerRef) *dto.CommandResult {
	result := dto.NewCommandResult()

	err := c.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		deleted, err := tx.Image.DeleteImage(ctx, imageID, owner)
		if err != nil {
			return err
		}
		if !deleted {
			result.Fail(consts.MsgImageDeleteNotFound)
			return nil
		}
		result.Success = true
		result.ID = imageID
		result.Message = consts.MsgImageDeleted
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("image_id", imageID).Msg("删除图片失败")
		result.ID = 0
		return result.Fail(consts.MsgDeleteFailed, err.Error())
	}
	return result
}

// SetMainImage 将图片设为归属方的主图，并清除该归属方的其他主图。
// 图片不存在与归属不符返回相同提示。
func (c *ImageUseCase) SetMainImage(ctx context.Context, imageID uint, owner model.OwnerRef) *dto.CommandResult {
	result := dto.NewCommandResult()

	unlock, err := c.locker.Lock(ctx, owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner.String()).Msg("获取归属方锁失败")
		return result.Fail(consts.MsgSetMainFailed, err.Error())
	}
	defer unlock()

	err = c.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Owner.LockOwner(ctx, owner); err != nil {
			return err
		}
		image, err := tx.Image.FindByID(ctx, imageID)
		if err != nil && !repository.IsNotFound(err) {
			return err
		}
		if !owner.Owns(image) {
			result.Fail(consts.MsgMainImageNotFound)
			return nil
		}
		if _, err := tx.Image.SetMain(ctx, imageID, owner); err != nil {
			return err
		}
		result.Success = true
		result.ID = imageID
		result.Message = consts.MsgMainImageSet
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("image_id", imageID).Str("owner", owner.String()).Msg("设置主图失败")
		result.ID = 0
		return result.Fail(consts.MsgSetMainFailed, err.Error())
	}
	return result
}
