package app

import (
	"context"
	"testing"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/dto"
	"image-management-server/internal/model"
	"image-management-server/internal/repository"
	"image-management-server/internal/service"
	"image-management-server/internal/testutils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type appFixture struct {
	gdb     *gorm.DB
	repos   *repository.Repositories
	imageUC *ImageUseCase
	ownerUC *OwnerUseCase
}

func setupAppFixture(t *testing.T) *appFixture {
	t.Helper()

	gdb := testutils.SetupDB(t)
	repos := repository.NewRepositories(gdb)

	cfg := config.Config{}
	cfg.Upload.EnforceContentType = true
	imageService := service.NewImageService(cfg)
	locker := service.NewMemoryOwnerLocker(10 * time.Second)

	return &appFixture{
		gdb:     gdb,
		repos:   repos,
		imageUC: NewImageUseCase(repos, imageService, locker),
		ownerUC: NewOwnerUseCase(repos),
	}
}

func pngItem(isMain bool) dto.ImageUploadItem {
	return dto.ImageUploadItem{
		Base64Data:  testutils.PNGBase64(),
		ContentType: "image/png",
		FileName:    "a.png",
		IsMainImage: isMain,
	}
}

func jpegItem(isMain bool) dto.ImageUploadItem {
	return dto.ImageUploadItem{
		Base64Data:  testutils.JPEGBase64(),
		ContentType: "image/jpeg",
		FileName:    "a.jpg",
		IsMainImage: isMain,
	}
}

func (f *appFixture) list(t *testing.T, owner model.OwnerRef) []dto.ImageResponse {
	t.Helper()
	images, err := f.imageUC.ListImages(context.Background(), owner)
	require.NoError(t, err)
	return images
}

func countMain(images []dto.ImageResponse) int {
	n := 0
	for _, img := range images {
		if img.IsMainImage {
			n++
		}
	}
	return n
}
