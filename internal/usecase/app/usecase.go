package app

import (
	"image-management-server/internal/repository"
	"image-management-server/internal/service"
)

type ImageUseCase struct {
	repos        *repository.Repositories
	imageService *service.ImageService
	locker       service.OwnerLocker
}

type OwnerUseCase struct {
	repos *repository.Repositories
}

func NewImageUseCase(
	repos *repository.Repositories,
	imageService *service.ImageService,
	locker service.OwnerLocker,
) *ImageUseCase {
	return &ImageUseCase{
		repos:        repos,
		imageService: imageService,
		locker:       locker,
	}
}

func NewOwnerUseCase(repos *repository.Repositories) *OwnerUseCase {
	return &OwnerUseCase{repos: repos}
}
