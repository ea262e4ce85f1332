//go:build wireinject
// +build wireinject

package di

import (
	"image-management-server/internal/config"
	"image-management-server/internal/handler"
	"image-management-server/internal/repository"
	"image-management-server/internal/router"
	"image-management-server/internal/service"
	"image-management-server/internal/usecase/app"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, cfg config.Config) (*Application, error) {
	wire.Build(
		repository.NewRepositories,
		service.NewRedisClient,
		service.NewImageService,
		service.NewOwnerLocker,
		app.NewImageUseCase,
		app.NewOwnerUseCase,
		handler.NewImageHandler,
		handler.NewOwnerHandler,
		handler.NewSystemHandler,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
