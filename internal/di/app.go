package di

import (
	"image-management-server/internal/router"
	"image-management-server/internal/service"
	"image-management-server/internal/usecase/app"

	"github.com/redis/go-redis/v9"
)

type Application struct {
	Router *router.Router
	Owners *app.OwnerUseCase
	Redis  *redis.Client
}

func NewApplication(r *router.Router, owners *app.OwnerUseCase, redisClient *redis.Client) *Application {
	return &Application{
		Router: r,
		Owners: owners,
		Redis:  redisClient,
	}
}

// Close 释放应用持有的外部连接
func (a *Application) Close() error {
	return service.CloseRedisClient(a.Redis)
}
