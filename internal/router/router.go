package router

import (
	"image-management-server/internal/handler"
	"image-management-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Router struct {
	images      *handler.ImageHandler
	owners      *handler.OwnerHandler
	system      *handler.SystemHandler
	redisClient *redis.Client
}

func NewRouter(images *handler.ImageHandler, owners *handler.OwnerHandler, system *handler.SystemHandler, redisClient *redis.Client) *Router {
	return &Router{
		images:      images,
		owners:      owners,
		system:      system,
		redisClient: redisClient,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/api")
	// 应用请求体大小限制中间件，上传接口单独限制
	api.Use(middleware.BodyLimitMiddleware())

	registerSystemRoutes(api, rt.system)
	registerImageRoutes(api, rt.images, middleware.RateLimitMiddleware("upload", rt.redisClient))
	registerOwnerRoutes(api, rt.owners)
}
