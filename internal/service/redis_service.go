package service

import (
	"context"
	"fmt"
	"time"

	"image-management-server/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedisClient 创建 Redis 客户端；当未启用或不可用时返回 nil，调用方降级为内存模式。
func NewRedisClient(cfg config.Config) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Warn().Err(err).Msg("⚠️ Redis 不可用，降级为内存模式")
		return nil
	}

	log.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("✅ Redis 已连接")
	return client
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = "image_mgmt"
	}
	key := prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// CloseRedisClient 关闭 Redis 客户端连接。
func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
