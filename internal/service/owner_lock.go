package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// OwnerLocker 按归属方串行化上传与设置主图，防止"先计数后插入"的竞态。
// 返回的 unlock 可重复调用。
type OwnerLocker interface {
	Lock(ctx context.Context, owner model.OwnerRef) (unlock func(), err error)
}

func NewOwnerLocker(client *redis.Client, cfg config.Config) OwnerLocker {
	timeout := time.Duration(cfg.Upload.LockTimeoutSeconds) * time.Second
	memory := NewMemoryOwnerLocker(timeout)
	if client == nil {
		return memory
	}
	return NewRedisOwnerLocker(client, timeout, memory)
}

func ownerLockKey(owner model.OwnerRef) string {
	return string(owner.Kind) + ":" + strconv.FormatUint(uint64(owner.ID), 10)
}

// MemoryOwnerLocker 进程内按键加锁，空闲的键会被回收
type MemoryOwnerLocker struct {
	mu      sync.Mutex
	locks   map[string]*ownerLock
	timeout time.Duration
}

type ownerLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryOwnerLocker(timeout time.Duration) *MemoryOwnerLocker {
	return &MemoryOwnerLocker{
		locks:   make(map[string]*ownerLock),
		timeout: timeout,
	}
}

func (m *MemoryOwnerLocker) Lock(ctx context.Context, owner model.OwnerRef) (func(), error) {
	key := ownerLockKey(owner)

	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &ownerLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, l)
		return nil, fmt.Errorf("acquire owner lock %s: %w", owner, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			m.release(key, l)
		})
	}, nil
}

func (m *MemoryOwnerLocker) release(key string, l *ownerLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}

// 仅当锁仍由自己持有时删除
var releaseOwnerLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOwnerLocker 基于 SET NX PX 的分布式锁，多实例部署时共享。
// Redis 出错时退回进程内锁，并由数据库行锁兜底。
type RedisOwnerLocker struct {
	client   *redis.Client
	timeout  time.Duration
	ttl      time.Duration
	retry    time.Duration
	fallback OwnerLocker
}

func NewRedisOwnerLocker(client *redis.Client, timeout time.Duration, fallback OwnerLocker) *RedisOwnerLocker {
	ttl := 2 * timeout
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisOwnerLocker{
		client:   client,
		timeout:  timeout,
		ttl:      ttl,
		retry:    25 * time.Millisecond,
		fallback: fallback,
	}
}

func (r *RedisOwnerLocker) Lock(ctx context.Context, owner model.OwnerRef) (func(), error) {
	key := RedisKey("owner_lock", ownerLockKey(owner))
	token := uuid.NewString()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("acquire owner lock %s: %w", owner, ctx.Err())
			}
			log.Warn().Err(err).Str("owner", owner.String()).Msg("⚠️ Redis 加锁失败，退回进程内锁")
			return r.fallback.Lock(ctx, owner)
		}
		if ok {
			break
		}

		timer := time.NewTimer(r.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("acquire owner lock %s: %w", owner, ctx.Err())
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseOwnerLockScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("⚠️ 释放 Redis 归属方锁失败，等待过期")
			}
		})
	}, nil
}
