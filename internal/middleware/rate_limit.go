package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/consts"
	"image-management-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var errRedisUnavailable = errors.New("redis client unavailable")

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // UnixNano，请求与清理协程并发读写
}

func (c *client) touch() {
	c.lastSeen.Store(time.Now().UnixNano())
}

func (c *client) idleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, c.lastSeen.Load()))
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	c := &client{limiter: rate.NewLimiter(i.r, i.b)}
	c.touch()
	i.ips.Store(ip, c)

	return c.limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.evictIdle(time.Now(), 3*time.Minute)
	}
}

// evictIdle 删除空闲超过 maxIdle 的 IP
func (i *IPRateLimiter) evictIdle(now time.Time, maxIdle time.Duration) {
	i.ips.Range(func(key, value interface{}) bool {
		if value.(*client).idleFor(now) > maxIdle {
			i.ips.Delete(key)
		}
		return true
	})
}

// allow 按当前配置检查 ip 是否还有令牌，配置变更时同步更新 limiter
func (i *IPRateLimiter) allow(ip string, rps float64, burst int) bool {
	l := i.getLimiter(ip)
	if l.Limit() != rate.Limit(rps) {
		l.SetLimit(rate.Limit(rps))
	}
	if l.Burst() != burst {
		l.SetBurst(burst)
	}
	return l.Allow()
}

// tokenBucketScript 令牌桶：KEYS[1] 桶键；ARGV 依次为 每秒令牌数、桶容量、当前毫秒时间戳、过期毫秒数
var tokenBucketScript = redis.NewScript(`
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])
local data = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil or ts == nil then
  tokens = burst
  ts = now
end
local elapsed = math.max(0, now - ts)
tokens = math.min(burst, tokens + elapsed * rate / 1000)
local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end
redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'ts', tostring(now))
redis.call('PEXPIRE', KEYS[1], ttl)
return allowed
`)

// allowByRedisRateLimit 在 Redis 中按 scope+ip 维护令牌桶，多实例共享限流状态。
// rps 或 burst 不大于 0 视为不限流。
func allowByRedisRateLimit(ctx context.Context, client *redis.Client, scope, ip string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}
	if client == nil {
		return false, errRedisUnavailable
	}

	ttl := int64(math.Ceil(float64(burst)/rps*1000)) + 1000
	key := service.RedisKey("ratelimit", scope, ip)
	res, err := tokenBucketScript.Run(ctx, client, []string{key}, rps, burst, time.Now().UnixMilli(), ttl).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// RateLimitMiddleware 按客户端 IP 限制上传频率。
// 提供 Redis 客户端时使用共享令牌桶，Redis 出错时回退到进程内限流。
func RateLimitMiddleware(scope string, redisClient *redis.Client) gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled || cfg.UploadRPS <= 0 || cfg.UploadBurst <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if redisClient != nil {
			ok, err := allowByRedisRateLimit(c.Request.Context(), redisClient, scope, ip, cfg.UploadRPS, cfg.UploadBurst)
			if err == nil {
				if !ok {
					rejectTooManyRequests(c)
					return
				}
				c.Next()
				return
			}
			log.Warn().Err(err).Str("scope", scope).Msg("⚠️ Redis 限流失败，回退为内存限流")
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst)
		})
		if !limiter.allow(ip, cfg.UploadRPS, cfg.UploadBurst) {
			rejectTooManyRequests(c)
			return
		}
		c.Next()
	}
}

func rejectTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": consts.MsgTooManyRequests})
	c.Abort()
}
