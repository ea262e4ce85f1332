package middleware

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"image-management-server/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// 测试内容：验证限流关闭时请求不会被拦截。
func TestRateLimitMiddleware_DisabledAllowsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withConfig(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{Enabled: false, UploadRPS: 0.001, UploadBurst: 1}
	})

	r := gin.New()
	r.Use(RateLimitMiddleware("upload", nil))
	r.GET("/x", okHandler)

	for i := 0; i < 3; i++ {
		if w := performFrom(r, http.MethodGet, "/x", "1.2.3.4:1111"); w.Code != http.StatusOK {
			t.Fatalf("期望 200，实际为 %d", w.Code)
		}
	}
}

// 测试内容：验证限流开启且几乎不补充令牌时会阻止突发请求，不同 IP 互不影响。
func TestRateLimitMiddleware_EnabledBlocksBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withConfig(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{Enabled: true, UploadRPS: 0.001, UploadBurst: 1}
	})

	r := gin.New()
	r.Use(RateLimitMiddleware("upload", nil))
	r.GET("/x", okHandler)

	if w := performFrom(r, http.MethodGet, "/x", "1.2.3.4:1111"); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	if w := performFrom(r, http.MethodGet, "/x", "1.2.3.4:1111"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("期望 429，实际为 %d", w.Code)
	}
	if w := performFrom(r, http.MethodGet, "/x", "5.6.7.8:1111"); w.Code != http.StatusOK {
		t.Fatalf("期望 其他 IP 不受影响，实际为 %d", w.Code)
	}
}

// 测试内容：验证 Redis 不可用时回退为内存限流而不是放行全部请求。
func TestRateLimitMiddleware_FallsBackToMemoryWhenRedisFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withConfig(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{Enabled: true, UploadRPS: 0.001, UploadBurst: 1}
	})

	r := gin.New()
	r.Use(RateLimitMiddleware("upload", unreachableRedis(t)))
	r.GET("/x", okHandler)

	if w := performFrom(r, http.MethodGet, "/x", "1.2.3.4:1111"); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
	if w := performFrom(r, http.MethodGet, "/x", "1.2.3.4:1111"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("期望 429，实际为 %d", w.Code)
	}
}

// 测试内容：验证同一 IP 并发取用 limiter 时返回同一实例，空闲超时的 IP 会被清理。需配合 -race 运行。
func TestIPRateLimiter_ConcurrentAccessAndEviction(t *testing.T) {
	limiter := &IPRateLimiter{r: rate.Limit(100), b: 100}

	var wg sync.WaitGroup
	seen := make([]*rate.Limiter, 16)
	for n := range seen {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			seen[n] = limiter.getLimiter("1.2.3.4")
			limiter.evictIdle(time.Now(), time.Hour)
		}(n)
	}
	wg.Wait()

	for _, l := range seen {
		if l != seen[0] {
			t.Fatalf("期望 同一 IP 共用 limiter")
		}
	}

	limiter.getLimiter("5.6.7.8")
	limiter.evictIdle(time.Now().Add(time.Hour), 3*time.Minute)
	if _, ok := limiter.ips.Load("1.2.3.4"); ok {
		t.Fatalf("期望 空闲 IP 被清理")
	}
	if _, ok := limiter.ips.Load("5.6.7.8"); ok {
		t.Fatalf("期望 空闲 IP 被清理")
	}
}
