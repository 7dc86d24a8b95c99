package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"brightline/internal/pkg/logger"
	"brightline/internal/pkg/response"
)

// RateStore counts hits per key within fixed windows.
type RateStore interface {
	// Hit records one request and returns the count in the current window
	// and when that window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

type MemoryRateStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{windows: make(map[string]*memoryWindow), now: time.Now}
}

func (s *MemoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Sweep drops windows that have already reset.
func (s *MemoryRateStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, k)
		}
	}
}

type RedisRateStore struct {
	rdb *redis.Client
}

func NewRedisRateStore(rdb *redis.Client) *RedisRateStore {
	return &RedisRateStore{rdb: rdb}
}

func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	redisKey := "ratelimit:" + key
	count, err := s.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, time.Time{}, err
	}

	ttl, err := s.rdb.PTTL(ctx, redisKey).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	// A fresh key, or one left without expiry by an interrupted request.
	if count == 1 || ttl < 0 {
		if err := s.rdb.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}

// RateLimit allows max requests per client IP per window. Store failures
// let the request through.
func RateLimit(store RateStore, max int, window time.Duration) gin.HandlerFunc {
	limit := strconv.Itoa(max)
	return func(c *gin.Context) {
		count, resetAt, err := store.Hit(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count > int64(max) {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.RateLimited(c, "Too many requests from this IP, please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
