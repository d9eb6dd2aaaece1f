package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"group-chat/auth"
	"group-chat/contract"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// UserRateLimiter throttles message sends per authenticated user.
// Idle limiters are evicted by Run, which is meant to be supervised.
type UserRateLimiter struct {
	visitors sync.Map
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	clock    contract.Clock
	log      *slog.Logger
}

type visitor struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewUserRateLimiter(perMinute, burst int, idleTTL time.Duration, clock contract.Clock, log *slog.Logger) *UserRateLimiter {
	return &UserRateLimiter{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: idleTTL,
		clock:   clock,
		log:     log,
	}
}

// Allow consumes one token of userID's bucket.
func (l *UserRateLimiter) Allow(userID string) bool {
	now := l.clock()
	v, _ := l.visitors.LoadOrStore(userID, &visitor{limiter: rate.NewLimiter(l.limit, l.burst)})
	vi := v.(*visitor)
	vi.mu.Lock()
	defer vi.mu.Unlock()
	vi.lastSeen = now
	return vi.limiter.AllowN(now, 1)
}

func (l *UserRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserID(c)
		if !l.Allow(userID) {
			l.log.Warn("Rate limit exceeded", "user", userID, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Code: "RATE_LIMITED", Message: "too many messages, slow down"})
			return
		}
		c.Next()
	}
}

// Run evicts limiters idle for longer than idleTTL until ctx is done.
func (l *UserRateLimiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *UserRateLimiter) evictIdle() {
	cutoff := l.clock().Add(-l.idleTTL)
	l.visitors.Range(func(k, v any) bool {
		vi := v.(*visitor)
		vi.mu.Lock()
		idle := vi.lastSeen.Before(cutoff)
		vi.mu.Unlock()
		if idle {
			l.visitors.Delete(k)
		}
		return true
	})
}
