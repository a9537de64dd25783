package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

type operatorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per operator. Buckets idle for longer
// than idleTTL are dropped on the next sweep.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[int64]*operatorLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := max(cfg.SubmitPerMinute, 1)
	burst := max(cfg.SubmitBurst, 1)
	// an evicted bucket comes back full, so it must have refilled by then
	refill := time.Minute * time.Duration(burst) / time.Duration(perMinute)
	return &RateLimiter{
		limiters:  make(map[int64]*operatorLimiter),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		idleTTL:   max(cfg.IdleTTL, refill),
		lastSweep: time.Now(),
	}
}

func (rl *RateLimiter) getLimiter(operatorID int64, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.evictLocked(now)
	}

	entry, exists := rl.limiters[operatorID]
	if !exists {
		entry = &operatorLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[operatorID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// EvictIdle drops buckets unused since now minus idleTTL and returns how many
// remain.
func (rl *RateLimiter) EvictIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.evictLocked(now)
	return len(rl.limiters)
}

func (rl *RateLimiter) evictLocked(now time.Time) {
	for id, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, id)
		}
	}
	rl.lastSweep = now
}

// PerOperator must run after RequireAuth.
func (rl *RateLimiter) PerOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		op, ok := GetOperator(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoOperator, "Internal server error", nil)
			return
		}

		limiter := rl.getLimiter(op.ID(), time.Now())
		if !limiter.Allow() {
			slog.Warn("Rate limit exceeded", slog.Int64("operator_id", op.ID()))
			c.Header("Retry-After", strconv.Itoa(int(rl.retryAfter().Seconds())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests. Try again later.", nil)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) retryAfter() time.Duration {
	wait := time.Duration(float64(time.Second) / float64(rl.limit))
	return max(wait, time.Second)
}
