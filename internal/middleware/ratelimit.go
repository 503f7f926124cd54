package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

// visitorIdleTTL is how long a client's bucket survives without requests.
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RejectionRecorder counts requests turned away by the limiter.
type RejectionRecorder interface {
	RecordRateLimited(route string)
}

// RateLimiter applies a token bucket per client IP. A client that drains its
// bucket is blocked outright for blockTime. Idle clients are forgotten.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	blocked   map[string]time.Time
	lastSweep time.Time
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	now       func() time.Time
	recorder  RejectionRecorder
	logger    *zap.Logger
}

// NewRateLimiter allows perMinute requests per client with the given burst.
func NewRateLimiter(perMinute, burst int, blockTime time.Duration, recorder RejectionRecorder, logger *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	if burst <= 0 {
		burst = perMinute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		blocked:   make(map[string]time.Time),
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		blockTime: blockTime,
		now:       time.Now,
		recorder:  recorder,
		logger:    logger,
	}
}

// Handler rejects over-limit clients with RATE_LIMITED. route labels the rejection metric.
func (r *RateLimiter) Handler(route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if r.allow(ip) {
			c.Next()
			return
		}
		if r.recorder != nil {
			r.recorder.RecordRateLimited(route)
		}
		r.logger.Info("rate limited", zap.String("ip", ip), zap.String("route", route))
		c.Header("Retry-After", "60")
		response.Error(c, appErrors.ErrRateLimited)
		c.Abort()
	}
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= visitorIdleTTL {
		r.sweep(now)
	}
	if until, found := r.blocked[ip]; found {
		if now.Before(until) {
			return false
		}
		delete(r.blocked, ip)
	}

	v, exists := r.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.visitors[ip] = v
	}
	v.seen = now
	if v.limiter.AllowN(now, 1) {
		return true
	}
	if r.blockTime > 0 {
		r.blocked[ip] = now.Add(r.blockTime)
	}
	return false
}

// sweep drops idle buckets and expired blocks. Caller holds mu.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, v := range r.visitors {
		if now.Sub(v.seen) > visitorIdleTTL {
			delete(r.visitors, ip)
		}
	}
	for ip, until := range r.blocked {
		if !now.Before(until) {
			delete(r.blocked, ip)
		}
	}
	r.lastSweep = now
}
