package httpapi

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/haxsysgit/coursework-backend/internal/config"
)

const (
	visitorTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

type visitor struct {
	limiter *rate.Limiter
	seen    time.Time
}

// clientLimiter держит token bucket на каждого клиента одного маршрута
type clientLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// newClientLimiter возвращает nil, если лимит отключён
func newClientLimiter(cfg config.RateLimit) *clientLimiter {
	if cfg.RequestsPerMinute <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiter{
		limit:    rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:    burst,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (l *clientLimiter) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, v := range l.visitors {
			if now.Sub(v.seen) > visitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.seen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

func (l *clientLimiter) retryAfter() string {
	secs := math.Ceil(1 / float64(l.limit))
	return strconv.Itoa(int(math.Max(secs, 1)))
}

func (s *Server) rateLimit(route string) gin.HandlerFunc {
	l := newClientLimiter(s.pipeline.RateLimits[route])
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if l.allow(c.ClientIP()) {
			c.Next()
			return
		}
		if s.metrics != nil {
			s.metrics.RecordRateLimited(route)
		}
		c.Header("Retry-After", l.retryAfter())
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many requests, please try again later.",
			"requestId": requestID(c),
		})
	}
}
