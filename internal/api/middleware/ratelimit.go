package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/fai-lds/lds-client/internal/api/metrics"
)

const sweepInterval = 3 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. Idle buckets are
// swept on access once sweepInterval has passed, so no goroutine is needed.
type IPRateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*rate.Limiter
	r         rate.Limit
	b         int
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limits:    make(map[string]*rate.Limiter),
		r:         r,
		b:         b,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether ip may proceed now.
func (i *IPRateLimiter) Allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= sweepInterval {
		i.sweep(now)
	}

	limiter, ok := i.limits[ip]
	if !ok {
		limiter = rate.NewLimiter(i.r, i.b)
		i.limits[ip] = limiter
	}
	return limiter.AllowN(now, 1)
}

// sweep drops buckets that have refilled completely. Caller holds mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	for ip, limiter := range i.limits {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(i.limits, ip)
		}
	}
	i.lastSweep = now
}

// Len returns the number of tracked IPs.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.limits)
}

// Middleware rejects requests over the limit with 429.
func (i *IPRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if ip == "" {
			ip = "unknown_ip"
		}
		if !i.Allow(ip) {
			metrics.RateLimitedTotal.WithLabelValues(c.Path()).Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
		}
		return next(c)
	}
}
