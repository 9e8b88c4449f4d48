package middleware

import (
	"net/http"
	"sync"
	"time"

	"backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitorIdleTTL is how long an IP may stay quiet before its limiter
// state is dropped. Dropping state resets the budget, so the TTL must
// exceed the time a full burst takes to replenish.
const visitorIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter tracks one token bucket per client IP. Stale entries are
// pruned opportunistically so the map cannot grow without bound under
// address-cycling clients.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	perSecond rate.Limit
	burst     int
	lastPrune time.Time
}

func newIPLimiter(perMinute, burst int) *ipLimiter {
	return &ipLimiter{
		visitors:  make(map[string]*visitor),
		perSecond: rate.Limit(float64(perMinute) / 60.0),
		burst:     burst,
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) >= visitorIdleTTL {
		l.pruneLocked(now)
		l.lastPrune = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *ipLimiter) pruneLocked(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= visitorIdleTTL {
			delete(l.visitors, ip)
		}
	}
}

// LoginRateLimiter limits login attempts per client IP. Exceeding the
// budget answers 429 RATE_LIMITED, distinct from an auth failure.
func LoginRateLimiter(perMinute, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(perMinute, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			abortWithCode(c, http.StatusTooManyRequests, models.CodeRateLimited)
			return
		}
		c.Next()
	}
}
