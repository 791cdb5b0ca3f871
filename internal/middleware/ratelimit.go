package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter keeps a token bucket per client IP. Idle buckets are evicted so
// the map does not grow with every visitor ever seen.
type ipLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     rate.Limit
	burst    int
	idleTTL  time.Duration
	lastSeen map[string]time.Time
}

type bucket struct {
	limiter *rate.Limiter
}

// NewIPRateLimiter allows rps sustained requests per IP with the given burst.
func NewIPRateLimiter(rps float64, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets:  make(map[string]*bucket),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
	go l.evictLoop()
	return l
}

func (l *ipLimiter) evictLoop() {
	for {
		time.Sleep(l.idleTTL)
		l.mu.Lock()
		cutoff := time.Now().Add(-l.idleTTL)
		for ip, seen := range l.lastSeen {
			if seen.Before(cutoff) {
				delete(l.lastSeen, ip)
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	l.lastSeen[ip] = time.Now()
	l.mu.Unlock()
	return b.limiter.Allow()
}

// RateLimit rejects requests over the per-IP budget. Used on the public
// booking endpoint, which is the only unauthenticated write surface.
func (l *ipLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error":  "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
