package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	count int
	until time.Time
}

type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

var shared = &limiter{buckets: make(map[string]*bucket)}

// RateLimit enforces a fixed-window request budget per (client IP, scope)
// pair. Scopes keep separate counters so OTP traffic does not eat into
// the donation budget and vice versa.
func RateLimit(scope string, limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + "|" + clientIP(c.Request)
		if !shared.allow(key, limit, per) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Request was throttled."})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *limiter) allow(key string, limit int, per time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.until) {
		b = &bucket{count: 0, until: now.Add(per)}
		l.buckets[key] = b
	}
	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
