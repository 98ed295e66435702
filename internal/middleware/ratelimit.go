package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter enforces a sliding-window request cap per client key. The site
// runs two instances: a loose one in front of everything and a tight one on
// the public submission routes (donations, volunteer and partner forms).
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	limit   int
	window  time.Duration
	done    chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		buckets: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.prune(l.buckets[key], now)
	if len(kept) >= l.limit {
		l.buckets[key] = kept
		return false
	}
	l.buckets[key] = append(kept, now)
	return true
}

// prune drops timestamps older than the window, reusing the slice.
func (l *RateLimiter) prune(times []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Stop ends the background sweep. Call once, after the limiter leaves service.
func (l *RateLimiter) Stop() {
	close(l.done)
}

func (l *RateLimiter) sweep() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-tick.C:
			now := time.Now()
			l.mu.Lock()
			for k, times := range l.buckets {
				kept := l.prune(times, now)
				if len(kept) == 0 {
					delete(l.buckets, k)
				} else {
					l.buckets[k] = kept
				}
			}
			l.mu.Unlock()
		}
	}
}

// RateLimit limits by client IP.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
