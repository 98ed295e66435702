package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	l := NewRateLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.False(t, l.Allow("10.0.0.1"))
	// other keys are independent
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	l := NewRateLimiter(1, 30*time.Millisecond)
	defer l.Stop()

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
	time.Sleep(50 * time.Millisecond)
	assert.True(t, l.Allow("k"))
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewRateLimiter(1, time.Minute)
	defer l.Stop()

	r := gin.New()
	r.GET("/ping", RateLimit(l), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "request %d", i+1)
	}
}

func TestRateLimiterStopEndsSweep(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	l.Stop()
	// the limiter still answers after the sweep goroutine exits
	assert.True(t, l.Allow("k"))
}
