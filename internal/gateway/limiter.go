package gateway

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/pkg/response"
)

// rateLimiter keeps one token bucket per caller.
type rateLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &rateLimiter{rps: rps, burst: burst}
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// middleware answers 429 once a caller exhausts its bucket. Callers are keyed
// by X-Sharer-User-Id, falling back to the client IP for anonymous routes.
func (l *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(auth.UserIDHeader)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !l.getLimiter(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
