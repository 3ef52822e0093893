package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-api/helper"
	"blog-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(trusted []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(Dependencies{
		Helper:         helper.NewHTTPHelper(),
		Limiter:        middleware.NewIPRateLimiter(2, time.Minute),
		CORSOrigins:    []string{"http://localhost:3000"},
		TrustedProxies: trusted,
	})
}

func hit(r *gin.Engine, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestThrottleIgnoresSpoofedForwardedFor(t *testing.T) {
	r := newRouter(nil)

	codes := []int{
		hit(r, "203.0.113.7:5000", "10.0.0.1"),
		hit(r, "203.0.113.7:5001", "10.0.0.2"),
		hit(r, "203.0.113.7:5002", "10.0.0.3"),
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestThrottleHonoursTrustedProxy(t *testing.T) {
	r := newRouter([]string{"192.0.2.1"})

	codes := []int{
		hit(r, "192.0.2.1:5000", "198.51.100.1"),
		hit(r, "192.0.2.1:5001", "198.51.100.2"),
		hit(r, "192.0.2.1:5002", "198.51.100.3"),
		hit(r, "192.0.2.1:5003", "198.51.100.1"),
		hit(r, "192.0.2.1:5004", "198.51.100.1"),
	}

	// each forwarded client has its own bucket behind the proxy
	assert.Equal(t, []int{200, 200, 200, 200, http.StatusTooManyRequests}, codes)
}
