package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/smartflags/seat-allocation/internal/config"
)

func rateContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/allocations/5", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/allocations/:id")
	return c
}

// The limiter mounts after JWTAuth, so user-aware strategies must key
// on the authenticated user id when present and "anon" otherwise.
func TestBuildRateKeyUsesAuthenticatedUser(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user_route"}
	c := rateContext()
	assert.Equal(t, "rl:user:anon:route:GET /v1/allocations/:id", buildRateKey(cfg, c))

	c.Set("user_id", "7")
	assert.Equal(t, "rl:user:7:route:GET /v1/allocations/:id", buildRateKey(cfg, c))
}

func TestBuildRateKeyDefaultStrategy(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}
	c := rateContext()
	c.Set("user_id", "7")
	assert.Equal(t, "rl:ip:192.0.2.1:user:7:route:GET /v1/allocations/:id", buildRateKey(cfg, c))
}
