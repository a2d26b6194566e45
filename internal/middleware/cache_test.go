package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/smartflags/seat-allocation/internal/config"
)

func listingContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/properties/1/seats"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/properties/:property_id/seats")
	return c
}

// Bumping the generation must change every key, so a mutation drops
// all cached listings at once.
func TestCacheKeyIncludesGeneration(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	c := listingContext("?status=FREE")

	k1 := cacheKeyFrom(cfg, "1", c)
	assert.Equal(t, k1, cacheKeyFrom(cfg, "1", c))
	assert.NotEqual(t, k1, cacheKeyFrom(cfg, "2", c))
	assert.True(t, strings.HasPrefix(k1, "cache:"))
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	free := cacheKeyFrom(cfg, "1", listingContext("?status=FREE"))
	blocked := cacheKeyFrom(cfg, "1", listingContext("?status=BLOCKED"))
	assert.NotEqual(t, free, blocked)
}
