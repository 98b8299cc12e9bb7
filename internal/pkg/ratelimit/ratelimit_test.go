package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := New(3, time.Minute)

	require.True(t, rl.Allow("k"))
	require.True(t, rl.Allow("k"))
	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))
	require.Equal(t, 0, rl.Remaining("k"))

	// Separate keys do not interfere.
	require.True(t, rl.Allow("other"))
}

func TestWindowExpiry(t *testing.T) {
	rl := New(1, 50*time.Millisecond)

	require.True(t, rl.Allow("k"))
	require.False(t, rl.Allow("k"))

	time.Sleep(60 * time.Millisecond)
	require.True(t, rl.Allow("k"))
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(New(1, time.Minute)))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	require.Equal(t, 429, w.Code)
}
