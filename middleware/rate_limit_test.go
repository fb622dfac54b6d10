package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLimiterSet_PerKeyBuckets(t *testing.T) {
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(4) // one token every 15s, burst 2
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("a"))
	assert.True(t, set.allow("a"))
	assert.False(t, set.allow("a"))
	assert.True(t, set.allow("b"), "other clients keep their own bucket")

	now = now.Add(15 * time.Second)
	assert.True(t, set.allow("a"))
	assert.False(t, set.allow("a"))
}

func TestLimiterSet_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	set := newLimiterSet(1)
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("a"))
	now = now.Add(limiterIdle + time.Second)
	assert.True(t, set.allow("b"))
	assert.NotContains(t, set.limiters, "a")
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(2)) // burst 1
	r.POST("/new-post", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	r.POST("/api/v1/posts", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	send := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("/new-post").Code)
	w := send("/new-post")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate limit exceeded", w.Body.String())

	w = send("/api/v1/posts")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":42901,"message":"rate limit exceeded"}`, w.Body.String())
}
