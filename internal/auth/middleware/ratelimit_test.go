package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_Allow(t *testing.T) {
	l := NewLoginLimiter(1, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, l.Allow("10.0.0.2"), "other clients keep their budget")
}

func TestLoginLimiter_Reset(t *testing.T) {
	busy := NewLoginLimiter(1, 3)
	busy.Allow("10.0.0.1")
	assert.Equal(t, 0, busy.Reset(), "client below burst is kept")

	fast := NewLoginLimiter(600000, 1)
	fast.Allow("10.0.0.1")
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, fast.Reset(), "refilled client is dropped")
}

func TestLoginLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	l := NewLoginLimiter(1, 1)
	r.POST("/login", l.Middleware(func(c *gin.Context) {
		c.String(http.StatusTooManyRequests, "muitas tentativas")
	}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, post().Code)
	rr := post()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "muitas tentativas", rr.Body.String())
}
