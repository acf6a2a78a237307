package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitter-clone-backend/internal/interface/middleware"
)

// ipProbe returns a router that echoes the resolved client ip and request id
// from the context.
func ipProbe() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ip":         c.GetString(middleware.CtxRealIPKey),
			"request_id": c.GetString(middleware.CtxRequestIDKey),
		})
	})
	return r
}

func probeRequest(t *testing.T, headers map[string]string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ipProbe().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestRealIPPrefersCloudflareHeader(t *testing.T) {
	m := probeRequest(t, map[string]string{
		"CF-Connecting-IP": "203.0.113.7",
		"X-Forwarded-For":  "198.51.100.1, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.7", m["ip"])
}

func TestRealIPUsesLeftmostForwardedFor(t *testing.T) {
	m := probeRequest(t, map[string]string{
		"X-Forwarded-For": "198.51.100.1, 10.0.0.1",
	})
	assert.Equal(t, "198.51.100.1", m["ip"])
}

func TestRealIPFallsBackToPeerAddress(t *testing.T) {
	m := probeRequest(t, map[string]string{
		"CF-Connecting-IP": "not-an-ip",
	})
	assert.Equal(t, "192.0.2.10", m["ip"])
}

func TestRequestIDIsSetPerRequest(t *testing.T) {
	first := probeRequest(t, nil)
	second := probeRequest(t, nil)

	assert.NotEmpty(t, first["request_id"])
	assert.NotEmpty(t, second["request_id"])
	assert.NotEqual(t, first["request_id"], second["request_id"])
}
