package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDHeader(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	res, err := ts.Client().Get(ts.URL + "/healthcheck")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication(t)
	app.config.limiter.enabled = true
	app.config.limiter.rps = 2
	app.config.limiter.burst = 4
	ts := newTestServer(t, app)

	// 桶深 4：前四个请求放行，第五个撞限
	for i := 0; i < 4; i++ {
		status, _ := get(t, ts, "/healthcheck")
		require.Equal(t, http.StatusOK, status)
	}

	status, payload := get(t, ts, "/healthcheck")
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate limit exceeded", payload["error"])
}

func TestCORSTrustedOrigin(t *testing.T) {
	app := newTestApplication(t)
	app.config.cors.trustedOrigins = []string{"https://example.com"}
	ts := newTestServer(t, app)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthcheck", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "https://example.com", res.Header.Get("Access-Control-Allow-Origin"))

	t.Run("TestUntrustedOrigin", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthcheck", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://evil.example")

		res, err := ts.Client().Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	res, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}
