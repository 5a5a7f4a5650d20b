package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthcheckHandler(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app)

	status, payload := get(t, ts, "/healthcheck")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "available", payload["status"])

	info := payload["system_info"].(map[string]interface{})
	assert.Equal(t, "testing", info["environment"])
}
