package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getStatus(t *testing.T, endpoint http.HandlerFunc) (int, statusResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	endpoint(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w.Code, resp
}

func waitForCheck(t *testing.T, endpoint http.HandlerFunc, want int) statusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		code, resp := getStatus(t, endpoint)
		if code == want {
			return resp
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("endpoint never reached status %d", want)
	return statusResponse{}
}

func TestReadyEndpoint_NotReadyUntilMarked(t *testing.T) {
	h := New()

	code, resp := getStatus(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks, "_readiness")

	h.SetReady(true)
	code, resp = getStatus(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)

	// Graceful shutdown flips it back.
	h.SetReady(false)
	code, _ = getStatus(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestLiveEndpoint_ReportsFailingCheck(t *testing.T) {
	h := New()
	h.AddLivenessCheck("broken", time.Second, func(context.Context) error {
		return errors.New("component down")
	})
	h.Start(context.Background(), time.Hour)
	defer h.Stop()

	resp := waitForCheck(t, h.LiveEndpoint, http.StatusServiceUnavailable)
	assert.Equal(t, "component down", resp.Checks["broken"])
}

func TestReadyEndpoint_FailingCheckOverridesReady(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("db", time.Second, func(context.Context) error {
		return errors.New("ping failed")
	})
	h.Start(context.Background(), time.Hour)
	defer h.Stop()

	resp := waitForCheck(t, h.ReadyEndpoint, http.StatusServiceUnavailable)
	assert.Equal(t, "ping failed", resp.Checks["db"])
}

func TestHealthyChecksPass(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddLivenessCheck("ok", time.Second, func(context.Context) error { return nil })
	h.AddReadinessCheck("ok", time.Second, func(context.Context) error { return nil })
	h.Start(context.Background(), time.Hour)
	defer h.Stop()

	code, resp := getStatus(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Checks)

	code, _ = getStatus(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
