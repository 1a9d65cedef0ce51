package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestInitIdempotent ensures Init can be called repeatedly without panicking
// on duplicate collector registration.
func TestInitIdempotent(t *testing.T) {
	Init()
	Init()

	ObserveRun("command", "ok")
	ObservePageFetch("ok")
	ObserveExtract("csv", "ok")
	ObserveCompletion("error", 120*time.Millisecond)
	ObserveDelivery("ok")
}

func TestHandlerServesMetrics(t *testing.T) {
	Init()
	ObserveRun("text", "ok")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), "shadowbot_runs_total")
}
