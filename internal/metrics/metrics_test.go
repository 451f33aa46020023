package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestEventPublished_CountsByResult(t *testing.T) {
	ok := get().eventsPublished.WithLabelValues("program.assigned", ResultOK)
	failed := get().eventsPublished.WithLabelValues("program.assigned", ResultError)
	okBefore := testutil.ToFloat64(ok)
	failedBefore := testutil.ToFloat64(failed)

	EventPublished("program.assigned", nil)
	EventPublished("program.assigned", errors.New("redis down"))
	EventPublished("program.assigned", nil)

	require.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	require.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	IdentityRequest("get_user", nil)
	HTTPRequest(http.MethodGet, "/api/exercises", http.StatusOK, 0.01)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "training_identity_requests_total")
	require.Contains(t, body, `training_http_requests_total{method="GET",route="/api/exercises",status="200"}`)
}
