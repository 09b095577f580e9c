package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/session"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/links", http.MethodGet, 200, 10*time.Millisecond)
	m.ObserveRequest("/api/links", http.MethodGet, 200, 20*time.Millisecond)
	m.ObserveRequest("", http.MethodGet, 404, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("/api/links", "GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")), 0)
}

func TestObserveSession(t *testing.T) {
	m := New()

	m.ObserveSession(session.Event{Kind: session.EventSignedIn, Session: domain.Session{UserID: "u"}})
	m.ObserveSession(session.Event{Kind: session.EventSignedOut, Session: domain.Session{UserID: "u"}})
	m.ObserveSession(session.Event{Kind: session.EventSignedIn, Session: domain.Session{UserID: "v"}})

	assert.InDelta(t, 2, testutil.ToFloat64(m.sessionEvents.WithLabelValues("signed_in")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.sessionEvents.WithLabelValues("signed_out")), 0)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("/healthz", http.MethodGet, 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "linkvault_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
