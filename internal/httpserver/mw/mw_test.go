package mw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", tt.header)
		assert.Equal(t, tt.want, BearerToken(r), "header %q", tt.header)
	}
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"links.example.com", "links.example.com", true},
		{"a.example.com", "*.example.com", true},
		{"a.b.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"badexample.com", "*.example.com", false},
		{"example.org", "example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchHost(tt.host, tt.pattern), "%s vs %s", tt.host, tt.pattern)
	}
}

func TestEnforceHostIgnoresPort(t *testing.T) {
	h := EnforceHost([]string{"Links.Example.com"}, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "http://links.example.com:8080/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAllowOnlyCIDRS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name       string
		allowed    []string
		remote     string
		xff        string
		trustProxy bool
		want       int
	}{
		{"empty list passes", nil, "203.0.113.9:1000", "", false, http.StatusOK},
		{"cidr match", []string{"10.0.0.0/8"}, "10.1.2.3:1000", "", false, http.StatusOK},
		{"exact ip", []string{"203.0.113.9"}, "203.0.113.9:1000", "", false, http.StatusOK},
		{"outside", []string{"10.0.0.0/8"}, "203.0.113.9:1000", "", false, http.StatusForbidden},
		{"forwarded ignored", []string{"10.0.0.0/8"}, "203.0.113.9:1000", "10.0.0.1", false, http.StatusForbidden},
		{"forwarded trusted", []string{"10.0.0.0/8"}, "127.0.0.1:1000", "10.0.0.1, 127.0.0.1", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			w := httptest.NewRecorder()
			AllowOnlyCIDRS(tt.allowed, tt.trustProxy, logger.Nop())(ok).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type resolverFunc func(ctx context.Context, token string) (*domain.Session, error)

func (f resolverFunc) Current(ctx context.Context, token string) (*domain.Session, error) {
	return f(ctx, token)
}

func TestAuthenticate(t *testing.T) {
	ada := &domain.Session{UserID: "u1", Email: "ada@example.com"}
	resolver := resolverFunc(func(_ context.Context, token string) (*domain.Session, error) {
		switch token {
		case "good":
			return ada, nil
		case "boom":
			return nil, errors.New("backend down")
		default:
			return nil, nil
		}
	})

	var gotSession *domain.Session
	h := Authenticate(resolver, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = SessionFrom(r.Context())
	}))

	serve := func(token string) *httptest.ResponseRecorder {
		gotSession = nil
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	require.Equal(t, http.StatusOK, serve("good").Code)
	assert.Equal(t, ada, gotSession)

	require.Equal(t, http.StatusOK, serve("stale").Code)
	assert.Nil(t, gotSession)

	require.Equal(t, http.StatusOK, serve("").Code)
	assert.Nil(t, gotSession)

	w := serve("boom")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"authentication backend unavailable"}`, w.Body.String())
}

func TestLogSeesSession(t *testing.T) {
	ada := &domain.Session{UserID: "u1"}
	var slot *sessionSlot

	inner := Authenticate(resolverFunc(func(context.Context, string) (*domain.Session, error) {
		return ada, nil
	}), logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slot, _ = r.Context().Value(slotKey).(*sessionSlot)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer x")
	Log(logger.Nop(), false)(inner).ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, slot)
	assert.Equal(t, ada, slot.get())
}

func TestCORSDisabled(t *testing.T) {
	h := CORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcard(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://anything.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/links", nil)
	r.Header.Set("Origin", "https://app.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	r.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.False(t, called)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPatch, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
}
