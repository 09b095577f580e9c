package mw

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	slotKey
)

// SessionResolver turns a bearer token into a session. A nil session
// with a nil error means anonymous.
type SessionResolver interface {
	Current(ctx context.Context, token string) (*domain.Session, error)
}

// sessionSlot lets outer middlewares see the session resolved further in.
type sessionSlot struct {
	s atomic.Pointer[domain.Session]
}

func (s *sessionSlot) get() *domain.Session { return s.s.Load() }

// Authenticate resolves "Authorization: Bearer <token>" and stores the
// session (possibly nil) in the request context.
// Requests never fail for a bad token; they continue anonymously. A
// failing auth backend answers 503.
func Authenticate(sessions SessionResolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)

			s, err := sessions.Current(r.Context(), token)
			if err != nil {
				log.Warn("session lookup failed", logger.Error(err))
				jsonError(w, http.StatusServiceUnavailable, "authentication backend unavailable")
				return
			}

			if slot, ok := r.Context().Value(slotKey).(*sessionSlot); ok && s != nil {
				slot.s.Store(s)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, s)))
		})
	}
}

// SessionFrom returns the session stored by Authenticate, nil when anonymous.
func SessionFrom(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionKey).(*domain.Session)
	return s
}

// BearerToken extracts the token of an Authorization header.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
