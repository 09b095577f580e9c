package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/linkvault/internal/auth"
	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	a := auth.New(memory.New(), auth.Config{Token: auth.TokenConfig{Secret: "test"}})
	return NewProvider(a, logger.Nop())
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func TestCurrent(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	s, err := p.Current(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, s, "empty token is no session")

	s, err = p.Current(ctx, "garbage")
	require.NoError(t, err)
	assert.Nil(t, s, "invalid token is no session")

	g, err := p.Signup(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	s, err = p.Current(ctx, g.Token)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, g.Session, *s)
}

func TestLoginEmitsSignedIn(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.Signup(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	rec := &recorder{}
	sub := p.Subscribe(rec.record)
	defer sub.Close()

	g, err := p.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventSignedIn}, rec.kinds())
	assert.Equal(t, g.Session, rec.events[0].Session)
}

func TestLoginRejected(t *testing.T) {
	p := newTestProvider(t)
	rec := &recorder{}
	sub := p.Subscribe(rec.record)
	defer sub.Close()

	_, err := p.Login(context.Background(), "ghost@example.com", "whatever1")

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "login", authErr.Op)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, rec.kinds(), "failed login must not broadcast")
}

func TestSignupRejected(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Signup(context.Background(), "not-an-email", "secret123")

	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "signup", authErr.Op)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

type brokenSignOut struct {
	backend.Authenticator
	calls int
}

func (b *brokenSignOut) SignOut(context.Context, string) error {
	b.calls++
	return errors.New("network unreachable")
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	inner := auth.New(memory.New(), auth.Config{Token: auth.TokenConfig{Secret: "test"}})
	broken := &brokenSignOut{Authenticator: inner}
	p := NewProvider(broken, logger.Nop())
	ctx := context.Background()

	g, err := p.Signup(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	rec := &recorder{}
	sub := p.Subscribe(rec.record)
	defer sub.Close()

	p.Logout(ctx, g.Token)

	assert.Equal(t, 1, broken.calls, "no retry")
	assert.Equal(t, []EventKind{EventSignedOut}, rec.kinds())
}

func TestLogoutRevokesToken(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	g, err := p.Signup(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)

	p.Logout(ctx, g.Token)

	s, err := p.Current(ctx, g.Token)
	require.NoError(t, err)
	assert.Nil(t, s)

	// Logging out again is harmless and broadcasts nothing
	rec := &recorder{}
	sub := p.Subscribe(rec.record)
	defer sub.Close()
	p.Logout(ctx, g.Token)
	p.Logout(ctx, "")
	assert.Empty(t, rec.kinds())
}

func TestSubscriptionOrderAndRelease(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	var order []string
	first := p.Subscribe(func(Event) { order = append(order, "first") })
	second := p.Subscribe(func(Event) { order = append(order, "second") })
	assert.Equal(t, 2, p.Subscribers())

	_, err := p.Signup(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)

	first.Close()
	first.Close()
	assert.Equal(t, 1, p.Subscribers())

	order = nil
	_, err = p.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, order)

	second.Close()
	assert.Equal(t, 0, p.Subscribers())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "signed_in", EventSignedIn.String())
	assert.Equal(t, "signed_out", EventSignedOut.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
