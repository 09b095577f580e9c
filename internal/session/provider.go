// Package session mediates the authentication lifecycle and broadcasts
// sign-in and sign-out to interested components.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// EventKind tells listeners what happened.
type EventKind int

const (
	EventSignedIn EventKind = iota + 1
	EventSignedOut
)

func (k EventKind) String() string {
	switch k {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Event is delivered to every subscriber after a sign-in or sign-out.
type Event struct {
	Kind    EventKind
	Session domain.Session
}

type listener struct {
	fn func(Event)
}

// Provider wraps an Authenticator.
type Provider struct {
	auth backend.Authenticator
	log  logger.Logger

	mu        sync.Mutex
	listeners []*listener
}

// NewProvider creates a Provider.
func NewProvider(auth backend.Authenticator, log logger.Logger) *Provider {
	return &Provider{auth: auth, log: log}
}

// Current resolves token to its session. Unusable tokens yield a nil
// session and no error; only collaborator failures are returned.
func (p *Provider) Current(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}

	s, err := p.auth.User(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

// Login signs in with email and password.
func (p *Provider) Login(ctx context.Context, email, password string) (backend.Grant, error) {
	start := time.Now()

	g, err := p.auth.SignIn(ctx, email, password)
	if err != nil {
		p.log.Debug("login rejected", logger.Error(err), logger.Duration("took", time.Since(start)))
		return backend.Grant{}, &domain.AuthError{Op: "login", Err: err}
	}

	p.log.Debug("login", logger.String("user", g.Session.UserID), logger.Duration("took", time.Since(start)))
	p.emit(Event{Kind: EventSignedIn, Session: g.Session})
	return g, nil
}

// Signup registers an account. A grant without a token (verification
// pending at the provider) is returned as is.
func (p *Provider) Signup(ctx context.Context, email, password string) (backend.Grant, error) {
	g, err := p.auth.SignUp(ctx, email, password)
	if err != nil {
		p.log.Debug("signup rejected", logger.Error(err))
		return backend.Grant{}, &domain.AuthError{Op: "signup", Err: err}
	}

	p.log.Info("signup", logger.String("user", g.Session.UserID))
	p.emit(Event{Kind: EventSignedIn, Session: g.Session})
	return g, nil
}

// Logout always succeeds locally. Remote failures are logged and not
// retried.
func (p *Provider) Logout(ctx context.Context, token string) {
	s, err := p.Current(ctx, token)
	if err != nil {
		p.log.Warn("logout: could not resolve session", logger.Error(err))
	}

	if token != "" {
		if err := p.auth.SignOut(ctx, token); err != nil && !errors.Is(err, domain.ErrInvalidToken) {
			p.log.Warn("logout: remote sign-out failed", logger.Error(err))
		}
	}

	if s != nil {
		p.emit(Event{Kind: EventSignedOut, Session: *s})
	}
}

// Subscribe registers fn. Listeners run synchronously, in registration
// order, after each state change. Close the subscription on teardown.
func (p *Provider) Subscribe(fn func(Event)) *Subscription {
	l := &listener{fn: fn}

	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()

	return &Subscription{p: p, l: l}
}

// Subscribers returns the number of live subscriptions.
func (p *Provider) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

func (p *Provider) unsubscribe(l *listener) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, cur := range p.listeners {
		if cur == l {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return
		}
	}
}

func (p *Provider) emit(e Event) {
	p.mu.Lock()
	snapshot := make([]*listener, len(p.listeners))
	copy(snapshot, p.listeners)
	p.mu.Unlock()

	for _, l := range snapshot {
		l.fn(e)
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	p    *Provider
	l    *listener
	once sync.Once
}

// Close releases the listener. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.p.unsubscribe(s.l) })
}
