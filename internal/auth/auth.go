// Package auth is the email/password authenticator: bcrypt password
// hashes, HS256 JWT bearer tokens and revocation through an AccountStore.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// DefaultMinPassword is the shortest password accepted at signup.
const DefaultMinPassword = 6

// Config configures an Authenticator.
type Config struct {
	Token       TokenConfig
	MinPassword int
}

// Authenticator implements backend.Authenticator.
type Authenticator struct {
	accounts    backend.AccountStore
	tokens      *tokenManager
	validate    *validator.Validate
	minPassword int
	now         func() time.Time
}

var _ backend.Authenticator = (*Authenticator)(nil)

// New creates an Authenticator over accounts.
func New(accounts backend.AccountStore, cfg Config) *Authenticator {
	return newWithClock(accounts, cfg, time.Now)
}

func newWithClock(accounts backend.AccountStore, cfg Config, now func() time.Time) *Authenticator {
	if cfg.MinPassword <= 0 {
		cfg.MinPassword = DefaultMinPassword
	}
	return &Authenticator{
		accounts:    accounts,
		tokens:      newTokenManager(cfg.Token, now),
		validate:    validator.New(),
		minPassword: cfg.MinPassword,
		now:         now,
	}
}

// SignUp registers a new account and signs it in.
func (a *Authenticator) SignUp(ctx context.Context, email, password string) (backend.Grant, error) {
	email = normalizeEmail(email)
	if err := a.checkPolicy(email, password); err != nil {
		return backend.Grant{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return backend.Grant{}, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := backend.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    a.now().UTC(),
	}
	if err := a.accounts.CreateAccount(ctx, acc); err != nil {
		return backend.Grant{}, err
	}

	return a.grant(acc)
}

// SignIn checks credentials and issues a token.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (backend.Grant, error) {
	acc, err := a.accounts.AccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return backend.Grant{}, err
	}

	ok, err := checkPassword(acc.PasswordHash, password)
	if err != nil {
		return backend.Grant{}, fmt.Errorf("failed to check password: %w", err)
	}
	if !ok {
		return backend.Grant{}, domain.ErrInvalidCredentials
	}

	return a.grant(acc)
}

// SignOut revokes token until it would have expired anyway.
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	claims, err := a.tokens.parse(token)
	if err != nil {
		return domain.ErrInvalidToken
	}

	return a.accounts.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time)
}

// User resolves token to the session it was issued for.
func (a *Authenticator) User(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrInvalidToken
	}

	claims, err := a.tokens.parse(token)
	if err != nil {
		return domain.Session{}, domain.ErrInvalidToken
	}

	revoked, err := a.accounts.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Session{}, err
	}
	if revoked {
		return domain.Session{}, domain.ErrInvalidToken
	}

	return domain.Session{UserID: claims.Subject, Email: claims.Email}, nil
}

func (a *Authenticator) grant(acc backend.Account) (backend.Grant, error) {
	token, expiresAt, err := a.tokens.generate(acc.ID, acc.Email)
	if err != nil {
		return backend.Grant{}, err
	}

	return backend.Grant{
		Session:   domain.Session{UserID: acc.ID, Email: acc.Email},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *Authenticator) checkPolicy(email, password string) error {
	if err := a.validate.Var(email, "required,email"); err != nil {
		return domain.ErrInvalidEmail
	}

	tag := fmt.Sprintf("required,min=%d", a.minPassword)
	if err := a.validate.Var(password, tag); err != nil {
		return fmt.Errorf("%w: at least %d characters", domain.ErrWeakPassword, a.minPassword)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: at most %d bytes", domain.ErrWeakPassword, maxPasswordBytes)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsRejection reports whether err is a credential or policy rejection
// rather than a collaborator failure.
func IsRejection(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidCredentials,
		domain.ErrEmailTaken,
		domain.ErrInvalidEmail,
		domain.ErrWeakPassword,
		domain.ErrInvalidToken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
