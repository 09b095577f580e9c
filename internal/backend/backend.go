// Package backend declares the hosted collaborators linkvault delegates
// persistence and authentication to. Concrete implementations live in
// internal/store/memory, internal/store/redis and internal/auth.
package backend

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Query selects the rows of one owner, optionally narrowed to a category.
type Query struct {
	Owner    string
	Category domain.Category // empty = every category
}

// LinkStore is the row storage for links.
//
// Implementations enforce the access policy: a row is only visible to,
// updatable by and deletable by its owner. A row owned by somebody else
// behaves exactly like a missing one (domain.ErrNotFound).
type LinkStore interface {
	// Select returns the matching rows ordered by CreatedAt, newest first.
	Select(ctx context.Context, q Query) ([]domain.Link, error)
	// Insert stores l, assigns its ID and returns the stored row.
	Insert(ctx context.Context, l domain.Link) (domain.Link, error)
	// Update applies patch to the row and returns the stored result.
	Update(ctx context.Context, owner, id string, patch domain.LinkPatch) (domain.Link, error)
	// Delete removes the row permanently.
	Delete(ctx context.Context, owner, id string) error
}

// Account is a registered user as kept by an AccountStore.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountStore persists accounts and revoked token ids for the authenticator.
type AccountStore interface {
	// CreateAccount fails with domain.ErrEmailTaken when the email exists.
	CreateAccount(ctx context.Context, a Account) error
	// AccountByEmail fails with domain.ErrInvalidCredentials when unknown.
	AccountByEmail(ctx context.Context, email string) (Account, error)
	// RevokeToken marks a token id as signed out until expiresAt.
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	// IsRevoked reports whether the token id was signed out.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Grant is the result of a successful sign-in or sign-up.
type Grant struct {
	Session   domain.Session `json:"session"`
	Token     string         `json:"token,omitempty"`
	ExpiresAt time.Time      `json:"expires_at,omitempty"`
}

// Authenticator is the email/password auth collaborator.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Grant, error)
	SignUp(ctx context.Context, email, password string) (Grant, error)
	SignOut(ctx context.Context, token string) error
	// User resolves a token to its session. Unusable tokens return
	// domain.ErrInvalidToken.
	User(ctx context.Context, token string) (domain.Session, error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
