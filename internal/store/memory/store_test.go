package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

func insert(t *testing.T, s *Store, owner string, c domain.Category, title string, at time.Time) domain.Link {
	t.Helper()
	l, err := s.Insert(context.Background(), domain.Link{Owner: owner, Title: title, URL: "https://" + title, Category: c, CreatedAt: at})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return l
}

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.count() != 0 {
		t.Errorf("New() should start empty, got %v links", s.count())
	}
}

func TestInsertAssignsUniqueIDs(t *testing.T) {
	s := New()
	now := time.Now()
	a := insert(t, s, "u1", domain.CategoryAI, "a", now)
	b := insert(t, s, "u1", domain.CategoryAI, "b", now)

	if a.ID == "" || b.ID == "" {
		t.Fatal("Insert() should assign an id")
	}
	if a.ID == b.ID {
		t.Errorf("Insert() assigned duplicate id %q", a.ID)
	}
}

func TestSelectScopesAndOrders(t *testing.T) {
	s := New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	insert(t, s, "u1", domain.CategoryCoding, "old", base)
	insert(t, s, "u1", domain.CategoryCoding, "new", base.Add(2*time.Hour))
	insert(t, s, "u1", domain.CategoryAI, "mid", base.Add(time.Hour))
	insert(t, s, "u2", domain.CategoryCoding, "other-user", base.Add(3*time.Hour))

	all, err := s.Select(context.Background(), backend.Query{Owner: "u1"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	wantAll := []string{"new", "mid", "old"}
	if len(all) != len(wantAll) {
		t.Fatalf("Select() returned %d links, want %d", len(all), len(wantAll))
	}
	for i, l := range all {
		if l.Title != wantAll[i] {
			t.Errorf("Select()[%d] = %q, want %q", i, l.Title, wantAll[i])
		}
		if l.Owner != "u1" {
			t.Errorf("Select() leaked a row of owner %q", l.Owner)
		}
	}

	coding, err := s.Select(context.Background(), backend.Query{Owner: "u1", Category: domain.CategoryCoding})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(coding) != 2 || coding[0].Title != "new" || coding[1].Title != "old" {
		t.Errorf("Select(coding) = %+v", coding)
	}
}

func TestUpdateEnforcesOwner(t *testing.T) {
	s := New()
	l := insert(t, s, "u1", domain.CategoryCoding, "mine", time.Now())
	title := "stolen"

	_, err := s.Update(context.Background(), "u2", l.ID, domain.LinkPatch{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() by non-owner error = %v, want ErrNotFound", err)
	}

	title = "renamed"
	got, err := s.Update(context.Background(), "u1", l.ID, domain.LinkPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Title != "renamed" || got.ID != l.ID || !got.CreatedAt.Equal(l.CreatedAt) {
		t.Errorf("Update() = %+v", got)
	}
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	s := New()
	l := insert(t, s, "u1", domain.CategoryCoding, "gone", time.Now())

	if err := s.Delete(context.Background(), "u2", l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() by non-owner error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), "u1", l.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(context.Background(), "u1", l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestAccounts(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := backend.Account{ID: "u1", Email: "ada@example.com", PasswordHash: "hash"}

	if err := s.CreateAccount(ctx, a); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if err := s.CreateAccount(ctx, backend.Account{ID: "u2", Email: "ADA@example.com"}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("duplicate CreateAccount() error = %v, want ErrEmailTaken", err)
	}

	got, err := s.AccountByEmail(ctx, "Ada@Example.com")
	if err != nil {
		t.Fatalf("AccountByEmail() error = %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("AccountByEmail() id = %q, want u1", got.ID)
	}

	if _, err := s.AccountByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("AccountByEmail() unknown error = %v", err)
	}
}

func TestRevokedTokens(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now()

	_ = s.RevokeToken(ctx, "expired", now.Add(-time.Minute))
	_ = s.RevokeToken(ctx, "live", now.Add(time.Hour))

	if ok, _ := s.IsRevoked(ctx, "live"); !ok {
		t.Error("IsRevoked(live) = false, want true")
	}

	if n := s.PurgeRevoked(now); n != 1 {
		t.Errorf("PurgeRevoked() = %d, want 1", n)
	}
	if ok, _ := s.IsRevoked(ctx, "expired"); ok {
		t.Error("expired entry should have been purged")
	}
	if ok, _ := s.IsRevoked(ctx, "live"); !ok {
		t.Error("live entry should survive the purge")
	}
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Select(ctx, backend.Query{Owner: "u1"}); err == nil {
		t.Error("Select() with canceled context should fail")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Insert(ctx, domain.Link{Owner: "u1", Title: "t", Category: domain.CategoryOthers, CreatedAt: time.Now()})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Select(ctx, backend.Query{Owner: "u1"})
		}()
	}
	wg.Wait()

	if s.count() != 100 {
		t.Errorf("count() = %v, want 100", s.count())
	}
}

func (s *Store) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
