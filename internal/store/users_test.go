package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/store"
	"github.com/johnwards/formbuilder/internal/testhelpers"
)

var (
	_ store.UserStore    = (*store.SQLiteUserStore)(nil)
	_ store.SessionStore = (*store.SQLiteSessionStore)(nil)
)

func TestUserCreateAndLookup(t *testing.T) {
	s := store.NewSQLiteUserStore(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	u, err := s.Create(ctx, " Ada@Example.com ", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.Email != "ada@example.com" {
		t.Errorf("user = %+v", u)
	}

	got, hash, err := s.GetByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || hash != "hash" {
		t.Errorf("got %+v hash=%q", got, hash)
	}

	byID, err := s.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if byID.Email != u.Email {
		t.Errorf("email = %q", byID.Email)
	}

	if _, err := s.Create(ctx, "ada@example.com", "other"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate create err = %v, want ErrConflict", err)
	}
	if _, _, err := s.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown email err = %v, want ErrNotFound", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	users := store.NewSQLiteUserStore(db)
	sessions := store.NewSQLiteSessionStore(db)
	ctx := context.Background()

	u, err := users.Create(ctx, "s@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	sess, err := sessions.Create(ctx, u.ID, time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := sessions.Resolve(ctx, sess.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("resolved user %s, want %s", got.ID, u.ID)
	}

	if err := sessions.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := sessions.Resolve(ctx, sess.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("resolve after delete err = %v, want ErrNotFound", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	users := store.NewSQLiteUserStore(db)
	sessions := store.NewSQLiteSessionStore(db)
	ctx := context.Background()

	u, err := users.Create(ctx, "e@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	expired, err := sessions.Create(ctx, u.ID, -time.Minute)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := sessions.Resolve(ctx, expired.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expired session err = %v, want ErrNotFound", err)
	}

	if _, err := sessions.Create(ctx, u.ID, time.Hour); err != nil {
		t.Fatalf("create live session: %v", err)
	}
	n, err := sessions.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}
}
