package database_test

import (
	"context"
	"testing"

	"github.com/johnwards/formbuilder/internal/database"
	"github.com/johnwards/formbuilder/internal/testhelpers"
)

func TestOpen(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	// In-memory databases may report "memory" instead of "wal".
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" && journalMode != "memory" {
		t.Errorf("journal_mode = %q, want wal or memory", journalMode)
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestTruncate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO forms (id, owner_id, title, created_at, updated_at) VALUES ('f1', '1', 'T', 'x', 'x')`); err != nil {
		t.Fatalf("insert form: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO form_fields (form_id, id, position, kind, label) VALUES ('f1', 'a', 0, 'text', 'L')`); err != nil {
		t.Fatalf("insert field: %v", err)
	}

	if err := database.Truncate(ctx, db); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	for _, table := range []string{"forms", "form_fields"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after truncate", table, n)
		}
	}

	var migrated int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&migrated); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrated == 0 {
		t.Error("truncate should keep migration history")
	}
}
