package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/johnwards/formbuilder/internal/account"
	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/editor"
	"github.com/johnwards/formbuilder/internal/seed"
	"github.com/johnwards/formbuilder/internal/store"
	"github.com/johnwards/formbuilder/internal/testhelpers"
)

func TestFormsAreValid(t *testing.T) {
	forms, err := seed.Forms()
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if len(forms) == 0 {
		t.Fatal("expected sample forms")
	}
	for i := range forms {
		f := forms[i].Clone()
		if err := editor.Normalize(f); err != nil {
			t.Errorf("form %q: %v", forms[i].Title, err)
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	st := store.New(testhelpers.NewMigratedDB(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := seed.Seed(ctx, st); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	accounts := account.New(st.Users, st.Sessions, time.Hour)
	user, _, err := accounts.SignIn(ctx, account.Credentials{Email: seed.DemoEmail, Password: seed.DemoPassword})
	if err != nil {
		t.Fatalf("demo sign in: %v", err)
	}

	forms, err := st.Forms.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	samples, _ := seed.Forms()
	if len(forms) != len(samples) {
		t.Fatalf("got %d forms, want %d", len(forms), len(samples))
	}

	published := 0
	for _, f := range forms {
		if f.IsPublished {
			published++
		}
		if f.Theme.FontFamily != domain.DefaultTheme().FontFamily {
			t.Errorf("form %q theme defaults not applied: %+v", f.Title, f.Theme)
		}
	}
	if published != 2 {
		t.Errorf("published forms = %d, want 2", published)
	}
}
