package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/johnwards/formbuilder/internal/account"
	"github.com/johnwards/formbuilder/internal/catalog"
	"github.com/johnwards/formbuilder/internal/domain"
	"github.com/johnwards/formbuilder/internal/store"
)

// Demo account credentials.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo-password"
)

//go:embed forms.yaml
var formsYAML []byte

type formsFile struct {
	Forms []domain.Form `yaml:"forms"`
}

// Forms returns the sample form definitions.
func Forms() ([]domain.Form, error) {
	var f formsFile
	if err := yaml.Unmarshal(formsYAML, &f); err != nil {
		return nil, fmt.Errorf("decode sample forms: %w", err)
	}
	return f.Forms, nil
}

// Seed creates the demo account and its sample forms. It is idempotent:
// an existing demo account is reused and forms are only created when the
// account has none.
func Seed(ctx context.Context, st *store.Store) error {
	user, err := demoUser(ctx, st.Users)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	forms := catalog.New(st.Forms, st.Responses, 0)
	existing, err := forms.List(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("seed forms: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples, err := Forms()
	if err != nil {
		return err
	}
	for i := range samples {
		if _, err := forms.Create(ctx, user.ID, &samples[i]); err != nil {
			return fmt.Errorf("seed form %q: %w", samples[i].Title, err)
		}
	}
	slog.Info("demo data seeded", "user_id", user.ID, "forms", len(samples))
	return nil
}

func demoUser(ctx context.Context, users store.UserStore) (*domain.User, error) {
	u, _, err := users.GetByEmail(ctx, DemoEmail)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := account.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}
	return users.Create(ctx, DemoEmail, hash)
}
