package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/johnwards/formbuilder/internal/config"
	"github.com/johnwards/formbuilder/internal/database"
	"github.com/johnwards/formbuilder/internal/seed"
	"github.com/johnwards/formbuilder/internal/server"
	"github.com/johnwards/formbuilder/internal/store"
)

// sweepInterval is how often expired sessions are removed.
const sweepInterval = time.Hour

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "formbuilder",
		Usage: "design forms, publish them and collect responses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "TOML configuration file (defaults to $FORMS_CONFIG)",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
			{
				Name:   "seed",
				Usage:  "create the demo account and sample forms",
				Action: seedDemo,
			},
		},
	}
}

// setup loads configuration, installs the logger and opens the migrated
// database.
func setup(ctx context.Context, cmd *cli.Command) (config.Config, *sql.DB, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return config.Config{}, nil, fmt.Errorf("run migrations: %w", err)
	}
	return cfg, db, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, db, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	slog.Info("migrations applied", "db", cfg.DBPath)
	return nil
}

func seedDemo(ctx context.Context, cmd *cli.Command) error {
	_, db, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := seed.Seed(ctx, store.New(db)); err != nil {
		return fmt.Errorf("seed data: %w", err)
	}
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, db, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	st := store.New(db)
	if cfg.SeedDemo {
		if err := seed.Seed(ctx, st); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, server.NewServices(cfg, st))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, st),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting formbuilder server", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// sweepSessions removes expired sessions until ctx is done.
func sweepSessions(ctx context.Context, svc *server.Services) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		if _, err := svc.Accounts.Sweep(ctx); err != nil {
			slog.Warn("session sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
