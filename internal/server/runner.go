// Package server wires the authority components from configuration and runs
// the management API until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/jroosing/tldclaim/internal/api"
	"github.com/jroosing/tldclaim/internal/api/handlers"
	"github.com/jroosing/tldclaim/internal/authority"
	"github.com/jroosing/tldclaim/internal/config"
	"github.com/jroosing/tldclaim/internal/database"
	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/jroosing/tldclaim/internal/oracle"
	"github.com/jroosing/tldclaim/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// Runner orchestrates startup, configuration and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run starts the daemon and blocks until SIGINT or SIGTERM.
func (r *Runner) Run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg)
}

// RunWithContext wires the components and serves the API until ctx is
// canceled or the listener fails.
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config) error {
	deps, closeStore, err := Build(ctx, cfg, r.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			r.logger.Error("failed to close store", "err", err)
		}
	}()

	if !cfg.API.Enabled {
		r.logger.Warn("management API disabled; nothing to serve until shutdown")
		<-ctx.Done()
		return nil
	}

	srv := api.New(cfg, deps, r.logger)
	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("management API listening", "addr", srv.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		// shutdown requested
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("management API: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown management API: %w", err)
	}
	r.logger.Info("management API stopped")
	return nil
}

// Build creates the registry, oracle, root authority and registrar described
// by cfg. With a database path both stores live in SQLite; otherwise they
// are in memory. The returned func releases the store.
//
// The registrar identity is always made a controller: a registrar that cannot
// delegate would reject every registration.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (handlers.Deps, func() error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	marker, err := dns.ParseName(cfg.Registrar.ClaimMarker)
	if err != nil {
		return handlers.Deps{}, nil, fmt.Errorf("registrar.claim_marker: %w", err)
	}

	var (
		reg        registry.Registry
		store      oracle.Store
		db         *database.DB
		closeStore = func() error { return nil }
	)
	if cfg.Database.Path != "" {
		db, err = database.Open(cfg.Database.Path)
		if err != nil {
			return handlers.Deps{}, nil, err
		}
		created, err := db.InitRoot(ctx, cfg.Authority.Identity)
		if err != nil {
			db.Close()
			return handlers.Deps{}, nil, err
		}
		if created {
			logger.Info("root node initialized", "owner", cfg.Authority.Identity.Hex())
		}
		reg, store, closeStore = db, db, db.Close
		logger.Info("using database", "path", cfg.Database.Path)
	} else {
		reg, store = registry.NewMemory(cfg.Authority.Identity), oracle.NewMemory()
		logger.Warn("no database path configured; state is kept in memory")
	}

	controllers := slices.Clone(cfg.Authority.Controllers)
	if !slices.Contains(controllers, cfg.Registrar.Identity) {
		controllers = append(controllers, cfg.Registrar.Identity)
	}

	root := authority.NewRoot(reg, authority.Config{
		Identity:      cfg.Authority.Identity,
		Owner:         cfg.Authority.Owner,
		Controllers:   controllers,
		ReservedNames: cfg.Authority.ReservedNames,
	}, logger)
	registrar := authority.NewRegistrar(root, store, authority.RegistrarConfig{
		Identity:     cfg.Registrar.Identity,
		DefaultOwner: cfg.Registrar.DefaultRegistrar,
		ClaimMarker:  marker,
	}, logger)

	logger.Info("authority ready",
		"identity", cfg.Authority.Identity.Hex(),
		"owner", cfg.Authority.Owner.Hex(),
		"controllers", len(controllers),
		"reserved", cfg.Authority.ReservedNames,
		"marker", marker.String(),
		"default_registrar", cfg.Registrar.DefaultRegistrar.Hex(),
	)

	return handlers.Deps{
		Root:      root,
		Registrar: registrar,
		Registry:  reg,
		Oracle:    store,
		DB:        db,
	}, closeStore, nil
}
