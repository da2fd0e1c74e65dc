package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/breach-backend/internal/arena"
	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/config"
	"github.com/DoyleJ11/breach-backend/internal/httpapi"
	"github.com/DoyleJ11/breach-backend/internal/hub"
	"github.com/DoyleJ11/breach-backend/internal/session"
	"github.com/DoyleJ11/breach-backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	cat = cat.WithTimings(cfg.Timings)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	var (
		archive arena.Archive
		rounds  httpapi.RoundLister
	)
	if cfg.DatabaseURL != "" {
		db, openErr := store.Open(cfg.DatabaseURL)
		if openErr != nil {
			return openErr
		}
		defer func() { err = multierr.Append(err, db.Close()) }()

		w := store.NewWriter(db, cfg.ArchiveBuffer, log)
		g.Go(func() error { return w.Run(ctx) })
		archive, rounds = w, db
		log.Info("round archive enabled")
	} else {
		log.Info("round archive disabled, DATABASE_URL not set")
	}

	sessions := session.NewDirectory()
	h := hub.NewHub(ctx, func(ctx context.Context, id string) *arena.Arena {
		opts := []arena.Option{
			arena.WithLogger(log.Named("arena")),
			arena.WithSessions(sessions),
		}
		if archive != nil {
			opts = append(opts, arena.WithArchive(archive))
		}
		return arena.New(ctx, id, cat, opts...)
	}, log)
	if h.Ensure(ctx, cfg.DefaultMatchID) == nil {
		return errors.New("failed to start default match")
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:            h,
			Catalog:        cat,
			Rounds:         rounds,
			DefaultMatch:   cfg.DefaultMatchID,
			OriginPatterns: cfg.AllowedOrigins,
			Log:            log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("default_match", cfg.DefaultMatchID))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
