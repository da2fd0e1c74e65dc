package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/breach-backend/internal/catalog"
	"github.com/DoyleJ11/breach-backend/internal/hub"
	"github.com/DoyleJ11/breach-backend/internal/store"
	"github.com/DoyleJ11/breach-backend/internal/ws"
)

// RoundLister reads archived rounds. *store.Store satisfies it.
type RoundLister interface {
	RecentRounds(ctx context.Context, matchID string, limit int) ([]store.RoundResult, error)
}

type Deps struct {
	Hub            *hub.Hub
	Catalog        *catalog.Catalog
	Rounds         RoundLister // nil when the archive is disabled
	DefaultMatch   string
	OriginPatterns []string
	Log            *zap.Logger
}

func SetupRoutes(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Log.Named("http")))
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/catalog", GetCatalog(d.Catalog))
	r.Route("/matches", func(r chi.Router) {
		r.Post("/", CreateMatch(d.Hub))
		r.Get("/", ListMatches(d.Hub))
		r.Get("/{id}", GetMatch(d.Hub))
		r.Delete("/{id}", DeleteMatch(d.Hub, d.DefaultMatch))
		r.Get("/{id}/rounds", ListRounds(d.Rounds))
	})
	r.Get("/ws", ws.Handler(d.Hub, ws.Options{
		DefaultMatch:   d.DefaultMatch,
		OriginPatterns: d.OriginPatterns,
		Log:            d.Log,
	}))
	return r
}
