// Package server assembles a goldserver HTTP API: a grammar cache reachable
// over a small REST surface, backed by a pluggable dao.Store.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/goldrun/internal/golderr"
	"github.com/dekarrin/goldrun/server/api"
	"github.com/dekarrin/goldrun/server/dao"
	"github.com/dekarrin/goldrun/server/middle"
	"github.com/dekarrin/goldrun/server/tunas"
	"github.com/go-chi/chi/v5"
)

// Server is a fully-wired goldserver instance, ready to be given to an
// http.Server or served directly via ListenAndServe.
type Server struct {
	router  chi.Router
	db      dao.Store
	backend tunas.Service
}

// New creates a Server from cfg: it connects cfg's configured database,
// wraps it in a tunas.Service, and mounts the API's routes behind the
// configured auth middleware.
func New(cfg Config) (Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid config: %w", err)
	}

	store, err := cfg.DB.Connect()
	if err != nil {
		return Server{}, fmt.Errorf("could not connect to database: %w", err)
	}

	backend := tunas.Service{DB: store}
	apiInst := api.API{Backend: backend, UnauthDelay: cfg.UnauthDelay()}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(middle.OptionalAuth(store.APIKeys(), cfg.UnauthDelay())).Get("/info", apiInst.HTTPGetInfo())

		r.Route("/grammars", func(r chi.Router) {
			r.With(middle.OptionalAuth(store.APIKeys(), cfg.UnauthDelay())).Get("/", apiInst.HTTPGetAllGrammars())
			r.With(middle.RequireAuth(store.APIKeys(), cfg.UnauthDelay())).Post("/", apiInst.HTTPCreateGrammar())

			r.Route("/{id}", func(r chi.Router) {
				r.With(middle.OptionalAuth(store.APIKeys(), cfg.UnauthDelay())).Get("/", apiInst.HTTPGetGrammar())
				r.With(middle.RequireAuth(store.APIKeys(), cfg.UnauthDelay())).Delete("/", apiInst.HTTPDeleteGrammar())
				r.With(middle.OptionalAuth(store.APIKeys(), cfg.UnauthDelay())).Post("/parse", apiInst.HTTPParseInput())
			})
		})

		r.Route("/keys", func(r chi.Router) {
			r.Use(middle.RequireAuth(store.APIKeys(), cfg.UnauthDelay()))
			r.Get("/", apiInst.HTTPGetAllAPIKeys())
			r.Post("/", apiInst.HTTPCreateAPIKey())
			r.Delete("/{id}", apiInst.HTTPDeleteAPIKey())
		})
	})

	return Server{router: r, db: store, backend: backend}, nil
}

// BootstrapAdminKey mints an initial API key for owner if, and only if, no
// API keys exist yet. It returns the new key material on success, or an
// error matching golderr.ErrAlreadyExists if one or more keys are already
// present.
func (s Server) BootstrapAdminKey(ctx context.Context, owner string) (string, error) {
	existing, err := s.backend.GetAllAPIKeys(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", golderr.ErrAlreadyExists
	}

	k, err := s.backend.CreateAPIKey(ctx, owner)
	if err != nil {
		return "", err
	}
	return k.Key, nil
}

// ServeForever starts the server listening on addr and blocks until it
// exits with an error or ctx is cancelled, in which case it attempts a
// graceful shutdown.
func (s Server) ServeForever(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO  Starting goldserver on %s...", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Printf("INFO  Shutting down goldserver...")
		if err := httpServer.Shutdown(context.Background()); err != nil {
			return err
		}
		return s.db.Close()
	}
}
