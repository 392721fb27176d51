package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/pos-core/internal/domain"
	"github.com/TemirB/pos-core/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type MenuService interface {
	FetchCompleteMenuData(ctx context.Context) domain.MenuData
	Categories(ctx context.Context) ([]domain.Category, error)
	MenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ItemsByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error)
	Invalidate(resource string) error
	InvalidateByCategory(categoryID string)
	InvalidateAll()
}

type TableService interface {
	TableStates(ctx context.Context) ([]domain.TableState, error)
	LinkedGroups(ctx context.Context) ([]domain.LinkedGroup, error)
	InvalidateTables()
}

type snapshotter interface {
	Snapshot() observability.Totals
}

type Server struct {
	menu    MenuService
	tables  TableService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(menu MenuService, tables TableService, logger *zap.Logger, metrics observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		menu:    menu,
		tables:  tables,
		router:  chi.NewRouter(),
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.router.Route("/menu", func(r chi.Router) {
		r.Get("/", s.getMenu)
		r.Get("/categories", s.getCategories)
		r.Get("/items", s.getItems)
		r.Get("/categories/{id}/items", s.getCategoryItems)
		r.Post("/invalidate", s.invalidateAll)
		r.Post("/invalidate/{resource}", s.invalidateResource)
		r.Post("/categories/{id}/invalidate", s.invalidateCategory)
	})

	s.router.Route("/tables", func(r chi.Router) {
		r.Get("/", s.getTables)
		r.Get("/groups", s.getGroups)
		r.Post("/invalidate", s.invalidateTables)
	})

	if snap, ok := s.metrics.(snapshotter); ok {
		s.router.Get("/debug/metrics", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, snap.Snapshot())
		})
	}
}

func (s *Server) getMenu(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	data := s.menu.FetchCompleteMenuData(r.Context())

	observability.AppendServerTiming(w, "menu", msSince(start), "")
	if len(data.Warnings) > 0 {
		w.Header().Set("X-Menu-Degraded", "true")
	}
	writeJSON(w, data)
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.menu.Categories(r.Context())
	if err != nil {
		s.fail(w, "categories", err)
		return
	}
	writeJSON(w, categories)
}

func (s *Server) getItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.menu.MenuItems(r.Context())
	if err != nil {
		s.fail(w, "menu items", err)
		return
	}
	writeJSON(w, items)
}

func (s *Server) getCategoryItems(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	items, err := s.menu.ItemsByCategory(r.Context(), id)
	if errors.Is(err, domain.ErrInvalidID) {
		http.Error(w, "category id required", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.fail(w, "category items", err)
		return
	}
	writeJSON(w, items)
}

func (s *Server) invalidateAll(w http.ResponseWriter, _ *http.Request) {
	s.menu.InvalidateAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) invalidateResource(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	if err := s.menu.Invalidate(resource); err != nil {
		if errors.Is(err, domain.ErrUnknownResource) {
			http.Error(w, "unknown resource", http.StatusNotFound)
			return
		}
		s.fail(w, resource, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) invalidateCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "category id required", http.StatusBadRequest)
		return
	}
	s.menu.InvalidateByCategory(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getTables(w http.ResponseWriter, r *http.Request) {
	states, err := s.tables.TableStates(r.Context())
	if err != nil {
		s.fail(w, "tables", err)
		return
	}
	writeJSON(w, states)
}

func (s *Server) getGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.tables.LinkedGroups(r.Context())
	if err != nil {
		s.fail(w, "linked groups", err)
		return
	}
	writeJSON(w, groups)
}

// invalidateTables drops the cached floor plan so the next read sees layout changes.
func (s *Server) invalidateTables(w http.ResponseWriter, _ *http.Request) {
	s.tables.InvalidateTables()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error("Request failed", zap.String("resource", what), zap.Error(err))
	http.Error(w, "Failed to load "+what, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
