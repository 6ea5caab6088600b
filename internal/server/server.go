package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/kyulab/labms/internal/auth"
	"github.com/kyulab/labms/internal/config"
	"github.com/kyulab/labms/internal/server/middleware"
	"github.com/kyulab/labms/internal/service"
	"github.com/kyulab/labms/internal/store/postgres"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	cfg        *config.Config
}

// services groups the orchestration layer built on top of the store. The
// cache may be a no-op when Redis is not configured.
type services struct {
	identity  *service.Identity
	projects  *service.ProjectService
	tasks     *service.TaskService
	comments  *service.CommentService
	boards    *service.BoardService
	notices   *service.NoticeService
	seminars  *service.SeminarService
	dashboard *service.DashboardService
}

func buildServices(store *postgres.Store, cache service.Cache) *services {
	return &services{
		identity:  service.NewIdentity(store.Users(), store.Researchers()),
		projects:  service.NewProjectService(store.Projects(), store.Tasks(), store.Comments(), store.Histories(), store, cache),
		tasks:     service.NewTaskService(store.Tasks(), store.Projects(), store.Comments(), store.Histories(), store, cache),
		comments:  service.NewCommentService(store.Comments(), store.Tasks()),
		boards:    service.NewBoardService(store.Boards(), store.BoardComments(), store),
		notices:   service.NewNoticeService(store.Notices(), cache),
		seminars:  service.NewSeminarService(store.Seminars(), cache),
		dashboard: service.NewDashboardService(store.Researchers(), store.Projects(), store.Tasks(), cache),
	}
}

// New creates a Server with all routes wired. ctx bounds the background
// goroutines owned by the rate limiters.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, cache service.Cache, authSvc *auth.Service) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router: router,
		store:  store,
		auth:   authSvc,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	svcs := buildServices(store, cache)

	// Mount API routes on /api/v1 with three sub-groups:
	// 1. Public group for login/refresh and the anonymous landing-page reads.
	// 2. Authenticated group for everything a logged-in user can do.
	// 3. Admin group for account and catalog management.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))

			publicAPI := humachi.New(r, apiConfig("LabMS Public API"))
			registerPublicRoutes(publicAPI, store, authSvc, svcs)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RateLimit(ctx, 100, 200))

			api := humachi.New(r, apiConfig("LabMS API"))
			registerAPIRoutes(api, store, authSvc, svcs)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RequireAdmin())
			r.Use(middleware.RateLimit(ctx, 100, 200))

			adminAPI := humachi.New(r, apiConfig("LabMS Admin API"))
			registerAdminRoutes(adminAPI, store, authSvc, svcs)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

func apiConfig(title string) huma.Config {
	cfg := huma.DefaultConfig(title, "1.0.0")
	cfg.Servers = []*huma.Server{
		{URL: "/api/v1"},
	}
	return cfg
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
