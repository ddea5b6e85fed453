package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/config"
	"github.com/example/skillspace/internal/session"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	store   *session.Store
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, store *session.Store, cat *catalog.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:  cfg,
		store:   store,
		catalog: cat,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/skills", s.handleListSkills)
			r.Get("/challenges", s.handleListChallenges)
			r.Get("/war-room", s.handleListWarRoom)
		})

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Use(s.sessionMiddleware)

			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/skills/{skillID}/enroll", s.handleEnroll)
			r.Post("/daily/{missionID}/claim", s.handleClaimDaily)

			r.Route("/guilds", func(r chi.Router) {
				r.Get("/", s.handleStandings)
				r.Post("/", s.handleCreateGuild)
				r.Post("/{guildID}/select", s.handleSelectGuild)
				r.Get("/messages", s.handleGuildMessages)
				r.Post("/messages", s.handlePostGuildMessage)
			})

			r.Route("/mentor", func(r chi.Router) {
				r.Get("/messages", s.handleMentorMessages)
				r.Post("/ask", s.handleAskMentor)
			})
			r.Post("/tools/{tool}", s.handleDevTool)

			r.Route("/drill", func(r chi.Router) {
				r.Get("/", s.handleGetDrill)
				r.Put("/", s.handleSelectDrill)
				r.Put("/code", s.handleSetDrillCode)
				r.Post("/next", s.handleNextDrill)
				r.Post("/validate", s.handleValidateDrill)
			})

			r.Route("/strike", func(r chi.Router) {
				r.Get("/", s.handleGetStrike)
				r.Post("/", s.handleStartStrike)
				r.Post("/acknowledge", s.handleAcknowledgeReward)
				r.Get("/stream", s.handleStrikeStream)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.handleListTasks)
				r.Post("/", s.handleAddTask)
				r.Post("/{taskID}/toggle", s.handleToggleTask)
				r.Delete("/{taskID}", s.handleDeleteTask)
			})
		})
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	s.logger.Info("HTTP server stopped")
	return nil
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
