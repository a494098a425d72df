// Package server is the composition root: it wires the store, the
// analyzer, the services and the handlers together, defines every
// route, and owns the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/astralearn/internal/analysis"
	"github.com/sakif/astralearn/internal/auth"
	"github.com/sakif/astralearn/internal/handler"
	"github.com/sakif/astralearn/internal/middleware"
	"github.com/sakif/astralearn/internal/repository"
	"github.com/sakif/astralearn/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	JWTSecret string
}

// Server owns the router and the HTTP lifecycle. The store and
// analyzer are injected so main can choose the backend (in-memory or
// SQLite, real OpenAI or a stub) without this package caring.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	closer func() error
}

// New assembles the full dependency chain:
//
//	store + analyzer → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services, and nothing below the handler
// layer touches HTTP.
func New(cfg Config, logger *slog.Logger, store repository.Store, analyzer analysis.Analyzer) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	s.setupRoutes(store, analyzer, tokens)

	return s, nil
}

// SetCloser registers a cleanup function (e.g. closing the database)
// to run when the server stops.
func (s *Server) SetCloser(closer func() error) {
	s.closer = closer
}

// Handler returns the assembled router. Used by tests to drive the
// full stack through httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes(store repository.Store, analyzer analysis.Analyzer, tokens *auth.TokenService) {
	// Global middleware, in execution order: request ID for tracing,
	// real client IP behind proxies, panic recovery, then our logger.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Stats read-modify-write sequences share one lock registry so
	// interview and code sagas serialise against each other per user.
	locks := service.NewUserLocks()

	authSvc := service.NewAuthService(store, store, auth.NewPasswordService(), tokens, s.logger)
	dashboardSvc := service.NewDashboardService(store, s.logger)
	interviewSvc := service.NewInterviewService(store, store, store, analyzer, locks, s.logger)
	codeSvc := service.NewCodeService(store, store, store, analyzer, locks, s.logger)
	resumeSvc := service.NewResumeService(store, store, analyzer, s.logger)
	noteSvc := service.NewNoteService(store, store, analyzer, s.logger)
	learningSvc := service.NewLearningService(store, store, s.logger)
	analyticsSvc := service.NewAnalyticsService(store, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, s.logger)
	interviewHandler := handler.NewInterviewHandler(interviewSvc, s.logger)
	codeHandler := handler.NewCodeHandler(codeSvc, s.logger)
	resumeHandler := handler.NewResumeHandler(resumeSvc, s.logger)
	noteHandler := handler.NewNoteHandler(noteSvc, s.logger)
	learningHandler := handler.NewLearningHandler(learningSvc, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/auth/me", authHandler.Me)

		r.Get("/dashboard/{userId}", dashboardHandler.Get)

		r.Post("/interview/start", interviewHandler.Start)
		r.Post("/interview/submit", interviewHandler.Submit)

		r.Post("/code/submit", codeHandler.Submit)
		r.Get("/code/submissions/{userId}", codeHandler.Submissions)

		r.Post("/resume/analyze", resumeHandler.Analyze)
		r.Get("/resume/feedback/{userId}", resumeHandler.Feedback)

		r.Post("/notes", noteHandler.Create)
		r.Get("/notes/{userId}", noteHandler.List)
		r.Put("/notes/{noteId}", noteHandler.Update)

		r.Put("/learning/progress", learningHandler.UpdateProgress)

		r.Get("/analytics/{userId}", analyticsHandler.Get)
	})
}

// Start runs the HTTP server until a SIGINT/SIGTERM arrives, then
// drains in-flight requests for up to 30 seconds before running the
// registered closer.
func (s *Server) Start() error {
	defer func() {
		if s.closer != nil {
			if err := s.closer(); err != nil {
				s.logger.Error("cleanup failed", slog.String("error", err.Error()))
			}
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
