// Package api exposes the tracker over a read-mostly JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/ddtrack/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Services are the use cases the API serves.
type Services struct {
	Properties service.PropertyService
	Items      service.ItemService
	Templates  service.TemplateService
	Stats      service.StatsService
	Reports    service.ReportService
}

// Windows are the default day windows used when a request omits ?days=.
type Windows struct {
	DueSoonDays  int
	RiskDays     int
	DeadlineDays int
}

var defaultWindows = Windows{DueSoonDays: 7, RiskDays: 3, DeadlineDays: 30}

type Server struct {
	router  *chi.Mux
	svc     Services
	logger  *zap.Logger
	windows Windows
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithWindows(w Windows) Option {
	return func(s *Server) {
		if w.DueSoonDays >= 0 {
			s.windows.DueSoonDays = w.DueSoonDays
		}
		if w.RiskDays >= 0 {
			s.windows.RiskDays = w.RiskDays
		}
		if w.DeadlineDays >= 0 {
			s.windows.DeadlineDays = w.DeadlineDays
		}
	}
}

func New(svc Services, opts ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{
		router:  r,
		svc:     svc,
		logger:  zap.NewNop(),
		windows: defaultWindows,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("http")

	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.handlePortfolioSummary)
			r.Get("/properties", s.handlePortfolioProperties)
			r.Get("/risk", s.handlePortfolioRisk)
			r.Get("/flagged", s.handlePortfolioFlagged)
			r.Get("/heatmap", s.handlePortfolioHeatmap)
			r.Get("/deadlines", s.handlePortfolioDeadlines)
		})
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", s.handleListProperties)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProperty)
				r.Get("/stats", s.handlePropertyStats)
				r.Get("/categories", s.handlePropertyCategories)
				r.Get("/items", s.handlePropertyItems)
				r.Get("/flagged", s.handlePropertyFlagged)
				r.Get("/due-soon", s.handlePropertyDueSoon)
				r.Get("/report", s.handlePropertyReport)
				r.Post("/templates/{tid}/apply", s.handleApplyTemplate)
			})
		})
		r.Patch("/items/{id}", s.handleUpdateItem)
		r.Get("/templates", s.handleListTemplates)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("access",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
