// Package server exposes the impact estimator over a JSON HTTP API for
// the browser extension and other consumers.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/moseskolleh/promptcoach/internal/advisor"
	"github.com/moseskolleh/promptcoach/internal/history"
	"github.com/moseskolleh/promptcoach/internal/impact"
	"github.com/moseskolleh/promptcoach/internal/refdata"
)

// Options configures a Server.
type Options struct {
	Logger       zerolog.Logger
	Catalog      *refdata.Catalog
	History      *history.Store // nil disables history endpoints
	DefaultModel string
}

// Server holds the HTTP surface. The only mutable state is the atomic
// estimator pointer, swapped by live reload; handlers read it once per
// request.
type Server struct {
	logger       zerolog.Logger
	defaultModel string
	est          atomic.Pointer[impact.Estimator]
	history      *history.Store
	engine       *gin.Engine
}

// New builds a server over the given catalog.
func New(opts Options) *Server {
	s := &Server{
		logger:       opts.Logger,
		defaultModel: opts.DefaultModel,
		history:      opts.History,
	}
	s.SwapCatalog(opts.Catalog)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(s.traceMiddleware(), s.loggingMiddleware(), gin.Recovery())

	api := engine.Group("/api/v1")
	api.POST("/estimate", s.handleEstimate)
	api.POST("/estimate/average", s.handleAverage)
	api.POST("/compare", s.handleCompare)
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/projection", s.handleProjection)
	api.GET("/models", s.handleModels)
	api.GET("/history", s.handleHistory)
	api.GET("/history/summary", s.handleHistorySummary)

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine = engine
	return s
}

// SwapCatalog replaces the active catalog. Safe to call while serving;
// in-flight requests keep the estimator they already resolved.
func (s *Server) SwapCatalog(catalog *refdata.Catalog) {
	s.est.Store(impact.NewEstimator(catalog, s.logger))
	catalogModels.Set(float64(catalog.ModelCount()))
}

func (s *Server) estimator() *impact.Estimator {
	return s.est.Load()
}

func (s *Server) newAdvisor() *advisor.Advisor {
	return advisor.New(s.estimator(), s.logger)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("shutdown failed")
		}
		close(shutdownDone)
	}()

	s.logger.Info().Str("addr", addr).Msg("starting API server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
