// Package server exposes summaries over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sadopc/dayzen/internal/config"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/summary"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Summaries is the part of summary.Service the API serves.
type Summaries interface {
	Weekly(ctx context.Context, sess *session.Session, offset int) (*summary.WeeklySummary, error)
	Yearly(ctx context.Context, sess *session.Session, year int) (*summary.YearlySummary, error)
	Streak(ctx context.Context, sess *session.Session) (summary.Streak, error)
}

type Server struct {
	svc    Summaries
	codec  *session.Codec
	log    *zap.Logger
	now    func() time.Time
	engine *gin.Engine
}

func New(svc Summaries, codec *session.Codec, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{svc: svc, codec: codec, log: log, now: time.Now}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log), recordMetrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", authenticate(s.codec))
	{
		api.GET("/summaries/weekly", s.weekly)
		api.GET("/summaries/yearly", s.yearly)
		api.GET("/summaries/export", s.export)
		api.GET("/achievements", s.achievements)
		api.GET("/streak", s.streak)
	}
	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
