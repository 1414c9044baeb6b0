package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sadopc/dayzen/internal/logging"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sadopc/dayzen/internal/store"
	"github.com/sadopc/dayzen/internal/summary"
	"go.uber.org/zap"
)

// runtime is what a command needs to read summaries.
type runtime struct {
	store *store.Store
	svc   *summary.Service
	log   *zap.Logger
	loc   *time.Location
}

// open builds the logger, store and service. The TUI logs to a file beside
// the database since it owns the terminal.
func (a *app) open(tui bool) (*runtime, error) {
	lc := a.cfg.Log
	if tui {
		lc = logging.FileBeside(lc, a.cfg.DB.Path)
	}
	log, err := logging.New(lc)
	if err != nil {
		return nil, err
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}

	s, err := store.New(a.cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", zap.String("path", a.cfg.DB.Path))

	opts := []summary.Option{
		summary.WithLogger(log),
		summary.WithLocation(loc),
		summary.WithBreaker(summary.BreakerSettings{
			MaxFailures: a.cfg.Source.Breaker.MaxFailures,
			Timeout:     a.cfg.Source.Breaker.Timeout,
		}),
	}
	if a.cfg.Source.MockFallback {
		log.Warn("synthetic fallback enabled; failed fetches will be answered with sample data")
		opts = append(opts, summary.WithFallback(summary.NewRandomSource(a.cfg.Source.Seed)))
	}

	return &runtime{
		store: s,
		svc:   summary.NewService(s, opts...),
		log:   log,
		loc:   loc,
	}, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn("close store", zap.Error(err))
	}
	_ = r.log.Sync()
}

// localUser names the person at the terminal.
func localUser() string {
	for _, k := range []string{"DAYZEN_USER", "USER", "USERNAME"} {
		if u := os.Getenv(k); u != "" {
			return u
		}
	}
	return "local"
}

// localSession is the session one-shot commands read summaries with.
func (a *app) localSession() *session.Session {
	return session.New(localUser(), a.cfg.Auth.TTL, time.Now())
}
