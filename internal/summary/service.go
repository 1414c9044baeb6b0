package summary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/dayzen/internal/metrics"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerSettings configures the circuit breaker wrapped around the source.
type BreakerSettings struct {
	MaxFailures uint32
	Timeout     time.Duration
}

// Service assembles weekly and yearly summaries. It holds no per-request state.
type Service struct {
	src      Source
	fallback Source
	log      *zap.Logger
	now      func() time.Time
	loc      *time.Location
	breakers map[Pipeline]*gobreaker.CircuitBreaker
}

type Option func(*Service)

// WithFallback serves synthetic records from fb when the source fails. The
// resulting summaries are marked Synthetic.
func WithFallback(fb Source) Option { return func(s *Service) { s.fallback = fb } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithLocation(loc *time.Location) Option { return func(s *Service) { s.loc = loc } }

func WithBreaker(b BreakerSettings) Option {
	return func(s *Service) {
		for _, p := range []Pipeline{PipelineWeekly, PipelineYearly} {
			s.breakers[p] = newBreaker(p, b, s)
		}
	}
}

func NewService(src Source, opts ...Option) *Service {
	s := &Service{
		src:      src,
		log:      zap.NewNop(),
		now:      time.Now,
		loc:      time.Local,
		breakers: make(map[Pipeline]*gobreaker.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newBreaker(p Pipeline, b BreakerSettings, s *Service) *gobreaker.CircuitBreaker {
	if b.MaxFailures == 0 {
		b.MaxFailures = 3
	}
	if b.Timeout == 0 {
		b.Timeout = 30 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "source-" + string(p),
		MaxRequests: 1,
		Timeout:     b.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= b.MaxFailures
		},
		// A caller giving up says nothing about the source.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("source breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Location is the zone period boundaries are computed in.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) authorize(p Pipeline, sess *session.Session) error {
	if err := sess.Validate(s.now()); err != nil {
		metrics.SummaryRequests.WithLabelValues(string(p), "unauthenticated").Inc()
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return nil
}

// fetch runs fn through the pipeline's breaker, if any.
func fetch[T any](s *Service, p Pipeline, fn func() (T, error)) (T, error) {
	defer metrics.TrackFetch(string(p)).ObserveDuration()

	cb, ok := s.breakers[p]
	if !ok {
		return fn()
	}
	v, err := cb.Execute(func() (interface{}, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Weekly builds the summary of the week offset weeks from the current one.
func (s *Service) Weekly(ctx context.Context, sess *session.Session, offset int) (*WeeklySummary, error) {
	if err := s.authorize(PipelineWeekly, sess); err != nil {
		return nil, err
	}

	week, err := ResolveWeek(s.now(), offset, s.loc)
	if err != nil {
		return nil, s.rejected(PipelineWeekly, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, s.abandoned(PipelineWeekly, err)
	}

	records, err := fetch(s, PipelineWeekly, func() ([]DailyRecord, error) {
		return s.src.DailyRecords(ctx, week)
	})
	synthetic := false
	if err != nil {
		if ctx.Err() != nil {
			return nil, s.abandoned(PipelineWeekly, ctx.Err())
		}
		srcErr := &SourceError{Pipeline: PipelineWeekly, Selector: offset, Err: err}
		if s.fallback == nil {
			return nil, s.failed(srcErr)
		}
		s.usingFallback(srcErr)
		if records, err = s.fallback.DailyRecords(ctx, week); err != nil {
			return nil, s.failed(&SourceError{Pipeline: PipelineWeekly, Selector: offset, Err: err})
		}
		synthetic = true
	}

	sum := BuildWeekly(week, records)
	sum.Synthetic = synthetic
	s.succeeded(PipelineWeekly, synthetic)
	return sum, nil
}

type yearlyRecords struct {
	months       []MonthlyRecord
	achievements []Achievement
	categories   []Category
}

func loadYear(ctx context.Context, src Source, year int, loc *time.Location) (yearlyRecords, error) {
	var r yearlyRecords
	var err error
	if r.months, err = src.MonthlyRecords(ctx, year, loc); err != nil {
		return r, err
	}
	if r.achievements, err = src.Achievements(ctx, year); err != nil {
		return r, fmt.Errorf("achievements: %w", err)
	}
	if r.categories, err = src.Categories(ctx, year, loc); err != nil {
		return r, fmt.Errorf("categories: %w", err)
	}
	return r, nil
}

// Yearly builds the summary of a calendar year between MinYear and MaxYear.
func (s *Service) Yearly(ctx context.Context, sess *session.Session, year int) (*YearlySummary, error) {
	if err := s.authorize(PipelineYearly, sess); err != nil {
		return nil, err
	}
	if err := CheckYear(year); err != nil {
		return nil, s.rejected(PipelineYearly, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, s.abandoned(PipelineYearly, err)
	}

	r, err := fetch(s, PipelineYearly, func() (yearlyRecords, error) {
		return loadYear(ctx, s.src, year, s.loc)
	})
	synthetic := false
	if err != nil {
		if ctx.Err() != nil {
			return nil, s.abandoned(PipelineYearly, ctx.Err())
		}
		srcErr := &SourceError{Pipeline: PipelineYearly, Selector: year, Err: err}
		if s.fallback == nil {
			return nil, s.failed(srcErr)
		}
		s.usingFallback(srcErr)
		if r, err = loadYear(ctx, s.fallback, year, s.loc); err != nil {
			return nil, s.failed(&SourceError{Pipeline: PipelineYearly, Selector: year, Err: err})
		}
		synthetic = true
	}

	sum := BuildYearly(year, r.months, r.achievements, r.categories)
	sum.Synthetic = synthetic
	s.succeeded(PipelineYearly, synthetic)
	return sum, nil
}

// Streak reports the current activity streak when the source tracks activity.
func (s *Service) Streak(ctx context.Context, sess *session.Session) (Streak, error) {
	if err := sess.Validate(s.now()); err != nil {
		return Streak{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	as, ok := s.src.(ActivitySource)
	if !ok {
		return Streak{}, nil
	}

	today := s.now().In(s.loc)
	// A full year back bounds the streak length.
	from := time.Date(today.Year()-1, today.Month(), today.Day(), 0, 0, 0, 0, s.loc)
	days, err := as.ActiveDays(ctx, from, today)
	if err != nil {
		return Streak{}, fmt.Errorf("%w: active days: %w", ErrDataSource, err)
	}
	return ComputeStreak(days, today), nil
}

func (s *Service) rejected(p Pipeline, err error) error {
	metrics.SummaryRequests.WithLabelValues(string(p), "invalid_selector").Inc()
	return err
}

// abandoned reports a request whose caller went away. It is neither a source
// failure nor a reason to serve fallback records.
func (s *Service) abandoned(p Pipeline, err error) error {
	s.log.Debug("summary request abandoned", zap.String("pipeline", string(p)), zap.Error(err))
	metrics.SummaryRequests.WithLabelValues(string(p), "abandoned").Inc()
	return fmt.Errorf("%s summary: %w", p, err)
}

func (s *Service) failed(err *SourceError) error {
	s.log.Error("summary source failed",
		zap.String("pipeline", string(err.Pipeline)),
		zap.Int("selector", err.Selector),
		zap.Error(err.Err),
	)
	metrics.SummaryRequests.WithLabelValues(string(err.Pipeline), "source_error").Inc()
	return err
}

func (s *Service) usingFallback(err *SourceError) {
	s.log.Warn("summary source failed, serving synthetic records",
		zap.String("pipeline", string(err.Pipeline)),
		zap.Int("selector", err.Selector),
		zap.Error(err.Err),
	)
	metrics.SummaryFallbacks.WithLabelValues(string(err.Pipeline)).Inc()
}

func (s *Service) succeeded(p Pipeline, synthetic bool) {
	outcome := "ok"
	if synthetic {
		outcome = "fallback"
	}
	metrics.SummaryRequests.WithLabelValues(string(p), outcome).Inc()
}
