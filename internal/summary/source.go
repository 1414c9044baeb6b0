package summary

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Source fetches the raw records a summary is built from. Records come back
// in chronological order: seven days starting Monday, or twelve months.
type Source interface {
	DailyRecords(ctx context.Context, week Range) ([]DailyRecord, error)
	MonthlyRecords(ctx context.Context, year int, loc *time.Location) ([]MonthlyRecord, error)
	Achievements(ctx context.Context, year int) ([]Achievement, error)
	Categories(ctx context.Context, year int, loc *time.Location) ([]Category, error)
}

// ActivitySource reports the days on which at least one task was completed.
type ActivitySource interface {
	ActiveDays(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// RandomSource synthesizes plausible records. It backs demos and the opt-in
// fallback and must never be mistaken for real data.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a generator seeded with seed, or with the clock when seed is 0.
func NewRandomSource(seed int64) *RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

// between returns a value in [lo, lo+n).
func (s *RandomSource) between(lo, n int) int {
	return lo + s.rng.Intn(n)
}

func (s *RandomSource) DailyRecords(_ context.Context, week Range) ([]DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := week.Days()
	records := make([]DailyRecord, 0, len(days))
	for i, d := range days {
		completed := s.between(3, 8)
		records = append(records, DailyRecord{
			Label:          dayLabels[i%DaysPerWeek],
			Date:           d,
			TasksCompleted: completed,
			TotalTasks:     max(s.between(8, 5), completed),
			FocusMinutes:   s.between(60, 120),
		})
	}
	return records, nil
}

func (s *RandomSource) MonthlyRecords(_ context.Context, _ int, _ *time.Location) ([]MonthlyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]MonthlyRecord, 0, MonthsPerYear)
	for _, label := range monthLabels {
		records = append(records, MonthlyRecord{
			Label:          label,
			TasksCompleted: s.between(100, 50),
			FocusHours:     float64(s.between(40, 20)),
			CompletionRate: float64(s.between(75, 15)),
		})
	}
	return records, nil
}

// unlockDays are the month-day unlock dates paired with the catalog order.
var unlockDays = []string{"05-15", "06-20", "04-10", "07-01", "08-15", "09-01"}

func (s *RandomSource) Achievements(_ context.Context, year int) ([]Achievement, error) {
	out := Catalog()
	for i := range out {
		out[i].UnlockedDate = fmt.Sprintf("%d-%s", year, unlockDays[i%len(unlockDays)])
	}
	return out, nil
}

func (s *RandomSource) Categories(_ context.Context, _ int, _ *time.Location) ([]Category, error) {
	return []Category{
		{Name: "Work Projects", Count: 486, Percentage: 34},
		{Name: "Personal Development", Count: 312, Percentage: 22},
		{Name: "Health & Fitness", Count: 275, Percentage: 19},
		{Name: "Creative Work", Count: 198, Percentage: 14},
		{Name: "Others", Count: 159, Percentage: 11},
	}, nil
}

// ActiveDays marks roughly five of every seven days as active.
func (s *RandomSource) ActiveDays(_ context.Context, from, to time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var days []time.Time
	for _, d := range (Range{Start: from, End: to}).Days() {
		if s.rng.Intn(7) < 5 {
			days = append(days, d)
		}
	}
	return days, nil
}
