// Package history fabricates the elo trend shown for a player. Nothing here is real match
// data: every call produces a new bounded random walk that ends at the player's current LP.
package history

import (
	"math/rand/v2"
	"ranking-dashboard/internal/constants"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type Point struct {
	Label string
	LP    int
}

type Series struct {
	ID          string
	PlayerKey   string
	Points      []Point // oldest first
	GeneratedAt time.Time
}

// Last is the "today" point.
func (s Series) Last() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}

// Values returns the LP of every point, oldest first.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = float64(p.LP)
	}
	return values
}

// Source is satisfied by *rand.Rand from math/rand/v2.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

type Simulator struct {
	rng    Source
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*Simulator)

func WithSource(src Source) Option {
	return func(s *Simulator) { s.rng = src }
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		rng:    globalSource{},
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate walks backward from currentLP. The final point is always {"today", currentLP},
// unclamped; every earlier point is the next one minus a delta in [-10, 19], clamped to [0, 100].
func (s *Simulator) Generate(playerKey string, currentLP int) Series {
	days := constants.HistoryDays
	today := s.now()
	points := make([]Point, days)

	points[days-1] = Point{Label: constants.HistoryLabel, LP: currentLP}

	simLP := currentLP
	for i := days - 2; i >= 0; i-- {
		delta := s.rng.IntN(constants.HistoryDeltaSpan) + constants.HistoryDeltaMin
		simLP = clamp(simLP-delta, constants.HistoryFloorLP, constants.HistoryCeilLP)
		points[i] = Point{
			Label: today.AddDate(0, 0, -(days - 1 - i)).Format(constants.HistoryDateFmt),
			LP:    simLP,
		}
	}

	id, err := gonanoid.New()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to generate series id")
	}

	s.logger.Debug().
		Str("series_id", id).
		Str("player", playerKey).
		Int("current_lp", currentLP).
		Msg("history series generated")

	return Series{
		ID:          id,
		PlayerKey:   playerKey,
		Points:      points,
		GeneratedAt: today,
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
