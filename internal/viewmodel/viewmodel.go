package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"ranking-dashboard/internal/api"
	"ranking-dashboard/internal/constants"
	"ranking-dashboard/internal/domain"
	"ranking-dashboard/internal/history"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrDraftIncomplete is wrapped by the error SubmitDraft returns when name or tag is blank.
// No request is sent.
var ErrDraftIncomplete = errors.New("name and tag are required")

type RankingClient interface {
	FetchRanking(ctx context.Context) ([]domain.Player, error)
	SubmitPlayer(ctx context.Context, name, tag string) (*domain.Player, error)
}

type HistoryGenerator interface {
	Generate(playerKey string, currentLP int) history.Series
}

// ViewModel is the dashboard state of one session.
type ViewModel struct {
	client  RankingClient
	history HistoryGenerator
	logger  zerolog.Logger

	mu         sync.Mutex
	players    []domain.Player
	inflight   int
	lastErr    error
	draft      domain.Draft
	selected   *domain.Player
	series     *history.Series
	refreshSeq uint64
}

// Snapshot is a copy of the state taken under one lock.
type Snapshot struct {
	Players  []domain.Player
	Loading  bool
	LastErr  error
	Draft    domain.Draft
	Selected *domain.Player
	Series   *history.Series
}

func (s Snapshot) Podium() []domain.Player    { return Podium(s.Players) }
func (s Snapshot) TableRows() []domain.Player { return TableRows(s.Players) }

func New(client RankingClient, hist HistoryGenerator, logger zerolog.Logger) *ViewModel {
	return &ViewModel{
		client:  client,
		history: hist,
		logger:  logger,
		players: []domain.Player{},
	}
}

// Refresh replaces the player list with the backend's. On failure the previous list stays.
// A response that arrives after a newer refresh started is discarded.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	vm.mu.Lock()
	vm.refreshSeq++
	seq := vm.refreshSeq
	vm.inflight++
	vm.mu.Unlock()

	players, err := vm.client.FetchRanking(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.inflight--

	if seq != vm.refreshSeq {
		vm.logger.Debug().Uint64("seq", seq).Uint64("latest", vm.refreshSeq).Msg("dropping superseded ranking response")
		return err
	}

	if err != nil {
		vm.lastErr = err
		vm.logger.Error().Err(err).Str("kind", api.KindOf(err).String()).Msg("failed to refresh ranking")
		return fmt.Errorf("failed to refresh ranking: %w", err)
	}

	vm.players = players
	vm.lastErr = nil
	vm.logger.Info().Int("count", len(players)).Msg("ranking refreshed")
	return nil
}

func (vm *ViewModel) UpdateDraft(patch domain.DraftPatch) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.draft = vm.draft.Apply(patch)
}

// SubmitDraft registers the drafted player and refreshes the ranking once the backend accepts it.
// The draft is kept on failure so it can be corrected.
func (vm *ViewModel) SubmitDraft(ctx context.Context) error {
	vm.mu.Lock()
	draft := vm.draft
	if !draft.Complete() {
		vm.mu.Unlock()
		return &api.Error{Kind: api.KindClientValidation, Op: "submit draft", Err: ErrDraftIncomplete}
	}
	vm.inflight++
	vm.mu.Unlock()

	name, tag := strings.TrimSpace(draft.Name), strings.TrimSpace(draft.Tag)
	vm.logger.Info().Str("name", name).Str("tag", tag).Msg("submitting player")

	_, err := vm.client.SubmitPlayer(ctx, name, tag)
	if err != nil {
		vm.mu.Lock()
		vm.inflight--
		vm.lastErr = err
		vm.mu.Unlock()
		vm.logger.Error().Err(err).Str("kind", api.KindOf(err).String()).Str("name", name).Str("tag", tag).Msg("failed to submit player")
		return fmt.Errorf("failed to submit player: %w", err)
	}

	vm.mu.Lock()
	vm.draft = domain.Draft{}
	vm.mu.Unlock()

	// loading stays up until the follow-up refresh completes
	err = vm.Refresh(ctx)

	vm.mu.Lock()
	vm.inflight--
	vm.mu.Unlock()
	return err
}

// SelectPlayer opens the trend view for p with a freshly generated series.
func (vm *ViewModel) SelectPlayer(p domain.Player) history.Series {
	series := vm.history.Generate(p.Key(), p.LP)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.selected = &p
	vm.series = &series
	return series
}

func (vm *ViewModel) ClearSelection() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.selected = nil
	vm.series = nil
}

func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	s := Snapshot{
		Players: append([]domain.Player(nil), vm.players...),
		Loading: vm.inflight > 0,
		LastErr: vm.lastErr,
		Draft:   vm.draft,
	}
	if vm.selected != nil {
		p := *vm.selected
		s.Selected = &p
	}
	if vm.series != nil {
		series := *vm.series
		series.Points = append([]history.Point(nil), vm.series.Points...)
		s.Series = &series
	}
	return s
}

func (vm *ViewModel) Players() []domain.Player {
	return vm.Snapshot().Players
}

func (vm *ViewModel) Podium() []domain.Player {
	return Podium(vm.Players())
}

func (vm *ViewModel) TableRows() []domain.Player {
	return TableRows(vm.Players())
}

func (vm *ViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.inflight > 0
}

func (vm *ViewModel) LastError() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastErr
}

func (vm *ViewModel) Draft() domain.Draft {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

func (vm *ViewModel) Selected() (domain.Player, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.selected == nil {
		return domain.Player{}, false
	}
	return *vm.selected, true
}

func (vm *ViewModel) Series() (history.Series, bool) {
	s := vm.Snapshot()
	if s.Series == nil {
		return history.Series{}, false
	}
	return *s.Series, true
}

// Podium is the first three players, or fewer when the list is short.
func Podium(players []domain.Player) []domain.Player {
	n := min(constants.PodiumSize, len(players))
	return players[:n:n]
}

// TableRows is the full list in backend order; podium players are not excluded.
func TableRows(players []domain.Player) []domain.Player {
	return players
}
