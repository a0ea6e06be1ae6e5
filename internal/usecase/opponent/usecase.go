package opponent

import (
	"context"
	"sync"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultSearchDepth = 4

var ErrNoMove = errors.New("opponent has no move")

// Random is the source of every random choice the opponent makes.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
	Float64() float64
}

type useCase struct {
	mu     *sync.Mutex
	rnd    Random
	depth  int
	logger *zap.Logger
}

type Option func(u *useCase)

func WithSearchDepth(depth int) Option {
	return func(u *useCase) {
		if depth > 0 {
			u.depth = depth
		}
	}
}

func New(rnd Random, logger *zap.Logger, opts ...Option) *useCase {
	u := &useCase{
		mu:     &sync.Mutex{},
		rnd:    rnd,
		depth:  defaultSearchDepth,
		logger: logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Decide picks the automated player's next cell for state.
func (u *useCase) Decide(ctx context.Context, state domain.GameState) (int, error) {
	if state.Outcome.IsTerminal() {
		return domain.NoMove, domain.ErrGameAlreadyTerminal
	}
	if !state.Turn.Automated.Valid() {
		return domain.NoMove, domain.ErrOpponentSymbolNotChosen
	}
	var (
		move int
		err  error
	)
	switch state.Variant {
	case domain.Classic, domain.Poof:
		move = u.heuristic(state)
	case domain.CrissCross:
		move, err = u.search(ctx, state)
		if err != nil {
			return domain.NoMove, errors.WithMessage(err, "search crisscross move")
		}
	default:
		return domain.NoMove, errors.WithMessagef(domain.ErrUnknownVariant, "variant '%d'", state.Variant)
	}
	if move == domain.NoMove {
		return domain.NoMove, ErrNoMove
	}
	u.logger.Debug("opponent decided",
		zap.Stringer("variant", state.Variant),
		zap.Int("position", move),
		zap.Uint64("version", state.Version))
	return move, nil
}

func (u *useCase) intN(n int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.IntN(n)
}

func (u *useCase) float64() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Float64()
}

func (u *useCase) pick(cells []int) int {
	if len(cells) == 0 {
		return domain.NoMove
	}
	return cells[u.intN(len(cells))]
}
