package hub

import (
	"context"
	"sync"
	"time"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/kiryu-dev/tactics-and-toes/internal/usecase/game"
	"github.com/kiryu-dev/tactics-and-toes/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultThinkDelay    = 500 * time.Millisecond
	defaultIdleTimeout   = 10 * time.Minute
	defaultCleanupPeriod = time.Minute
)

// OpponentFactory builds the opponent of a new session.
type OpponentFactory func() domain.OpponentUseCase

type session struct {
	mu       *sync.Mutex
	uuid     string
	client   domain.Client
	state    domain.GameState
	opponent domain.OpponentUseCase
	cancel   context.CancelFunc
	lastSeen time.Time
}

type useCase struct {
	newOpponent   OpponentFactory
	sessions      map[string]*session
	active        *atomic.Int64
	thinkDelay    time.Duration
	idleTimeout   time.Duration
	cleanupPeriod time.Duration
	done          chan struct{}
	mu            *sync.RWMutex
	logger        *zap.Logger
}

type Option func(u *useCase)

func WithThinkDelay(d time.Duration) Option {
	return func(u *useCase) {
		u.thinkDelay = d
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(u *useCase) {
		if d > 0 {
			u.idleTimeout = d
		}
	}
}

func WithCleanupPeriod(d time.Duration) Option {
	return func(u *useCase) {
		if d > 0 {
			u.cleanupPeriod = d
		}
	}
}

func New(newOpponent OpponentFactory, logger *zap.Logger, opts ...Option) *useCase {
	u := &useCase{
		newOpponent:   newOpponent,
		sessions:      make(map[string]*session),
		active:        atomic.NewInt64(0),
		thinkDelay:    defaultThinkDelay,
		idleTimeout:   defaultIdleTimeout,
		cleanupPeriod: defaultCleanupPeriod,
		done:          make(chan struct{}),
		mu:            &sync.RWMutex{},
		logger:        logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	go u.removeIdleSessions()
	return u
}

// Handle serves one connection until the client goes away. A client that
// reconnects with the same key continues its previous game.
func (u *useCase) Handle(ctx context.Context, client domain.Client) error {
	s, ok := u.continueActiveGame(client)
	if !ok {
		s = u.createSession(client)
	}
	u.active.Inc()
	defer u.active.Dec()
	defer u.detach(s, client)

	s.mu.Lock()
	u.sendState(s, false)
	if game.PhaseOf(s.state) == domain.OpponentTurn && s.cancel == nil {
		u.scheduleOpponent(s)
	}
	s.mu.Unlock()

	for {
		msg, err := client.ReadMessage()
		if err != nil {
			if errors.Is(err, domain.ErrConnectionClosed) {
				u.logger.Info("client disconnected", zap.String("client uuid", client.Uuid()))
				return nil
			}
			return errors.WithMessage(err, "read client message")
		}
		u.dispatch(ctx, s, msg)
	}
}

func (u *useCase) ActiveSessions() int64 {
	return u.active.Load()
}

func (u *useCase) Close() {
	close(u.done)
}

func (u *useCase) dispatch(_ context.Context, s *session, msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := u.transition(s.state, msg)
	if err != nil {
		u.logger.Info("rejected", zap.String("session", s.uuid), zap.Error(err))
		u.send(s, domain.Message{
			Type:    domain.Rejected,
			Payload: domain.NewRejectedPayload(err),
		})
		return
	}
	switch msg.Type {
	case domain.NewGame, domain.ResetGame, domain.SwitchMode:
		u.cancelOpponent(s)
	}
	u.commit(s, next, false)
}

func (u *useCase) transition(state domain.GameState, msg domain.Message) (domain.GameState, error) {
	switch msg.Type {
	case domain.NewGame:
		p, err := utils.UnmarshalJson[domain.NewGamePayload](msg.Payload)
		if err != nil {
			return state, errors.WithMessage(domain.ErrBadPayload, err.Error())
		}
		variant, ok := domain.ParseVariant(p.Variant)
		if !ok {
			return state, errors.WithMessagef(domain.ErrUnknownVariant, "variant '%s'", p.Variant)
		}
		next, err := game.NewGame(variant, p.Mode)
		if err != nil {
			return state, err
		}
		next.Version = state.Version + 1
		return next, nil
	case domain.SelectMark:
		p, err := utils.UnmarshalJson[domain.SelectMarkPayload](msg.Payload)
		if err != nil {
			return state, errors.WithMessage(domain.ErrBadPayload, err.Error())
		}
		return game.SelectMark(state, p.Player)
	case domain.MakeMove:
		p, err := utils.UnmarshalJson[domain.MovePayload](msg.Payload)
		if err != nil {
			return state, errors.WithMessage(domain.ErrBadPayload, err.Error())
		}
		return game.SubmitMove(state, p.Position)
	case domain.ResetGame:
		return game.Reset(state), nil
	case domain.SwitchMode:
		return game.SwitchMode(state), nil
	default:
		return state, errors.WithMessagef(domain.ErrUnknownMessage, "type '%d'", msg.Type)
	}
}

// commit stores next and reports it. Caller holds s.mu.
func (u *useCase) commit(s *session, next domain.GameState, byOpponent bool) {
	s.state = next
	u.sendState(s, byOpponent)
	if game.PhaseOf(next) == domain.OpponentTurn {
		u.scheduleOpponent(s)
	}
}

func (u *useCase) scheduleOpponent(s *session) {
	u.cancelOpponent(s)
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go u.playOpponent(ctx, s, s.state)
}

func (u *useCase) cancelOpponent(s *session) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// playOpponent waits for the think delay, decides against snapshot and
// applies the move only if nothing happened to the session meanwhile.
func (u *useCase) playOpponent(ctx context.Context, s *session, snapshot domain.GameState) {
	timer := time.NewTimer(u.thinkDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}
	move, err := s.opponent.Decide(ctx, snapshot)
	if err != nil {
		if ctx.Err() == nil {
			u.logger.Error("opponent decide", zap.String("session", s.uuid), zap.Error(err))
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || s.state.Version != snapshot.Version {
		u.logger.Debug("discarded stale opponent move",
			zap.String("session", s.uuid),
			zap.Uint64("snapshot version", snapshot.Version),
			zap.Uint64("current version", s.state.Version))
		return
	}
	next, err := game.ApplyOpponentMove(s.state, move)
	if err != nil {
		u.logger.Error("apply opponent move", zap.String("session", s.uuid), zap.Error(err))
		return
	}
	u.cancelOpponent(s)
	u.commit(s, next, true)
}

// sendState reports the current state. Caller holds s.mu.
func (u *useCase) sendState(s *session, byOpponent bool) {
	var opts []domain.StatePayloadOption
	if byOpponent {
		opts = append(opts, domain.ByOpponent())
	}
	u.send(s, domain.Message{
		Type:    domain.StateUpdate,
		Payload: domain.NewStatePayload(s.state, game.PhaseOf(s.state), opts...),
	})
}

// send writes msg if the session still has a client. Caller holds s.mu.
func (u *useCase) send(s *session, msg domain.Message) {
	if s.client == nil {
		return
	}
	if err := s.client.WriteMessage(msg); err != nil {
		u.logger.Warn("write client message", zap.String("session", s.uuid), zap.Error(err))
	}
}

func (u *useCase) createSession(client domain.Client) *session {
	state, _ := game.NewGame(domain.Classic, domain.PlayerVsPlayer)
	s := &session{
		mu:       &sync.Mutex{},
		uuid:     client.Uuid(),
		client:   client,
		state:    state,
		opponent: u.newOpponent(),
		lastSeen: time.Now(),
	}
	u.mu.Lock()
	u.sessions[s.uuid] = s
	u.mu.Unlock()
	u.logger.Info("created session", zap.String("session", s.uuid))
	return s
}

func (u *useCase) continueActiveGame(client domain.Client) (*session, bool) {
	u.mu.RLock()
	s, ok := u.sessions[client.Uuid()]
	u.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.client = client
	s.lastSeen = time.Now()
	s.mu.Unlock()
	u.logger.Info("found active session", zap.String("session", s.uuid))
	return s, true
}

// detach forgets client unless a newer connection already took the session over.
func (u *useCase) detach(s *session, client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != client {
		return
	}
	s.client = nil
	s.lastSeen = time.Now()
	u.cancelOpponent(s)
}

func (u *useCase) removeIdleSessions() {
	ticker := time.NewTicker(u.cleanupPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := u.removeIdle(time.Now()); removed > 0 {
				u.logger.Info("removed idle sessions", zap.Int("count", removed))
			}
		case <-u.done:
			return
		}
	}
}

func (u *useCase) removeIdle(now time.Time) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	removed := 0
	for id, s := range u.sessions {
		s.mu.Lock()
		idle := s.client == nil && now.Sub(s.lastSeen) > u.idleTimeout
		s.mu.Unlock()
		if idle {
			delete(u.sessions, id)
			removed++
		}
	}
	return removed
}
