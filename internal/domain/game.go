package domain

import (
	"context"
)

const (
	BoardSize    = 9
	NoMove       = -1
	MaxPoofMarks = 3
)

type Player byte

const (
	NoPlayer = Player(iota)
	First
	Second
)

func (p Player) Opponent() Player {
	switch p {
	case First:
		return Second
	case Second:
		return First
	default:
		return NoPlayer
	}
}

func (p Player) Valid() bool {
	return p == First || p == Second
}

type CellKind byte

const (
	Empty = CellKind(iota)
	Half
	Full
)

// Cell is a single board square. Classic and poof marks are always Full.
// A Half cell without an owner is a spent half-mark.
type Cell struct {
	Kind  CellKind
	Owner Player
}

func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

func (c Cell) IsLiveHalf() bool {
	return c.Kind == Half && c.Owner != NoPlayer
}

func (c Cell) IsSpentHalf() bool {
	return c.Kind == Half && c.Owner == NoPlayer
}

func FullMark(p Player) Cell {
	return Cell{Kind: Full, Owner: p}
}

func HalfMark(p Player) Cell {
	return Cell{Kind: Half, Owner: p}
}

type Board [BoardSize]Cell

type Variant byte

const (
	UnknownVariant = Variant(iota)
	Classic
	Poof
	CrissCross
)

type Mode byte

const (
	PlayerVsPlayer = Mode(iota)
	PlayerVsAutomated
)

type Status byte

const (
	InProgress = Status(iota)
	Won
	Draw
)

type Line [3]int

type Outcome struct {
	Status Status
	Winner Player
	Line   Line
}

func (o Outcome) IsTerminal() bool {
	return o.Status != InProgress
}

type TurnState struct {
	Current   Player
	Human     Player
	Automated Player
}

// GameState is an immutable snapshot: every transition returns a new value
// with Version incremented.
type GameState struct {
	Variant  Variant
	Mode     Mode
	Board    Board
	History  History
	Turn     TurnState
	Outcome  Outcome
	LastMove int
	Version  uint64
}

type Phase byte

const (
	AwaitingMarkSelection = Phase(iota)
	HumanTurn
	OpponentTurn
	Terminal
)

type OpponentUseCase interface {
	Decide(ctx context.Context, state GameState) (int, error)
}
