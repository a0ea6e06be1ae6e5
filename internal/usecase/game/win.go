package game

import (
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
)

// winConditions are scanned in this order: rows top to bottom, columns left
// to right, then the two diagonals. The first completed line wins ties.
var winConditions = [8]domain.Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type EqualityRule func(a, b, c domain.Cell) bool

// SameOwner requires three full marks of one player.
func SameOwner(a, b, c domain.Cell) bool {
	return a.Kind == domain.Full && a == b && a == c
}

// AnyFullMark requires three full marks regardless of who completed them.
func AnyFullMark(a, b, c domain.Cell) bool {
	return a.Kind == domain.Full && b.Kind == domain.Full && c.Kind == domain.Full
}

func RuleFor(variant domain.Variant) EqualityRule {
	if variant == domain.CrissCross {
		return AnyFullMark
	}
	return SameOwner
}

func DetectWinner(board domain.Board, rule EqualityRule) (domain.Line, bool) {
	for _, line := range winConditions {
		if rule(board[line[0]], board[line[1]], board[line[2]]) {
			return line, true
		}
	}
	return domain.Line{}, false
}
