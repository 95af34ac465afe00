package engine

import (
	"sort"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

// DefaultBreadth is the number of ordered moves searched at each node.
// Zero disables the cap.
const DefaultBreadth = 10

const (
	hashMoveBonus  = 1 << 20
	promotionBonus = 800
	castleBonus    = 100
)

// moveScore ranks a move for ordering: winning captures first, with the
// victim's value dominating the attacker's, then promotions and castles.
func moveScore(m board.Move) int {
	score := 0
	if m.IsCapture() {
		score += 10*m.Captured.Value() - m.Piece.Value()
	}
	if m.IsPromotion() {
		score += promotionBonus
	}
	if m.Castle {
		score += castleBonus
	}
	return score
}

// OrderMoves sorts the list best-first, with the hash move (if any) ahead of
// everything, and truncates to at most breadth moves when breadth > 0.
// Ties break on the move identity key so the ordering is deterministic
// regardless of generation order.
func OrderMoves(list *board.MoveList, hashMove board.Move, breadth int) {
	moves := list.Slice()
	sort.SliceStable(moves, func(i, j int) bool {
		si, sj := moveScore(moves[i]), moveScore(moves[j])
		if hashMove != board.NoMove {
			if moves[i].Equal(hashMove) {
				si += hashMoveBonus
			}
			if moves[j].Equal(hashMove) {
				sj += hashMoveBonus
			}
		}
		if si != sj {
			return si > sj
		}
		return moves[i].ID() < moves[j].ID()
	})
	if breadth > 0 {
		list.Truncate(breadth)
	}
}
