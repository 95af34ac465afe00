package engine

import (
	"testing"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

func TestOrderMovesCapturesFirst(t *testing.T) {
	// White can take the queen with a pawn, a rook, or play quiet moves.
	pos := mustParse(t, "k7/8/8/3q4/4P3/8/8/K2R4 w - - 0 1")
	moves := legalMoves(pos)

	OrderMoves(moves, board.NoMove, 0)

	first := moves.Get(0)
	if !first.IsCapture() || first.Captured.Type() != board.Queen {
		t.Fatalf("first ordered move = %s, want a queen capture", first)
	}
	// Pawn takes queen outranks rook takes queen.
	if first.Piece.Type() != board.Pawn {
		t.Errorf("first capture by %v, want the pawn", first.Piece.Type())
	}
}

func TestOrderMovesHashMoveFirst(t *testing.T) {
	pos := board.New()
	moves := legalMoves(pos)

	hashMove, ok := moves.Find(board.B1, board.C3)
	if !ok {
		t.Fatal("fixture move missing")
	}

	OrderMoves(moves, hashMove, 0)
	if !moves.Get(0).Equal(hashMove) {
		t.Errorf("first ordered move = %s, want hash move %s", moves.Get(0), hashMove)
	}
}

func TestOrderMovesBreadthCap(t *testing.T) {
	pos := board.New()
	moves := legalMoves(pos)
	if moves.Len() != 20 {
		t.Fatalf("start position has %d moves, want 20", moves.Len())
	}

	OrderMoves(moves, board.NoMove, DefaultBreadth)
	if moves.Len() != DefaultBreadth {
		t.Errorf("ordered list has %d moves, want %d", moves.Len(), DefaultBreadth)
	}
}

func TestOrderMovesDeterministicTieBreak(t *testing.T) {
	for run := 0; run < 3; run++ {
		pos := board.New()
		moves := legalMoves(pos)
		OrderMoves(moves, board.NoMove, 0)

		for i := 1; i < moves.Len(); i++ {
			prev, cur := moves.Get(i-1), moves.Get(i)
			if moveScore(prev) == moveScore(cur) && prev.ID() > cur.ID() {
				t.Fatalf("tie not broken by identity: %s before %s", prev, cur)
			}
		}
	}
}
