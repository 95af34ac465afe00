package engine

import (
	"testing"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func legalMoves(p *board.Position) *board.MoveList {
	var moves board.MoveList
	p.LegalMoves(&moves)
	return &moves
}

func TestEvaluateStartingPosition(t *testing.T) {
	pos := board.New()
	moves := legalMoves(pos)

	// Everything cancels except mobility for the side to move.
	want := DefaultWeights().MobilityPerMove * moves.Len()
	if got := Evaluate(pos, moves.Len(), DefaultWeights()); got != want {
		t.Errorf("Evaluate(start) = %d, want %d", got, want)
	}
}

func TestEvaluateCheckmate(t *testing.T) {
	pos := mustParse(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	moves := legalMoves(pos)

	if got := Evaluate(pos, moves.Len(), DefaultWeights()); got != MateScore {
		t.Errorf("white mates: Evaluate = %d, want %d", got, MateScore)
	}

	mirror := mustParse(t, "k7/8/8/8/8/8/6PP/r6K w - - 0 1")
	moves = legalMoves(mirror)
	if got := Evaluate(mirror, moves.Len(), DefaultWeights()); got != -MateScore {
		t.Errorf("black mates: Evaluate = %d, want %d", got, -MateScore)
	}
}

func TestEvaluateDraw(t *testing.T) {
	pos := mustParse(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	moves := legalMoves(pos)

	if got := Evaluate(pos, moves.Len(), DefaultWeights()); got != DrawScore {
		t.Errorf("stalemate: Evaluate = %d, want %d", got, DrawScore)
	}
}

func TestEvaluateMaterialDominates(t *testing.T) {
	// White is up a queen.
	pos := mustParse(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	moves := legalMoves(pos)

	if got := Evaluate(pos, moves.Len(), DefaultWeights()); got < board.PieceValue[board.Queen]/2 {
		t.Errorf("Evaluate = %d, expected a large white advantage", got)
	}
}

func TestEvaluateDoubledPawns(t *testing.T) {
	w := DefaultWeights()
	// Kings plus white pawns doubled on the e-file vs black pawns side
	// by side. Pick weights that isolate pawn structure.
	w.MobilityPerMove = 0
	w.PieceSquare = 0
	w.KingShield = 0
	w.KingCenter = 0

	pos := mustParse(t, "k7/8/8/8/8/4P3/4P3/K7 w - - 0 1")
	moves := legalMoves(pos)
	doubled := Evaluate(pos, moves.Len(), w)

	pos2 := mustParse(t, "k7/8/8/8/8/8/3PP3/K7 w - - 0 1")
	moves = legalMoves(pos2)
	connected := Evaluate(pos2, moves.Len(), w)

	if doubled >= connected {
		t.Errorf("doubled pawns (%d) should score below connected pawns (%d)", doubled, connected)
	}
}

func TestKingShieldBonus(t *testing.T) {
	w := DefaultWeights()
	w.MobilityPerMove = 0
	w.PieceSquare = 0

	sheltered := mustParse(t, "k7/8/8/8/8/8/3P1P2/4K3 w - - 0 1")
	moves := legalMoves(sheltered)
	with := Evaluate(sheltered, moves.Len(), w)

	bare := mustParse(t, "k7/8/8/8/8/3P1P2/8/4K3 w - - 0 1")
	moves = legalMoves(bare)
	without := Evaluate(bare, moves.Len(), w)

	if with <= without {
		t.Errorf("sheltered king (%d) should score above exposed king (%d)", with, without)
	}
}
