package engine

import (
	"context"
	"testing"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

func TestMateInOne(t *testing.T) {
	pos := mustParse(t, "k7/8/1K6/8/8/8/8/7R w - - 0 1")
	moves := legalMoves(pos)

	s := NewSearcher(2, 8)
	move, score := s.ChooseMove(context.Background(), pos, moves)

	if move.From != board.H1 || move.To != board.H8 {
		t.Errorf("chose %s, want h1h8", move)
	}
	if score != MateScore {
		t.Errorf("score = %d, want %d", score, MateScore)
	}
}

func TestMateInOneAsBlack(t *testing.T) {
	pos := mustParse(t, "7r/8/8/8/8/1k6/8/K7 b - - 0 1")
	moves := legalMoves(pos)

	s := NewSearcher(2, 8)
	move, score := s.ChooseMove(context.Background(), pos, moves)

	if move.From != board.H8 || move.To != board.H1 {
		t.Errorf("chose %s, want h8h1", move)
	}
	if score != MateScore {
		t.Errorf("score = %d, want %d (mover's perspective)", score, MateScore)
	}
}

func TestTakesHangingQueen(t *testing.T) {
	pos := mustParse(t, "k7/8/8/8/8/8/3q4/K2R4 w - - 0 1")
	moves := legalMoves(pos)

	s := NewSearcher(2, 8)
	move, _ := s.ChooseMove(context.Background(), pos, moves)

	if move.From != board.D1 || move.To != board.D2 {
		t.Errorf("chose %s, want d1xd2", move)
	}
}

func TestChooseMoveEmptyList(t *testing.T) {
	pos := board.New()
	s := NewSearcher(2, 8)

	move, score := s.ChooseMove(context.Background(), pos, board.NewMoveList())
	if move != board.NoMove {
		t.Errorf("empty list returned %s, want NoMove", move)
	}
	if score != 0 {
		t.Errorf("empty list score = %d, want 0", score)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	var first board.Move
	for i := 0; i < 3; i++ {
		pos := mustParse(t, fen)
		moves := legalMoves(pos)
		s := NewSearcher(3, 8)

		move, _ := s.ChooseMove(context.Background(), pos, moves)
		if i == 0 {
			first = move
			continue
		}
		if !move.Equal(first) {
			t.Fatalf("run %d chose %s, run 0 chose %s", i, move, first)
		}
	}
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	pos := board.New()
	fenBefore := pos.ToFEN()
	moves := legalMoves(pos)

	s := NewSearcher(3, 8)
	s.ChooseMove(context.Background(), pos, moves)

	if got := pos.ToFEN(); got != fenBefore {
		t.Errorf("search mutated the position:\n got %s\nwant %s", got, fenBefore)
	}
	if pos.Hash != pos.ComputeHash() {
		t.Error("search left a stale incremental hash")
	}
}

func TestCancelledSearchStillMoves(t *testing.T) {
	pos := board.New()
	moves := legalMoves(pos)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSearcher(4, 8)
	move, _ := s.ChooseMove(ctx, pos, moves)
	if move == board.NoMove {
		t.Fatal("cancelled search returned NoMove despite legal moves")
	}
	if !moves.Contains(move) {
		t.Errorf("cancelled search returned illegal move %s", move)
	}
}

func TestAbortedSearchDoesNotPolluteTable(t *testing.T) {
	fen := "rnbqkb1r/pp1p1ppp/4pn2/8/2PN4/8/PP2PPPP/RNBQKB1R w KQkq - 0 5"

	clean := NewSearcher(4, 8)
	pos := mustParse(t, fen)
	wantMove, wantScore := clean.ChooseMove(context.Background(), pos, legalMoves(pos))

	// Abort a search on a fresh searcher, then search the same position
	// again on it. Entries cached by stopped frames would carry scores
	// built from bare static evals and steer the re-search elsewhere.
	dirty := NewSearcher(4, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pos = mustParse(t, fen)
	dirty.ChooseMove(ctx, pos, legalMoves(pos))

	pos = mustParse(t, fen)
	move, score := dirty.ChooseMove(context.Background(), pos, legalMoves(pos))

	if !move.Equal(wantMove) {
		t.Errorf("after aborted search chose %s, clean searcher chose %s", move, wantMove)
	}
	if score != wantScore {
		t.Errorf("after aborted search score = %d, clean searcher scored %d", score, wantScore)
	}
}

func TestParallelRootAgreesOnMate(t *testing.T) {
	pos := mustParse(t, "k7/8/1K6/8/8/8/8/7R w - - 0 1")
	moves := legalMoves(pos)

	s := NewSearcher(2, 8)
	s.Parallel = true
	move, score := s.ChooseMove(context.Background(), pos, moves)

	if move.From != board.H1 || move.To != board.H8 {
		t.Errorf("parallel root chose %s, want h1h8", move)
	}
	if score != MateScore {
		t.Errorf("score = %d, want %d", score, MateScore)
	}
}

func TestEngineDifficultyDepth(t *testing.T) {
	e := NewEngine(8)
	e.SetDifficulty(Easy)
	if e.Searcher().Depth != DifficultySettings[Easy].Depth {
		t.Errorf("depth = %d, want %d", e.Searcher().Depth, DifficultySettings[Easy].Depth)
	}

	pos := board.New()
	move, _ := e.ChooseMove(context.Background(), pos, legalMoves(pos))
	if move == board.NoMove {
		t.Error("engine returned NoMove for the starting position")
	}
}
