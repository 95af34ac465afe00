package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

// apply plays a move given in coordinate form, failing if it is not legal.
func apply(t *testing.T, g *Game, coord string) {
	t.Helper()
	from, err := board.ParseSquare(coord[0:2])
	if err != nil {
		t.Fatal(err)
	}
	to, err := board.ParseSquare(coord[2:4])
	if err != nil {
		t.Fatal(err)
	}
	m, ok := g.FindMove(from, to)
	if !ok {
		t.Fatalf("move %s not legal in %s", coord, g.Position().ToFEN())
	}
	g.Apply(m, board.Queen)
}

func TestFoolsMate(t *testing.T) {
	g := New()
	for _, coord := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		apply(t, g, coord)
	}

	if !g.IsCheckmate() {
		t.Fatal("expected checkmate")
	}
	if !g.IsOver() {
		t.Error("game not over at checkmate")
	}
	if got := g.Result(); got != BlackWins {
		t.Errorf("result = %s, want 0-1", got)
	}

	log := g.MoveLog()
	if len(log) != 4 {
		t.Fatalf("move log has %d entries, want 4", len(log))
	}
	if log[3] != "Qd8-h4#" {
		t.Errorf("mating move notated %q, want Qd8-h4#", log[3])
	}
}

func TestCheckSuffix(t *testing.T) {
	g, err := NewFromFEN("k7/8/8/8/8/8/8/K2R4 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	apply(t, g, "d1d8")

	log := g.MoveLog()
	if log[0] != "Rd1-d8+" {
		t.Errorf("checking move notated %q, want Rd1-d8+", log[0])
	}
}

func TestUndoPastStartIsNoOp(t *testing.T) {
	g := New()
	before := g.Position().Copy()

	g.Undo()

	if diff := cmp.Diff(*before, *g.Position()); diff != "" {
		t.Errorf("undo on fresh game changed the position (-want +got):\n%s", diff)
	}
	if g.MoveCount() != 0 {
		t.Errorf("move count = %d after no-op undo", g.MoveCount())
	}
}

func TestUndoRestoresPosition(t *testing.T) {
	g := New()
	before := g.Position().Copy()

	apply(t, g, "e2e4")
	apply(t, g, "e7e5")
	g.Undo()
	g.Undo()

	if diff := cmp.Diff(*before, *g.Position()); diff != "" {
		t.Errorf("undo pair did not restore the position (-want +got):\n%s", diff)
	}
	if len(g.MoveLog()) != 0 {
		t.Error("move log not trimmed by undo")
	}
	if len(g.Snapshots()) != 0 {
		t.Error("snapshots not trimmed by undo")
	}
}

func TestUndoClearsTerminalState(t *testing.T) {
	g := New()
	for _, coord := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		apply(t, g, coord)
	}
	if !g.IsCheckmate() {
		t.Fatal("fixture not mated")
	}

	g.Undo()
	if g.IsCheckmate() || g.IsOver() {
		t.Error("terminal state survived undo")
	}
	if g.Result() != InProgress {
		t.Errorf("result = %s after undo, want *", g.Result())
	}
}

func TestSnapshotsTrackMoves(t *testing.T) {
	g := New()
	apply(t, g, "e2e4")
	apply(t, g, "c7c5")

	snaps := g.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("snapshot count = %d, want 2", len(snaps))
	}
	if snaps[1] != g.Position().ToFEN() {
		t.Errorf("last snapshot %q does not match current position %q", snaps[1], g.Position().ToFEN())
	}

	// Snapshots are valid FEN and replayable.
	if _, err := board.ParseFEN(snaps[0]); err != nil {
		t.Errorf("snapshot not parseable: %v", err)
	}
}

func TestPromotionChoiceApplied(t *testing.T) {
	g, err := NewFromFEN("k7/4P3/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m, ok := g.FindMove(board.E7, board.E8)
	if !ok {
		t.Fatal("promotion move not legal")
	}
	g.Apply(m, board.Rook)

	if g.Position().Board[board.E8] != board.WhiteRook {
		t.Errorf("promoted to %v, want rook", g.Position().Board[board.E8])
	}
	if log := g.MoveLog(); log[0] != "e7-e8=R+" && log[0] != "e7-e8=R" {
		t.Errorf("promotion notated %q", log[0])
	}
}

func TestPromotionChoiceClamped(t *testing.T) {
	g, err := NewFromFEN("k7/4P3/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	m, _ := g.FindMove(board.E7, board.E8)
	g.Apply(m, board.King)

	if g.Position().Board[board.E8] != board.WhiteQueen {
		t.Errorf("promoted to %v, want queen after clamping", g.Position().Board[board.E8])
	}
}

func TestResultWhiteWins(t *testing.T) {
	g, err := NewFromFEN("k7/8/1K6/8/8/8/8/7R w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	apply(t, g, "h1h8")

	if g.Result() != WhiteWins {
		t.Errorf("result = %s, want 1-0", g.Result())
	}
	if log := g.MoveLog(); log[0] != "Rh1-h8#" {
		t.Errorf("mating move notated %q, want Rh1-h8#", log[0])
	}
}
