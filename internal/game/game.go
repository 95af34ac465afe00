// Package game ties the rules engine to its callers: it tracks the move
// history with undo, keeps notation and board snapshots for replay, and
// reports the game result.
package game

import (
	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

// Result is the outcome of a game.
type Result int

const (
	InProgress Result = iota
	WhiteWins
	BlackWins
	Drawn
)

// String returns the conventional result string.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Drawn:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// ply is one applied move with everything needed to undo and replay it.
type ply struct {
	move     board.Move
	undo     board.Undo
	notation string
	snapshot string
}

// Game is a single chess game in progress. Not safe for concurrent use.
type Game struct {
	pos     *board.Position
	legal   board.MoveList
	history []ply
}

// New starts a game from the standard position.
func New() *Game {
	g := &Game{pos: board.New()}
	g.refresh()
	return g
}

// NewFromFEN starts a game from an arbitrary position.
func NewFromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{pos: pos}
	g.refresh()
	return g, nil
}

// refresh recomputes the legal move list and terminal flags.
func (g *Game) refresh() {
	g.legal = board.MoveList{}
	g.pos.LegalMoves(&g.legal)
}

// Position returns the current position. Callers must not mutate it.
func (g *Game) Position() *board.Position {
	return g.pos
}

// SideToMove returns the color to move.
func (g *Game) SideToMove() board.Color {
	return g.pos.SideToMove
}

// LegalMoves returns the legal moves of the current position.
func (g *Game) LegalMoves() *board.MoveList {
	return &g.legal
}

// FindMove looks up a legal move by its from/to squares.
func (g *Game) FindMove(from, to board.Square) (board.Move, bool) {
	return g.legal.Find(from, to)
}

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() bool {
	return g.pos.Checkmate
}

// IsDraw reports whether the game is drawn.
func (g *Game) IsDraw() bool {
	return g.pos.Draw
}

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool {
	return g.pos.Checkmate || g.pos.Draw
}

// Result returns the game outcome.
func (g *Game) Result() Result {
	switch {
	case g.pos.Checkmate && g.pos.SideToMove == board.White:
		return BlackWins
	case g.pos.Checkmate:
		return WhiteWins
	case g.pos.Draw:
		return Drawn
	default:
		return InProgress
	}
}

// Apply commits a move. The move must come from LegalMoves; applying any
// other move is a contract violation, not a recoverable error. promotion is
// the piece choice for a promoting move and is ignored otherwise; anything
// outside Knight..Queen promotes to a queen.
func (g *Game) Apply(m board.Move, promotion board.PieceType) {
	if m.IsPromotion() {
		m.Promotion = promotion
	}

	notation := board.Notate(m)
	undo := g.pos.MakeMove(m)
	g.refresh()

	// Check and mate markers need the resulting position.
	if g.pos.Checkmate {
		notation += "#"
	} else if g.pos.InCheck() {
		notation += "+"
	}

	g.history = append(g.history, ply{
		move:     m,
		undo:     undo,
		notation: notation,
		snapshot: g.pos.ToFEN(),
	})
}

// Undo takes back the last move. With no moves played it does nothing.
func (g *Game) Undo() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.pos.UnmakeMove(last.move, last.undo)
	g.refresh()
}

// MoveCount returns the number of plies played.
func (g *Game) MoveCount() int {
	return len(g.history)
}

// LastMove returns the most recently applied move, or NoMove.
func (g *Game) LastMove() board.Move {
	if len(g.history) == 0 {
		return board.NoMove
	}
	return g.history[len(g.history)-1].move
}

// MoveLog returns the notated moves in order.
func (g *Game) MoveLog() []string {
	log := make([]string, len(g.history))
	for i, p := range g.history {
		log[i] = p.notation
	}
	return log
}

// Snapshots returns the FEN of the position after each move, in order.
func (g *Game) Snapshots() []string {
	snaps := make([]string, len(g.history))
	for i, p := range g.history {
		snaps[i] = p.snapshot
	}
	return snaps
}
