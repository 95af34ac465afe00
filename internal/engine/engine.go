package engine

import (
	"context"
	"time"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

// SearchLimits specifies constraints on a search.
type SearchLimits struct {
	Depth    int           // search depth in plies
	MoveTime time.Duration // time for this move (0 = no limit)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 3, MoveTime: 2 * time.Second},
	Hard:   {Depth: 4, MoveTime: 5 * time.Second},
}

// ParseDifficulty maps a name to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// Engine is the chess AI. It wraps a Searcher with difficulty presets and
// per-move time limits.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
}

// NewEngine creates an engine with the given transposition table size in MB.
func NewEngine(ttSizeMB int) *Engine {
	s := NewSearcher(DifficultySettings[Medium].Depth, ttSizeMB)
	s.Parallel = true
	return &Engine{
		searcher:   s,
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
	e.searcher.Depth = DifficultySettings[d].Depth
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Searcher exposes the underlying searcher for tuning.
func (e *Engine) Searcher() *Searcher {
	return e.searcher
}

// ChooseMove picks a move for the side to move within the difficulty's time
// limit. moves must be the position's legal moves; an empty list returns
// NoMove.
func (e *Engine) ChooseMove(ctx context.Context, p *board.Position, moves *board.MoveList) (board.Move, int) {
	if ctx == nil {
		ctx = context.Background()
	}
	limits := DifficultySettings[e.difficulty]
	if limits.MoveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limits.MoveTime)
		defer cancel()
	}
	return e.searcher.ChooseMove(ctx, p, moves)
}
