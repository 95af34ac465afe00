package engine

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

// Searcher runs negamax with alpha-beta pruning over a shared transposition
// table. The legal moves of each position are computed by the caller and
// threaded into the recursion, so terminal flags are always in sync with the
// move list being searched.
type Searcher struct {
	Depth    int     // search depth in plies
	Breadth  int     // ordered moves searched per interior node, 0 = all
	Parallel bool    // score root moves concurrently on position copies
	Weights  Weights // evaluation weights

	tt   *TranspositionTable
	stop atomic.Bool
	rng  *rand.Rand
}

// NewSearcher creates a searcher with the given depth and transposition
// table size.
func NewSearcher(depth, tableMB int) *Searcher {
	return &Searcher{
		Depth:   depth,
		Breadth: DefaultBreadth,
		Weights: DefaultWeights(),
		tt:      NewTranspositionTable(tableMB),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Table exposes the transposition table for statistics and clearing.
func (s *Searcher) Table() *TranspositionTable {
	return s.tt
}

// ChooseMove searches the given position and returns the chosen move with
// its score from the mover's perspective. The move list must be the legal
// moves of the position; an empty list returns NoMove, which coincides with
// a terminal position the caller should already have detected.
//
// Cancelling the context stops the search; the best move fully scored so
// far is returned, falling back to a random legal move if none finished.
func (s *Searcher) ChooseMove(ctx context.Context, p *board.Position, moves *board.MoveList) (board.Move, int) {
	if moves.Len() == 0 {
		return board.NoMove, 0
	}

	s.tt.NewSearch()
	s.stop.Store(false)

	if ctx != nil && ctx.Done() != nil {
		finished := make(chan struct{})
		defer close(finished)
		go func() {
			select {
			case <-ctx.Done():
				s.stop.Store(true)
			case <-finished:
			}
		}()
	}

	sign := 1
	if p.SideToMove == board.Black {
		sign = -1
	}

	// Order a copy so the caller's list stays intact. The root is never
	// truncated; every legal move gets a score.
	ordered := *moves
	OrderMoves(&ordered, s.hashMove(p), 0)

	if s.Parallel && ordered.Len() > 1 {
		return s.searchRootParallel(p, &ordered, sign)
	}
	return s.searchRoot(p, &ordered, sign)
}

func (s *Searcher) searchRoot(p *board.Position, moves *board.MoveList, sign int) (board.Move, int) {
	best := -MateScore - 1
	bestMove := board.NoMove
	alpha, beta := -MateScore, MateScore
	scored := false

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		u := p.MakeMove(m)
		var next board.MoveList
		p.LegalMoves(&next)
		score := -s.negamax(p, &next, s.Depth-1, -beta, -alpha, -sign)
		p.UnmakeMove(m, u)

		// Once stopped, scores are unreliable; keep what finished.
		if s.stop.Load() && scored {
			break
		}
		scored = true
		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
	}

	if bestMove == board.NoMove {
		return s.randomMove(moves), 0
	}
	if !s.stop.Load() {
		s.tt.Store(p.Hash, s.Depth, best, TTExact, bestMove)
	}
	return bestMove, best
}

// searchRootParallel scores every root move concurrently, each worker on its
// own deep copy of the position with a full alpha-beta window. Workers share
// the transposition table. Ties resolve to the earlier move in the ordered
// list, so results stay deterministic up to table timing effects.
func (s *Searcher) searchRootParallel(p *board.Position, moves *board.MoveList, sign int) (board.Move, int) {
	scores := make([]int, moves.Len())
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i := 0; i < moves.Len(); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cp := p.Copy()
			cp.MakeMove(moves.Get(i))
			var next board.MoveList
			cp.LegalMoves(&next)
			scores[i] = -s.negamax(cp, &next, s.Depth-1, -MateScore, MateScore, -sign)
		}(i)
	}
	wg.Wait()

	best := scores[0]
	bestMove := moves.Get(0)
	for i := 1; i < moves.Len(); i++ {
		if scores[i] > best {
			best = scores[i]
			bestMove = moves.Get(i)
		}
	}
	if !s.stop.Load() {
		s.tt.Store(p.Hash, s.Depth, best, TTExact, bestMove)
	}
	return bestMove, best
}

// negamax evaluates the position to the given depth. moves is the legal move
// list of p, already computed by the caller; sign is +1 when white is to
// move. Scores are from the perspective of the side to move.
func (s *Searcher) negamax(p *board.Position, moves *board.MoveList, depth, alpha, beta, sign int) int {
	// Terminal and leaf positions are evaluated directly, never from the
	// table: the fingerprint does not distinguish path-dependent draws.
	if depth <= 0 || moves.Len() == 0 || p.Checkmate || p.Draw {
		return sign * Evaluate(p, moves.Len(), s.Weights)
	}

	if s.stop.Load() {
		return sign * Evaluate(p, moves.Len(), s.Weights)
	}

	alphaOrig := alpha
	hashMove := board.NoMove
	if entry, ok := s.tt.Probe(p.Hash); ok {
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
		hashMove = entry.BestMove
	}

	OrderMoves(moves, hashMove, s.Breadth)

	best := -MateScore - 1
	bestMove := board.NoMove
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		u := p.MakeMove(m)
		var next board.MoveList
		p.LegalMoves(&next)
		score := -s.negamax(p, &next, depth-1, -beta, -alpha, -sign)
		p.UnmakeMove(m, u)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	// A stopped frame may have scored children with bare static evals, so
	// its result must not be cached as a full-depth bound.
	if !s.stop.Load() {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpperBound
		} else if best >= beta {
			flag = TTLowerBound
		}
		s.tt.Store(p.Hash, depth, best, flag, bestMove)
	}

	return best
}

func (s *Searcher) hashMove(p *board.Position) board.Move {
	if entry, ok := s.tt.Probe(p.Hash); ok {
		return entry.BestMove
	}
	return board.NoMove
}

// randomMove picks a uniformly random legal move.
func (s *Searcher) randomMove(moves *board.MoveList) board.Move {
	if moves.Len() == 0 {
		return board.NoMove
	}
	return moves.Get(s.rng.Intn(moves.Len()))
}
