package engine

import "github.com/DoanQuocKien/ChessByDQK/internal/board"

// MateScore is the absolute value assigned to checkmate. It dominates every
// material and positional term combined.
const MateScore = 1_000_000

// DrawScore is the value assigned to any drawn position.
const DrawScore = 0

// Weights collects the tunable evaluation terms, all in centipawns.
type Weights struct {
	PieceSquare     int // multiplier per piece-square table point
	KingCenter      int // penalty for a king in the central 4x4 block
	KingShield      int // bonus per pawn sheltering the king diagonally
	CenterControl   int // bonus per occupied central square
	DoubledPawn     int // penalty per extra pawn on a file
	ConnectedPawn   int // bonus per adjacent pawn neighbor
	MobilityPerMove int // bonus per legal move for the side to move
}

// DefaultWeights are the standard evaluation weights.
func DefaultWeights() Weights {
	return Weights{
		PieceSquare:     5,
		KingCenter:      200,
		KingShield:      200,
		CenterControl:   100,
		DoubledPawn:     20,
		ConnectedPawn:   10,
		MobilityPerMove: 5,
	}
}

// Piece-square tables, indexed with rank 8 at the top so the literals read
// like a board diagram. Knights, bishops, rooks and queens share one table
// per type for both colors; pawns get one table per color.
var (
	knightTable = [64]int{
		1, 1, 1, 1, 1, 1, 1, 1,
		1, 2, 2, 2, 2, 2, 2, 1,
		1, 2, 3, 3, 3, 3, 2, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 2, 3, 3, 3, 3, 2, 1,
		1, 2, 2, 2, 2, 2, 2, 1,
		1, 1, 1, 1, 1, 1, 1, 1,
	}
	bishopTable = [64]int{
		4, 3, 2, 1, 1, 2, 3, 4,
		3, 4, 3, 2, 2, 3, 4, 3,
		2, 3, 4, 3, 3, 4, 3, 2,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		2, 3, 4, 3, 3, 4, 3, 2,
		3, 4, 3, 2, 2, 3, 4, 3,
		4, 3, 2, 1, 1, 2, 3, 4,
	}
	rookTable = [64]int{
		4, 3, 4, 4, 4, 4, 3, 4,
		4, 4, 4, 4, 4, 4, 4, 4,
		1, 1, 2, 3, 3, 2, 1, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 1, 2, 3, 3, 2, 1, 1,
		4, 4, 4, 4, 4, 4, 4, 4,
		4, 3, 4, 4, 4, 4, 3, 4,
	}
	queenTable = [64]int{
		1, 1, 1, 3, 1, 1, 1, 1,
		1, 2, 3, 3, 3, 1, 1, 1,
		1, 4, 3, 3, 3, 4, 2, 1,
		1, 2, 3, 3, 3, 2, 2, 1,
		1, 2, 3, 3, 3, 2, 2, 1,
		1, 4, 3, 3, 3, 4, 2, 1,
		1, 2, 3, 3, 3, 1, 1, 1,
		1, 1, 1, 3, 1, 1, 1, 1,
	}
	whitePawnTable = [64]int{
		8, 8, 8, 8, 8, 8, 8, 8,
		8, 8, 8, 8, 8, 8, 8, 8,
		5, 6, 6, 7, 7, 6, 6, 5,
		2, 3, 3, 5, 5, 3, 3, 2,
		1, 2, 3, 4, 4, 3, 2, 1,
		1, 1, 2, 3, 3, 2, 1, 1,
		1, 1, 1, 0, 0, 1, 1, 1,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	blackPawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		1, 1, 1, 0, 0, 1, 1, 1,
		1, 1, 2, 3, 3, 2, 1, 1,
		1, 2, 3, 4, 4, 3, 2, 1,
		2, 3, 3, 5, 5, 3, 3, 2,
		5, 6, 6, 7, 7, 6, 6, 5,
		8, 8, 8, 8, 8, 8, 8, 8,
		8, 8, 8, 8, 8, 8, 8, 8,
	}
)

var centerSquares = [4]board.Square{board.D4, board.E4, board.D5, board.E5}

// tableIndex converts a square to an index into the tables above, whose
// rows run from rank 8 down to rank 1.
func tableIndex(sq board.Square) int {
	return int(sq.Mirror())
}

// pstValue returns the piece-square table value for a piece on a square.
// Kings have no table.
func pstValue(p board.Piece, sq board.Square) int {
	switch p.Type() {
	case board.Pawn:
		if p.Color() == board.White {
			return whitePawnTable[tableIndex(sq)]
		}
		return blackPawnTable[tableIndex(sq)]
	case board.Knight:
		return knightTable[tableIndex(sq)]
	case board.Bishop:
		return bishopTable[tableIndex(sq)]
	case board.Rook:
		return rookTable[tableIndex(sq)]
	case board.Queen:
		return queenTable[tableIndex(sq)]
	default:
		return 0
	}
}

// Evaluate scores the position from white's perspective in centipawns.
// moveCount is the legal move count of the side to move in this position,
// which the caller has already computed; it feeds the mobility term and
// terminal detection comes from the flags that same computation set.
func Evaluate(p *board.Position, moveCount int, w Weights) int {
	if p.Checkmate {
		if p.SideToMove == board.White {
			return -MateScore
		}
		return MateScore
	}
	if p.Draw {
		return DrawScore
	}

	score := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := p.Board[sq]
		if piece == board.NoPiece {
			continue
		}
		v := piece.Value() + w.PieceSquare*pstValue(piece, sq)
		if piece.Color() == board.White {
			score += v
		} else {
			score -= v
		}
	}

	score += kingSafety(p, board.White, w)
	score -= kingSafety(p, board.Black, w)

	for _, sq := range centerSquares {
		switch p.Board[sq].Color() {
		case board.White:
			score += w.CenterControl
		case board.Black:
			score -= w.CenterControl
		}
	}

	score += pawnStructure(p, w)

	// Mobility is only known for the side to move; the opponent's moves
	// have not been generated in this position.
	if p.SideToMove == board.White {
		score += w.MobilityPerMove * moveCount
	} else {
		score -= w.MobilityPerMove * moveCount
	}

	return score
}

// kingSafety penalizes a centralized king and rewards pawns sheltering it on
// the forward diagonals. Pawns of either color count as shelter.
func kingSafety(p *board.Position, c board.Color, w Weights) int {
	kingSq := p.KingSquare[c]
	score := 0

	if f, r := kingSq.File(), kingSq.Rank(); f >= 2 && f <= 5 && r >= 2 && r <= 5 {
		score -= w.KingCenter
	}

	adv := 1
	if c == board.Black {
		adv = -1
	}
	shieldRank := kingSq.Rank() + adv
	if shieldRank >= 0 && shieldRank <= 7 {
		for _, df := range [2]int{-1, 1} {
			f := kingSq.File() + df
			if f < 0 || f > 7 {
				continue
			}
			if p.Board[board.NewSquare(f, shieldRank)].Type() == board.Pawn {
				score += w.KingShield
			}
		}
	}

	return score
}

// pawnStructure penalizes doubled pawns and rewards laterally adjacent ones,
// for both sides, white-positive.
func pawnStructure(p *board.Position, w Weights) int {
	score := 0

	for file := 0; file < 8; file++ {
		white, black := 0, 0
		for rank := 0; rank < 8; rank++ {
			switch p.Board[board.NewSquare(file, rank)] {
			case board.WhitePawn:
				white++
			case board.BlackPawn:
				black++
			}
		}
		if white > 1 {
			score -= w.DoubledPawn * (white - 1)
		}
		if black > 1 {
			score += w.DoubledPawn * (black - 1)
		}
	}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[board.NewSquare(file, rank)]
			if piece != board.WhitePawn && piece != board.BlackPawn {
				continue
			}
			for _, df := range [2]int{-1, 1} {
				f := file + df
				if f < 0 || f > 7 {
					continue
				}
				if p.Board[board.NewSquare(f, rank)] == piece {
					if piece == board.WhitePawn {
						score += w.ConnectedPawn
					} else {
						score -= w.ConnectedPawn
					}
				}
			}
		}
	}

	return score
}
