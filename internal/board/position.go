package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position represents a complete chess position: the 8x8 board, side to
// move, cached king squares, castling rights, the one-ply en passant target,
// the half-move clock, and the repetition fingerprint counts.
//
// A Position is mutated in place by MakeMove/UnmakeMove and is not safe for
// concurrent use; parallel search branches must work on a Copy.
type Position struct {
	// Board holds the occupant of each square, indexed by Square.
	Board [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square for en passant, NoSquare if none
	HalfMoveClock  int    // plies since last pawn move or capture
	FullMoveNumber int    // full move counter, starts at 1

	// Hash is the position fingerprint: piece placement plus side to move.
	Hash uint64

	// KingSquare caches the king location per color. Invariant: always
	// equal to the actual king square on Board.
	KingSquare [2]Square

	// Counts maps fingerprints to occurrence counts for threefold
	// repetition. Maintained incrementally by MakeMove/UnmakeMove.
	Counts map[uint64]int

	// Terminal flags, recomputed by every LegalMoves call and cleared
	// unconditionally by UnmakeMove.
	Checkmate bool
	Draw      bool
}

// New creates the standard starting position.
func New() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy creates a deep copy of the position, including the repetition counts.
func (p *Position) Copy() *Position {
	cp := *p
	cp.Counts = make(map[uint64]int, len(p.Counts))
	for k, v := range p.Counts {
		cp.Counts[k] = v
	}
	return &cp
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq] == NoPiece
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

// Undo captures the state MakeMove destroys, so UnmakeMove can restore the
// position exactly without relying on implicit history-stack ordering.
type Undo struct {
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
}

// MakeMove applies a move to the position and returns the undo token.
// The move must have been generated against this position; applying an
// arbitrary move is a precondition violation, not a recoverable error.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		Captured:       m.Captured,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}

	us := m.Piece.Color()
	from, to := m.From, m.To

	p.Board[from] = NoPiece
	p.Hash ^= zobristFor(m.Piece, from)

	// Remove the captured piece. The en passant victim never sits on the
	// destination square.
	if m.EnPassant {
		capSq := NewSquare(to.File(), from.Rank())
		p.Board[capSq] = NoPiece
		p.Hash ^= zobristFor(m.Captured, capSq)
	} else if m.Captured != NoPiece {
		p.Hash ^= zobristFor(m.Captured, to)
	}

	placed := m.Piece
	if m.IsPromotion() {
		placed = NewPiece(m.PromotionOrQueen(), us)
	}
	p.Board[to] = placed
	p.Hash ^= zobristFor(placed, to)

	if m.Piece.Type() == King {
		p.KingSquare[us] = to
	}

	if m.Castle {
		rookFrom, rookTo := castleRookSquares(from, to)
		rook := p.Board[rookFrom]
		p.Board[rookFrom] = NoPiece
		p.Board[rookTo] = rook
		p.Hash ^= zobristFor(rook, rookFrom) ^ zobristFor(rook, rookTo)
	}

	// The en passant target lives for exactly one ply: set on a two-square
	// pawn advance, cleared otherwise.
	if m.Piece.Type() == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	} else {
		p.EnPassant = NoSquare
	}

	p.updateCastlingRights(m)

	if m.Piece.Type() == Pawn || m.Captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = us.Other()
	p.Hash ^= zobristSideToMove

	// Count the post-move fingerprint for threefold repetition.
	p.Counts[p.Hash]++

	return undo
}

// updateCastlingRights clears rights when the king or a rook leaves its home
// square, and when a rook is captured on its home square before ever moving.
func (p *Position) updateCastlingRights(m Move) {
	if m.Piece.Type() == King {
		if m.Piece.Color() == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}

	if m.From == A1 || m.To == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
}

// UnmakeMove undoes a move using the stored undo token, restoring the
// position byte-for-byte, including the repetition counts.
func (p *Position) UnmakeMove(m Move, u Undo) {
	// Drop the post-move fingerprint before anything else mutates.
	if n := p.Counts[p.Hash]; n <= 1 {
		delete(p.Counts, p.Hash)
	} else {
		p.Counts[p.Hash] = n - 1
	}

	us := m.Piece.Color()
	from, to := m.From, m.To

	p.Board[from] = m.Piece
	if m.EnPassant {
		p.Board[to] = NoPiece
		p.Board[NewSquare(to.File(), from.Rank())] = m.Captured
	} else {
		p.Board[to] = m.Captured
	}

	if m.Piece.Type() == King {
		p.KingSquare[us] = from
	}

	if m.Castle {
		rookFrom, rookTo := castleRookSquares(from, to)
		rook := p.Board[rookTo]
		p.Board[rookTo] = NoPiece
		p.Board[rookFrom] = rook
	}

	if us == Black {
		p.FullMoveNumber--
	}
	p.SideToMove = us

	p.CastlingRights = u.CastlingRights
	p.EnPassant = u.EnPassant
	p.HalfMoveClock = u.HalfMoveClock
	p.Hash = u.Hash

	// Terminal flags are derived state and never survive an unmake.
	p.Checkmate = false
	p.Draw = false
}

// castleRookSquares returns the rook's from/to squares for a castling move
// described by the king's movement.
func castleRookSquares(kingFrom, kingTo Square) (Square, Square) {
	if kingTo > kingFrom { // kingside
		return NewSquare(7, kingFrom.Rank()), NewSquare(5, kingFrom.Rank())
	}
	return NewSquare(0, kingFrom.Rank()), NewSquare(3, kingFrom.Rank())
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Board[NewSquare(file, rank)]
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
