package board

// Move describes a single ply. It is an immutable value constructed against
// the board it was generated from: the moved and captured pieces are resolved
// at construction time. For en passant the captured piece is the pawn that is
// actually removed, which never sits on the destination square.
//
// The only field attached after construction is Promotion, chosen by the
// caller before the move is committed. An unset choice defaults to Queen.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece
	Promotion PieceType
	EnPassant bool
	Castle    bool
}

// NoMove is the sentinel returned when no move is available.
var NoMove = Move{}

// NewMove creates a normal move, capturing whatever occupies the destination.
func NewMove(p *Position, from, to Square) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     p.Board[from],
		Captured:  p.Board[to],
		Promotion: NoPieceType,
	}
}

// NewEnPassant creates an en passant capture. The captured pawn sits beside
// the moving pawn, not on the destination square.
func NewEnPassant(p *Position, from, to Square) Move {
	m := Move{
		From:      from,
		To:        to,
		Piece:     p.Board[from],
		Promotion: NoPieceType,
		EnPassant: true,
	}
	m.Captured = p.Board[NewSquare(to.File(), from.Rank())]
	return m
}

// NewCastle creates a castling move described by the king's movement.
func NewCastle(p *Position, from, to Square) Move {
	return Move{
		From:      from,
		To:        to,
		Piece:     p.Board[from],
		Captured:  NoPiece,
		Promotion: NoPieceType,
		Castle:    true,
	}
}

// ID returns a compact identity key derived from the from/to squares.
func (m Move) ID() int {
	return int(m.From)<<6 | int(m.To)
}

// Equal reports whether two moves describe the same ply. Moved and captured
// pieces follow from the board, so squares and flags suffice.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To &&
		m.EnPassant == o.EnPassant && m.Castle == o.Castle
}

// IsPromotion reports whether the move carries a pawn to the back rank.
func (m Move) IsPromotion() bool {
	if m.Piece.Type() != Pawn {
		return false
	}
	if m.Piece.Color() == White {
		return m.To.Rank() == 7
	}
	return m.To.Rank() == 0
}

// PromotionOrQueen returns the promotion choice, clamped to Queen when the
// choice is unset or not a legal promotion target.
func (m Move) PromotionOrQueen() PieceType {
	switch m.Promotion {
	case Knight, Bishop, Rook, Queen:
		return m.Promotion
	default:
		return Queen
	}
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string("pnbrqk"[m.PromotionOrQueen()])
	}
	return s
}

// MoveList is a fixed-size list of moves to avoid allocations during
// generation. 256 comfortably exceeds the maximum move count of any
// reachable position.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Truncate shortens the list to at most n moves.
func (ml *MoveList) Truncate(n int) {
	if n < ml.count {
		ml.count = n
	}
}

// Find returns the first move matching from/to, or NoMove and false.
func (ml *MoveList) Find(from, to Square) (Move, bool) {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].From == from && ml.moves[i].To == to {
			return ml.moves[i], true
		}
	}
	return NoMove, false
}

// Contains returns true if the list contains a move equal to m.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].Equal(m) {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
