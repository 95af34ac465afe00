package board

// Direction and offset tables for the attack oracle and move generation.
// All walking is done in file/rank coordinates so board edges never wrap.

type delta struct {
	file, rank int
}

var (
	knightOffsets = [8]delta{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	kingOffsets = [8]delta{
		{0, 1}, {1, 1}, {1, 0}, {1, -1},
		{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
	}
	bishopDirs = [4]delta{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirs   = [4]delta{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// pawnAdvance returns the rank direction pawns of the given color move in.
func pawnAdvance(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// offsetSquare returns the square at the given file/rank offset from sq, or
// NoSquare if it falls off the board.
func offsetSquare(sq Square, d delta) Square {
	file := sq.File() + d.file
	rank := sq.Rank() + d.rank
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// IsSquareAttacked reports whether the given square is attacked by any piece
// of the given color. Occupancy is read directly from the board, so pinned
// attackers still count, which is what check detection needs.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	// Pawns attack diagonally forward, so look one rank back from sq.
	adv := pawnAdvance(by)
	pawn := NewPiece(Pawn, by)
	for _, df := range [2]int{-1, 1} {
		if from := offsetSquare(sq, delta{df, -adv}); from != NoSquare && p.Board[from] == pawn {
			return true
		}
	}

	knight := NewPiece(Knight, by)
	for _, d := range knightOffsets {
		if from := offsetSquare(sq, d); from != NoSquare && p.Board[from] == knight {
			return true
		}
	}

	king := NewPiece(King, by)
	for _, d := range kingOffsets {
		if from := offsetSquare(sq, d); from != NoSquare && p.Board[from] == king {
			return true
		}
	}

	if p.slidingAttack(sq, by, bishopDirs[:], Bishop) {
		return true
	}
	return p.slidingAttack(sq, by, rookDirs[:], Rook)
}

// slidingAttack walks each ray from sq and reports whether the first occupied
// square holds an enemy slider of the given type or a queen.
func (p *Position) slidingAttack(sq Square, by Color, dirs []delta, slider PieceType) bool {
	for _, d := range dirs {
		for cur := offsetSquare(sq, d); cur != NoSquare; cur = offsetSquare(cur, d) {
			piece := p.Board[cur]
			if piece == NoPiece {
				continue
			}
			if piece.Color() == by {
				pt := piece.Type()
				if pt == slider || pt == Queen {
					return true
				}
			}
			break
		}
	}
	return false
}
