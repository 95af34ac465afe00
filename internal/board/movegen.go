package board

// PseudoLegalMoves generates all pseudo-legal moves for the side to move,
// castling excluded. Castling lives in the legality layer because its
// conditions need the attack oracle anyway.
func (p *Position) PseudoLegalMoves(list *MoveList) {
	us := p.SideToMove
	for sq := A1; sq <= H8; sq++ {
		piece := p.Board[sq]
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		switch piece.Type() {
		case Pawn:
			p.pawnMoves(sq, list)
		case Knight:
			p.leaperMoves(sq, knightOffsets[:], list)
		case Bishop:
			p.sliderMoves(sq, bishopDirs[:], list)
		case Rook:
			p.sliderMoves(sq, rookDirs[:], list)
		case Queen:
			p.sliderMoves(sq, bishopDirs[:], list)
			p.sliderMoves(sq, rookDirs[:], list)
		case King:
			p.leaperMoves(sq, kingOffsets[:], list)
		}
	}
}

// pawnMoves generates pushes, captures, and en passant for one pawn.
// A move to the back rank is a promotion by virtue of its destination; the
// piece choice is attached by the caller before the move is committed.
func (p *Position) pawnMoves(from Square, list *MoveList) {
	us := p.Board[from].Color()
	adv := pawnAdvance(us)

	if to := offsetSquare(from, delta{0, adv}); to != NoSquare && p.Board[to] == NoPiece {
		list.Add(NewMove(p, from, to))
		startRank := 1
		if us == Black {
			startRank = 6
		}
		if from.Rank() == startRank {
			if to2 := offsetSquare(from, delta{0, 2 * adv}); to2 != NoSquare && p.Board[to2] == NoPiece {
				list.Add(NewMove(p, from, to2))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := offsetSquare(from, delta{df, adv})
		if to == NoSquare {
			continue
		}
		if target := p.Board[to]; target != NoPiece && target.Color() == us.Other() {
			list.Add(NewMove(p, from, to))
		} else if to == p.EnPassant {
			list.Add(NewEnPassant(p, from, to))
		}
	}
}

func (p *Position) leaperMoves(from Square, offsets []delta, list *MoveList) {
	us := p.Board[from].Color()
	for _, d := range offsets {
		to := offsetSquare(from, d)
		if to == NoSquare {
			continue
		}
		if p.Board[to] == NoPiece || p.Board[to].Color() != us {
			list.Add(NewMove(p, from, to))
		}
	}
}

func (p *Position) sliderMoves(from Square, dirs []delta, list *MoveList) {
	us := p.Board[from].Color()
	for _, d := range dirs {
		for to := offsetSquare(from, d); to != NoSquare; to = offsetSquare(to, d) {
			target := p.Board[to]
			if target == NoPiece {
				list.Add(NewMove(p, from, to))
				continue
			}
			if target.Color() != us {
				list.Add(NewMove(p, from, to))
			}
			break
		}
	}
}

// castleMoves adds the legal castling moves for the side to move. The king
// must stand on its home square, not be in check, the squares between king
// and rook must be empty, and the squares the king crosses must not be
// attacked. The queenside b-file square only needs to be empty; the king
// never crosses it.
func (p *Position) castleMoves(list *MoveList) {
	us := p.SideToMove
	them := us.Other()
	home := E1
	if us == Black {
		home = E8
	}
	if p.KingSquare[us] != home || p.IsSquareAttacked(home, them) {
		return
	}

	// Rights tracking keeps CastlingRights honest for positions reached by
	// play, but a hand-written FEN can claim a right without the rook.
	rank := home.Rank()
	rook := NewPiece(Rook, us)
	if p.CastlingRights.CanCastle(us, true) && p.Board[NewSquare(7, rank)] == rook {
		f := NewSquare(5, rank)
		g := NewSquare(6, rank)
		if p.Board[f] == NoPiece && p.Board[g] == NoPiece &&
			!p.IsSquareAttacked(f, them) && !p.IsSquareAttacked(g, them) {
			list.Add(NewCastle(p, home, g))
		}
	}
	if p.CastlingRights.CanCastle(us, false) && p.Board[NewSquare(0, rank)] == rook {
		b := NewSquare(1, rank)
		c := NewSquare(2, rank)
		d := NewSquare(3, rank)
		if p.Board[b] == NoPiece && p.Board[c] == NoPiece && p.Board[d] == NoPiece &&
			!p.IsSquareAttacked(c, them) && !p.IsSquareAttacked(d, them) {
			list.Add(NewCastle(p, home, c))
		}
	}
}

// LegalMoves generates all legal moves for the side to move and recomputes
// the Checkmate and Draw flags. With no legal moves, check means checkmate
// and no check means stalemate. With moves available the position can still
// be drawn by threefold repetition, the fifty-move rule, or insufficient
// material, in that order of checking.
func (p *Position) LegalMoves(list *MoveList) {
	p.Checkmate = false
	p.Draw = false

	var pseudo MoveList
	p.PseudoLegalMoves(&pseudo)

	us := p.SideToMove
	them := us.Other()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		u := p.MakeMove(m)
		if !p.IsSquareAttacked(p.KingSquare[us], them) {
			list.Add(m)
		}
		p.UnmakeMove(m, u)
	}

	// Castle moves are legal by construction.
	p.castleMoves(list)

	if list.Len() == 0 {
		if p.IsSquareAttacked(p.KingSquare[us], them) {
			p.Checkmate = true
		} else {
			p.Draw = true
		}
		return
	}

	if p.Counts[p.Hash] >= 3 || p.HalfMoveClock >= 100 || p.InsufficientMaterial() {
		p.Draw = true
	}
}

// InsufficientMaterial reports whether neither side can possibly deliver
// mate: bare kings, a single minor piece, or one bishop each with both
// bishops on same-colored squares.
func (p *Position) InsufficientMaterial() bool {
	bishopSq := [2]Square{NoSquare, NoSquare}
	knights, bishops := 0, 0
	for sq := A1; sq <= H8; sq++ {
		piece := p.Board[sq]
		switch piece.Type() {
		case NoPieceType, King:
		case Knight:
			knights++
		case Bishop:
			bishops++
			bishopSq[piece.Color()] = sq
		default:
			return false
		}
	}
	switch {
	case knights+bishops <= 1:
		return true
	case knights == 0 && bishops == 2 &&
		bishopSq[White] != NoSquare && bishopSq[Black] != NoSquare:
		return squareShade(bishopSq[White]) == squareShade(bishopSq[Black])
	}
	return false
}

func squareShade(sq Square) int {
	return (sq.File() + sq.Rank()) & 1
}
