package board

// Notate produces a human-readable string for a move: castle notation,
// otherwise piece letter (omitted for pawns), origin square, a capture or
// move marker, destination square, and a promotion suffix. Check and mate
// suffixes are the game layer's concern since they need the resulting
// position.
func Notate(m Move) string {
	if m.Castle {
		if m.To.File() > m.From.File() {
			return "O-O"
		}
		return "O-O-O"
	}

	s := ""
	if pt := m.Piece.Type(); pt != Pawn {
		s += string("PNBRQK"[pt])
	}
	s += m.From.String()
	if m.IsCapture() {
		s += "x"
	} else {
		s += "-"
	}
	s += m.To.String()
	if m.IsPromotion() {
		s += "=" + string("PNBRQK"[m.PromotionOrQueen()])
	}
	return s
}
