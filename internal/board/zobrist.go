package board

// Zobrist keys for position fingerprinting. The fingerprint identifies piece
// placement plus side to move, the identity used for threefold-repetition
// counting and the transposition cache. Castling rights and the en passant
// target are not part of it.
// Keys come from a PRNG with a fixed seed for reproducibility.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x6B1A57F0D00D1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	zobristSideToMove = rng.next()
}

// zobristFor returns the key for a piece on a square, or 0 for NoPiece.
func zobristFor(p Piece, sq Square) uint64 {
	if p >= NoPiece {
		return 0
	}
	return zobristPiece[p.Color()][p.Type()][sq]
}
