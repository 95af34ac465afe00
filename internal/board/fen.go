package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position. The returned position starts
// a fresh repetition history: its own fingerprint is counted once.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("invalid FEN: expected at least 4 fields, got %d", len(fields))
	}

	p := &Position{
		EnPassant:  NoSquare,
		KingSquare: [2]Square{NoSquare, NoSquare},
	}
	for i := range p.Board {
		p.Board[i] = NoPiece
	}

	// Field 1: piece placement, rank 8 first.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks, got %d", len(ranks))
	}
	for r, rankStr := range ranks {
		rank := 7 - r
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			if file > 7 {
				return nil, fmt.Errorf("invalid FEN: rank %d overflows", rank+1)
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return nil, fmt.Errorf("invalid FEN: unknown piece %q", c)
			}
			sq := NewSquare(file, rank)
			p.Board[sq] = piece
			if piece.Type() == King {
				p.KingSquare[piece.Color()] = sq
			}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("invalid FEN: rank %d has %d files", rank+1, file)
		}
	}
	if p.KingSquare[White] == NoSquare || p.KingSquare[Black] == NoSquare {
		return nil, fmt.Errorf("invalid FEN: missing king")
	}

	// Field 2: side to move.
	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN: side to move %q", fields[1])
	}

	// Field 3: castling rights.
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				p.CastlingRights |= WhiteKingSideCastle
			case 'Q':
				p.CastlingRights |= WhiteQueenSideCastle
			case 'k':
				p.CastlingRights |= BlackKingSideCastle
			case 'q':
				p.CastlingRights |= BlackQueenSideCastle
			default:
				return nil, fmt.Errorf("invalid FEN: castling rights %q", fields[2])
			}
		}
	}

	// Field 4: en passant target.
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid FEN: en passant %q", fields[3])
		}
		p.EnPassant = sq
	}

	// Fields 5 and 6: clocks, optional.
	p.FullMoveNumber = 1
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid FEN: half-move clock %q", fields[4])
		}
		p.HalfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid FEN: full move number %q", fields[5])
		}
		p.FullMoveNumber = n
	}

	p.Hash = p.ComputeHash()
	p.Counts = map[uint64]int{p.Hash: 1}
	return p, nil
}

// ToFEN returns the FEN string for the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.SideToMove == Black {
		side = "b"
	}

	fmt.Fprintf(&sb, " %s %s %s %d %d",
		side, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}

// ComputeHash calculates the position fingerprint from scratch. MakeMove
// maintains it incrementally; this is the reference for tests and parsing.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		h ^= zobristFor(p.Board[sq], sq)
	}
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
