package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

func TestRenderDimensions(t *testing.T) {
	r, err := New(40)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	img := r.Render(board.New())
	want := 8*40 + 2*margin
	if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), want, want)
	}
}

func TestRenderSquareColors(t *testing.T) {
	r, err := New(40)
	if err != nil {
		t.Fatal(err)
	}

	// Render an empty middle of the board so square colors are unobscured.
	pos, err := board.ParseFEN("k7/8/8/8/8/8/8/7K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	img := r.Render(pos)

	// d4 is a dark square, e4 a light one.
	d4 := img.RGBAAt(margin+3*40+20, margin+(7-3)*40+20)
	if d4 != darkSquare {
		t.Errorf("d4 pixel = %v, want %v", d4, darkSquare)
	}
	e4 := img.RGBAAt(margin+4*40+20, margin+(7-3)*40+20)
	if e4 != lightSquare {
		t.Errorf("e4 pixel = %v, want %v", e4, lightSquare)
	}
}

func TestRenderDrawsPieces(t *testing.T) {
	r, err := New(40)
	if err != nil {
		t.Fatal(err)
	}

	empty := r.Render(mustPos(t, "k7/8/8/8/8/8/8/7K w - - 0 1"))
	occupied := r.Render(mustPos(t, "k7/8/8/8/4Q3/8/8/7K w - - 0 1"))

	// The queen on e4 must change at least one pixel of its square.
	changed := false
	for dy := 0; dy < 40 && !changed; dy++ {
		for dx := 0; dx < 40; dx++ {
			x, y := margin+4*40+dx, margin+(7-3)*40+dy
			if empty.RGBAAt(x, y) != occupied.RGBAAt(x, y) {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("rendering a piece left its square unchanged")
	}
}

func TestWritePNG(t *testing.T) {
	r, err := New(30)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "board.png")
	if err := r.WritePNG(board.New(), path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("written file is not a PNG: %v", err)
	}
	want := 8*30 + 2*margin
	if cfg.Width != want || cfg.Height != want {
		t.Errorf("PNG is %dx%d, want %dx%d", cfg.Width, cfg.Height, want, want)
	}
}

func mustPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}
