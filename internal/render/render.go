// Package render rasterizes board positions to images, used by the replay
// tooling to export snapshots of saved games.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/DoanQuocKien/ChessByDQK/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// Board colors
var (
	lightSquare = color.RGBA{R: 0xF0, G: 0xD9, B: 0xB5, A: 0xFF}
	darkSquare  = color.RGBA{R: 0xB5, G: 0x88, B: 0x63, A: 0xFF}
	labelInk    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	marginFill  = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
)

// pieceFiles maps pieces to their asset file paths.
var pieceFiles = map[board.Piece]string{
	board.WhitePawn:   "assets/pieces/wP.svg",
	board.WhiteKnight: "assets/pieces/wN.svg",
	board.WhiteBishop: "assets/pieces/wB.svg",
	board.WhiteRook:   "assets/pieces/wR.svg",
	board.WhiteQueen:  "assets/pieces/wQ.svg",
	board.WhiteKing:   "assets/pieces/wK.svg",
	board.BlackPawn:   "assets/pieces/bP.svg",
	board.BlackKnight: "assets/pieces/bN.svg",
	board.BlackBishop: "assets/pieces/bB.svg",
	board.BlackRook:   "assets/pieces/bR.svg",
	board.BlackQueen:  "assets/pieces/bQ.svg",
	board.BlackKing:   "assets/pieces/bK.svg",
}

// margin leaves room for the file and rank labels.
const margin = 20

// Renderer draws positions with pre-rasterized piece sprites. Create once,
// render many.
type Renderer struct {
	sprites map[board.Piece]*image.RGBA
	square  int
}

// New creates a renderer with squares of the given pixel size.
func New(squareSize int) (*Renderer, error) {
	r := &Renderer{
		sprites: make(map[board.Piece]*image.RGBA, len(pieceFiles)),
		square:  squareSize,
	}

	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading piece asset %s: %w", path, err)
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing SVG %s: %w", path, err)
		}
		icon.SetTarget(0, 0, float64(squareSize), float64(squareSize))

		rgba := image.NewRGBA(image.Rect(0, 0, squareSize, squareSize))
		scanner := rasterx.NewScannerGV(squareSize, squareSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(squareSize, squareSize, scanner)
		icon.Draw(raster, 1.0)

		r.sprites[piece] = rgba
	}

	return r, nil
}

// Render draws the position from white's point of view: rank 8 at the top,
// file a on the left, with coordinate labels in the margins.
func (r *Renderer) Render(p *board.Position) *image.RGBA {
	boardPx := 8 * r.square
	img := image.NewRGBA(image.Rect(0, 0, boardPx+2*margin, boardPx+2*margin))
	draw.Draw(img, img.Bounds(), image.NewUniform(marginFill), image.Point{}, draw.Src)

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			x := margin + file*r.square
			y := margin + (7-rank)*r.square
			rect := image.Rect(x, y, x+r.square, y+r.square)

			fill := lightSquare
			if (file+rank)%2 == 0 {
				fill = darkSquare
			}
			draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

			if piece := p.Board[board.NewSquare(file, rank)]; piece != board.NoPiece {
				draw.Draw(img, rect, r.sprites[piece], image.Point{}, draw.Over)
			}
		}
	}

	r.drawLabels(img)
	return img
}

// drawLabels writes the file letters below the board and the rank digits to
// its left.
func (r *Renderer) drawLabels(img *image.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelInk),
		Face: basicfont.Face7x13,
	}

	boardPx := 8 * r.square
	for file := 0; file < 8; file++ {
		d.Dot = fixed.P(margin+file*r.square+r.square/2-3, margin+boardPx+14)
		d.DrawString(string(rune('a' + file)))
	}
	for rank := 0; rank < 8; rank++ {
		d.Dot = fixed.P(margin/2-3, margin+(7-rank)*r.square+r.square/2+4)
		d.DrawString(string(rune('1' + rank)))
	}
}

// WritePNG renders the position and writes it to the given file.
func (r *Renderer) WritePNG(p *board.Position, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, r.Render(p)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
