package render

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// renderScale is how much larger than the target size sprites are
// rasterized before being scaled down, for smooth edges.
const renderScale = 3

// pieceShapes holds the SVG body of each piece type on a 45x45 canvas.
var pieceShapes = [6]string{
	board.Pawn: `<circle cx="22.5" cy="14" r="5"/>
<path d="M 17 21 L 28 21 L 30 35 L 15 35 Z"/>
<rect x="11" y="35" width="23" height="5"/>`,
	board.Knight: `<path d="M 14 36 L 31 36 L 31 27 L 29 18 L 24 10 L 21 8 L 20 11 L 16 14 L 11 21 L 12 24 L 16 23 L 19 21 L 18 26 L 14 30 Z"/>
<circle cx="20" cy="15" r="1.3" fill="{detail}" stroke="none"/>
<rect x="11" y="36" width="23" height="4"/>`,
	board.Bishop: `<circle cx="22.5" cy="8" r="2.5"/>
<path d="M 22.5 11 C 15 16 15 24 18 29 L 27 29 C 30 24 30 16 22.5 11 Z"/>
<rect x="16" y="29" width="13" height="3"/>
<rect x="12" y="32" width="21" height="5"/>`,
	board.Rook: `<path d="M 11 9 L 15 9 L 15 12 L 20 12 L 20 9 L 25 9 L 25 12 L 30 12 L 30 9 L 34 9 L 34 17 L 30 20 L 30 31 L 15 31 L 15 20 L 11 17 Z"/>
<rect x="9" y="31" width="27" height="6"/>`,
	board.Queen: `<path d="M 9 14 L 14 26 L 16 13 L 20 25 L 22.5 11 L 25 25 L 29 13 L 31 26 L 36 14 L 32 33 L 13 33 Z"/>
<circle cx="9" cy="13" r="2"/>
<circle cx="16" cy="12" r="2"/>
<circle cx="22.5" cy="10" r="2"/>
<circle cx="29" cy="12" r="2"/>
<circle cx="36" cy="13" r="2"/>
<rect x="12" y="33" width="21" height="4"/>`,
	board.King: `<path d="M 21 4 L 24 4 L 24 7 L 27 7 L 27 10 L 24 10 L 24 14 L 21 14 L 21 10 L 18 10 L 18 7 L 21 7 Z"/>
<path d="M 22.5 14 C 30 14 36 18 34 25 L 31 32 L 14 32 L 11 25 C 9 18 15 14 22.5 14 Z"/>
<rect x="12" y="32" width="21" height="5"/>`,
}

// pieceColors are fill, outline and detail colors per side.
var pieceColors = [2][3]string{
	board.White: {"#ffffff", "#000000", "#000000"},
	board.Black: {"#1f1f1f", "#000000", "#ffffff"},
}

// PieceSVG returns the SVG document for a piece.
func PieceSVG(p board.Piece) []byte {
	if p == board.NoPiece {
		return nil
	}
	c := pieceColors[p.Color()]
	body := strings.ReplaceAll(pieceShapes[p.Type()], "{detail}", c[2])

	var buf bytes.Buffer
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">`)
	fmt.Fprintf(&buf, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">`, c[0], c[1])
	buf.WriteString(body)
	buf.WriteString(`</g></svg>`)
	return buf.Bytes()
}

// SpriteSet holds piece images rasterized for one square size.
type SpriteSet struct {
	pieces map[board.Piece]*image.RGBA
	size   int
}

// NewSpriteSet rasterizes all twelve pieces at the given size.
func NewSpriteSet(size int) *SpriteSet {
	ss := &SpriteSet{
		pieces: make(map[board.Piece]*image.RGBA),
		size:   size,
	}
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			img, err := rasterize(PieceSVG(p), size)
			if err != nil {
				log.Printf("[RENDER] Failed to rasterize %v %v: %v", c, pt, err)
				continue
			}
			ss.pieces[p] = img
		}
	}
	return ss
}

// Piece returns the sprite for p, nil if none.
func (ss *SpriteSet) Piece(p board.Piece) *image.RGBA {
	return ss.pieces[p]
}

// Size returns the edge length of the sprites.
func (ss *SpriteSet) Size() int {
	return ss.size
}

// rasterize renders an SVG document at renderScale times size and scales
// it down to size.
func rasterize(svg []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}

	big := size * renderScale
	icon.SetTarget(0, 0, float64(big), float64(big))

	hi := image.NewRGBA(image.Rect(0, 0, big, big))
	scanner := rasterx.NewScannerGV(big, big, hi, hi.Bounds())
	raster := rasterx.NewDasher(big, big, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(out, out.Bounds(), hi, hi.Bounds(), draw.Over, nil)
	return out, nil
}
