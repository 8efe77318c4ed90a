// Package render draws chess positions into images.
//
// It has no windowing dependency: the desktop UI uploads the produced
// image to the GPU, and the CLI can write it out as a PNG.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultSquareSize is the edge of one square in pixels.
const DefaultSquareSize = 80

// Theme defines board colors.
type Theme struct {
	LightSquare    color.NRGBA
	DarkSquare     color.NRGBA
	SelectedSquare color.NRGBA
	LegalMoveColor color.NRGBA
	LastMoveColor  color.NRGBA
	HintColor      color.NRGBA
	CheckColor     color.NRGBA
	CoordLight     color.NRGBA
	CoordDark      color.NRGBA
}

// DefaultTheme returns the classic brown board.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.NRGBA{240, 217, 181, 255},
		DarkSquare:     color.NRGBA{181, 136, 99, 255},
		SelectedSquare: color.NRGBA{247, 247, 105, 180},
		LegalMoveColor: color.NRGBA{130, 151, 105, 200},
		LastMoveColor:  color.NRGBA{180, 190, 100, 90},
		HintColor:      color.NRGBA{90, 160, 230, 140},
		CheckColor:     color.NRGBA{255, 100, 100, 180},
		CoordLight:     color.NRGBA{181, 136, 99, 255},
		CoordDark:      color.NRGBA{240, 217, 181, 255},
	}
}

// Highlights is the interaction state drawn on top of the squares.
type Highlights struct {
	Selected board.Square
	Targets  []board.Square
	LastMove board.Move
	Hint     board.Move
	Check    board.Square
}

// NoHighlights returns an empty Highlights.
func NoHighlights() Highlights {
	return Highlights{
		Selected: board.NoSquare,
		LastMove: board.NoMove,
		Hint:     board.NoMove,
		Check:    board.NoSquare,
	}
}

// HighlightsFor derives highlights from a position: the last move, the
// checked king, and the legal destinations of selected if it holds a
// piece of the side to move.
func HighlightsFor(pos *board.Position, selected board.Square) Highlights {
	hl := NoHighlights()
	hl.LastMove = pos.LastMove()
	if pos.InCheck() {
		hl.Check = pos.KingSquare(pos.SideToMove)
	}
	if moves := pos.LegalMovesFrom(selected); len(moves) > 0 {
		hl.Selected = selected
		for _, m := range moves {
			hl.Targets = append(hl.Targets, m.To)
		}
	}
	return hl
}

// Renderer draws positions at a fixed square size.
type Renderer struct {
	theme      *Theme
	sprites    *SpriteSet
	squareSize int
	flipped    bool
	coords     bool
}

// NewRenderer creates a renderer. A non-positive size selects
// DefaultSquareSize.
func NewRenderer(squareSize int) *Renderer {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	return &Renderer{
		theme:      DefaultTheme(),
		sprites:    NewSpriteSet(squareSize),
		squareSize: squareSize,
		coords:     true,
	}
}

// SetTheme replaces the color theme.
func (r *Renderer) SetTheme(t *Theme) { r.theme = t }

// SetFlipped shows the board from Black's side when true.
func (r *Renderer) SetFlipped(flipped bool) { r.flipped = flipped }

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool { return r.flipped }

// SetCoordinates toggles the file and rank labels.
func (r *Renderer) SetCoordinates(on bool) { r.coords = on }

// SquareSize returns the edge of one square in pixels.
func (r *Renderer) SquareSize() int { return r.squareSize }

// Sprites returns the piece images used by the renderer.
func (r *Renderer) Sprites() *SpriteSet { return r.sprites }

// BoardSize returns the edge of the whole board in pixels.
func (r *Renderer) BoardSize() int { return 8 * r.squareSize }

// SquareToScreen returns the top-left pixel of a square.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return file * r.squareSize, rank * r.squareSize
}

// ScreenToSquare returns the square under a pixel, NoSquare outside the
// board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || y < 0 {
		return board.NoSquare
	}
	file, rank := x/r.squareSize, y/r.squareSize
	if file > 7 || rank > 7 {
		return board.NoSquare
	}
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return board.NewSquare(file, rank)
}

// Render draws pos with hl into a new image.
func (r *Renderer) Render(pos *board.Position, hl Highlights) *image.RGBA {
	size := r.BoardSize()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r.Draw(img, pos, hl)
	return img
}

// Draw draws pos with hl into dst, which must be at least BoardSize on
// each side.
func (r *Renderer) Draw(dst *image.RGBA, pos *board.Position, hl Highlights) {
	for sq := board.Square(0); sq < 64; sq++ {
		draw.Draw(dst, r.squareRect(sq), image.NewUniform(r.squareColor(sq)), image.Point{}, draw.Src)
	}

	if hl.LastMove != board.NoMove {
		r.tint(dst, hl.LastMove.From, r.theme.LastMoveColor)
		r.tint(dst, hl.LastMove.To, r.theme.LastMoveColor)
	}
	if hl.Hint != board.NoMove {
		r.tint(dst, hl.Hint.From, r.theme.HintColor)
		r.tint(dst, hl.Hint.To, r.theme.HintColor)
	}
	if hl.Selected.IsValid() {
		r.tint(dst, hl.Selected, r.theme.SelectedSquare)
	}
	if hl.Check.IsValid() {
		r.tint(dst, hl.Check, r.theme.CheckColor)
	}

	if r.coords {
		r.drawCoordinates(dst)
	}

	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		sprite := r.sprites.Piece(piece)
		if sprite == nil {
			continue
		}
		rect := r.squareRect(sq)
		draw.Draw(dst, rect, sprite, image.Point{}, draw.Over)
	}

	for _, sq := range hl.Targets {
		r.drawTarget(dst, sq, pos.PieceAt(sq) != board.NoPiece)
	}
}

func (r *Renderer) squareRect(sq board.Square) image.Rectangle {
	x, y := r.SquareToScreen(sq)
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// isLight reports whether sq is a light square; a1 is dark.
func isLight(sq board.Square) bool {
	return (sq.File()+sq.Rank())%2 == 0
}

func (r *Renderer) squareColor(sq board.Square) color.NRGBA {
	if isLight(sq) {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

func (r *Renderer) tint(dst *image.RGBA, sq board.Square, c color.NRGBA) {
	if !sq.IsValid() {
		return
	}
	draw.Draw(dst, r.squareRect(sq), image.NewUniform(c), image.Point{}, draw.Over)
}

// drawTarget marks a legal destination: a dot on empty squares, a ring on
// captures.
func (r *Renderer) drawTarget(dst *image.RGBA, sq board.Square, capture bool) {
	x, y := r.SquareToScreen(sq)
	s := float64(r.squareSize)
	cx, cy := float64(x)+s/2, float64(y)+s/2

	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	if capture {
		stroker := rasterx.NewStroker(b.Dx(), b.Dy(), scanner)
		stroker.SetColor(r.theme.LegalMoveColor)
		stroker.SetStroke(fixed.Int26_6(s*0.08*64), 0, rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round)
		rasterx.AddCircle(cx, cy, s*0.44, stroker)
		stroker.Draw()
		return
	}
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(r.theme.LegalMoveColor)
	rasterx.AddCircle(cx, cy, s*0.15, filler)
	filler.Draw()
}

// drawCoordinates labels ranks along the left edge and files along the
// bottom edge.
func (r *Renderer) drawCoordinates(dst *image.RGBA) {
	face := basicfont.Face7x13
	pad := 3

	for row := 0; row < 8; row++ {
		sq := r.ScreenToSquare(0, row*r.squareSize)
		label := string(rune('8' - sq.Rank()))
		r.drawLabel(dst, face, label, pad, row*r.squareSize+pad+face.Ascent, sq)
	}
	for col := 0; col < 8; col++ {
		sq := r.ScreenToSquare(col*r.squareSize, 7*r.squareSize)
		label := string(rune('a' + sq.File()))
		x := (col+1)*r.squareSize - pad - face.Advance
		y := 8*r.squareSize - pad - face.Descent
		r.drawLabel(dst, face, label, x, y, sq)
	}
}

func (r *Renderer) drawLabel(dst *image.RGBA, face *basicfont.Face, label string, x, y int, sq board.Square) {
	c := r.theme.CoordDark
	if isLight(sq) {
		c = r.theme.CoordLight
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
