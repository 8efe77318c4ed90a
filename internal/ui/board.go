package ui

import (
	"image"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/render"
	"github.com/hajimehoshi/ebiten/v2"
)

// BoardView keeps a GPU copy of the rendered board and refreshes it only
// when the position or the highlights change.
type BoardView struct {
	renderer *render.Renderer
	pixels   *image.RGBA
	image    *ebiten.Image
	sprites  map[board.Piece]*ebiten.Image
	dirty    bool
}

// NewBoardView creates a board view with squares of squareSize pixels.
func NewBoardView(squareSize int) *BoardView {
	r := render.NewRenderer(squareSize)
	size := r.BoardSize()
	return &BoardView{
		renderer: r,
		pixels:   image.NewRGBA(image.Rect(0, 0, size, size)),
		image:    ebiten.NewImage(size, size),
		sprites:  make(map[board.Piece]*ebiten.Image),
		dirty:    true,
	}
}

// Invalidate forces a redraw on the next Refresh.
func (bv *BoardView) Invalidate() { bv.dirty = true }

// SetFlipped puts Black at the bottom when true.
func (bv *BoardView) SetFlipped(flipped bool) {
	if bv.renderer.Flipped() != flipped {
		bv.renderer.SetFlipped(flipped)
		bv.dirty = true
	}
}

// Flipped reports whether Black is at the bottom.
func (bv *BoardView) Flipped() bool { return bv.renderer.Flipped() }

// SquareSize returns the edge of a square in pixels.
func (bv *BoardView) SquareSize() int { return bv.renderer.SquareSize() }

// SquareToScreen returns the top-left pixel of sq.
func (bv *BoardView) SquareToScreen(sq board.Square) (int, int) {
	return bv.renderer.SquareToScreen(sq)
}

// ScreenToSquare returns the square under a pixel.
func (bv *BoardView) ScreenToSquare(x, y int) board.Square {
	return bv.renderer.ScreenToSquare(x, y)
}

// Refresh re-renders pos if anything changed since the last call. The
// piece on hidden, if valid, is left out so it can follow the cursor.
func (bv *BoardView) Refresh(pos *board.Position, hl render.Highlights, hidden board.Square) {
	if !bv.dirty {
		return
	}
	if hidden.IsValid() {
		pos = pos.Copy()
		pos.SetPiece(hidden, board.NoPiece)
	}
	bv.renderer.Draw(bv.pixels, pos, hl)
	bv.image.WritePixels(bv.pixels.Pix)
	bv.dirty = false
}

// Draw blits the board to the top-left of screen.
func (bv *BoardView) Draw(screen *ebiten.Image) {
	screen.DrawImage(bv.image, nil)
}

// DrawPiece draws a piece centered on (cx, cy).
func (bv *BoardView) DrawPiece(screen *ebiten.Image, p board.Piece, cx, cy int) {
	img := bv.sprite(p)
	if img == nil {
		return
	}
	half := float64(bv.SquareSize()) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(cx)-half, float64(cy)-half)
	screen.DrawImage(img, op)
}

func (bv *BoardView) sprite(p board.Piece) *ebiten.Image {
	if img, ok := bv.sprites[p]; ok {
		return img
	}
	src := bv.renderer.Sprites().Piece(p)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	bv.sprites[p] = img
	return img
}
