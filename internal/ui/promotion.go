package ui

import (
	"image/color"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var promotionPieces = []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

var promotionKeys = map[ebiten.Key]board.PieceType{
	ebiten.KeyQ: board.Queen,
	ebiten.KeyR: board.Rook,
	ebiten.KeyB: board.Bishop,
	ebiten.KeyN: board.Knight,
}

// PromotionChooser asks which piece a pawn promotes to. It shows a column
// of four pieces growing from the promotion square toward the board
// center.
type PromotionChooser struct {
	visible bool
	from    board.Square
	to      board.Square
	color   board.Color
	onPick  func(board.MoveRequest)
}

// Show opens the chooser for a pawn moving from -> to.
func (pc *PromotionChooser) Show(from, to board.Square, c board.Color, onPick func(board.MoveRequest)) {
	pc.visible = true
	pc.from, pc.to, pc.color = from, to, c
	pc.onPick = onPick
}

// Hide closes the chooser without picking.
func (pc *PromotionChooser) Hide() {
	pc.visible = false
	pc.onPick = nil
}

// IsVisible reports whether the chooser is open.
func (pc *PromotionChooser) IsVisible() bool {
	return pc.visible
}

// cells returns the top-left corner of each choice.
func (pc *PromotionChooser) cells(bv *BoardView) [][2]int {
	x, y := bv.SquareToScreen(pc.to)
	step := bv.SquareSize()
	if y > 0 {
		step = -step
	}
	out := make([][2]int, len(promotionPieces))
	for i := range out {
		out[i] = [2]int{x, y + i*step}
	}
	return out
}

// Update handles keys Q/R/B/N, Escape and clicks on a choice.
func (pc *PromotionChooser) Update(input *InputHandler, bv *BoardView) {
	if !pc.visible {
		return
	}
	if IsKeyJustPressed(ebiten.KeyEscape) {
		pc.Hide()
		return
	}
	for key, pt := range promotionKeys {
		if IsKeyJustPressed(key) {
			pc.pick(pt)
			return
		}
	}

	if !input.IsLeftJustPressed() {
		return
	}
	size := bv.SquareSize()
	for i, c := range pc.cells(bv) {
		if input.IsInBounds(c[0], c[1], size, size) {
			pc.pick(promotionPieces[i])
			return
		}
	}
	pc.Hide()
}

func (pc *PromotionChooser) pick(pt board.PieceType) {
	onPick := pc.onPick
	req := board.MoveRequest{From: pc.from, To: pc.to, Promotion: pt}
	pc.Hide()
	if onPick != nil {
		onPick(req)
	}
}

// Draw renders the choices over the board.
func (pc *PromotionChooser) Draw(screen *ebiten.Image, bv *BoardView) {
	if !pc.visible {
		return
	}
	size := float32(bv.SquareSize())
	vector.DrawFilledRect(screen, 0, 0, size*8, size*8, color.RGBA{0, 0, 0, 100}, false)

	for i, c := range pc.cells(bv) {
		x, y := float32(c[0]), float32(c[1])
		vector.DrawFilledRect(screen, x, y, size, size, color.RGBA{240, 240, 245, 255}, false)
		vector.StrokeRect(screen, x, y, size, size, 2, accentColor, false)
		p := board.NewPiece(promotionPieces[i], pc.color)
		bv.DrawPiece(screen, p, c[0]+bv.SquareSize()/2, c[1]+bv.SquareSize()/2)
	}
}
