package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hailam/chesstutor/internal/board"
)

const testSize = 40

func sameColor(got color.Color, want color.NRGBA) bool {
	r1, g1, b1, a1 := got.RGBA()
	r2, g2, b2, a2 := want.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func center(r *Renderer, sq board.Square) (int, int) {
	x, y := r.SquareToScreen(sq)
	return x + r.SquareSize()/2, y + r.SquareSize()/2
}

func TestSquareMapping(t *testing.T) {
	r := NewRenderer(testSize)

	tests := []struct {
		flipped bool
		x, y    int
		want    board.Square
	}{
		{false, 0, 0, board.A8},
		{false, 8*testSize - 1, 8*testSize - 1, board.H1},
		{false, 4*testSize + 5, 6*testSize + 5, board.E2},
		{true, 0, 0, board.H1},
		{true, 8*testSize - 1, 8*testSize - 1, board.A8},
		{false, -1, 10, board.NoSquare},
		{false, 10, 8 * testSize, board.NoSquare},
	}

	for _, tc := range tests {
		r.SetFlipped(tc.flipped)
		if got := r.ScreenToSquare(tc.x, tc.y); got != tc.want {
			t.Errorf("ScreenToSquare(%d, %d) flipped=%v = %v, want %v", tc.x, tc.y, tc.flipped, got, tc.want)
		}
	}

	for _, flipped := range []bool{false, true} {
		r.SetFlipped(flipped)
		for sq := board.Square(0); sq < 64; sq++ {
			x, y := r.SquareToScreen(sq)
			if got := r.ScreenToSquare(x, y); got != sq {
				t.Errorf("round trip of %v flipped=%v gave %v", sq, flipped, got)
			}
		}
	}
}

func TestRenderSquares(t *testing.T) {
	r := NewRenderer(testSize)
	pos := board.NewPosition()
	img := r.Render(pos, NoHighlights())

	if got := img.Bounds(); got != image.Rect(0, 0, 8*testSize, 8*testSize) {
		t.Fatalf("Bounds() = %v", got)
	}

	theme := DefaultTheme()
	// Empty squares in the middle of the board.
	for _, tc := range []struct {
		sq   board.Square
		want color.NRGBA
	}{
		{board.D5, theme.LightSquare},
		{board.E5, theme.DarkSquare},
		{board.D4, theme.DarkSquare},
		{board.E4, theme.LightSquare},
	} {
		x, y := center(r, tc.sq)
		if got := img.At(x, y); !sameColor(got, tc.want) {
			t.Errorf("center of %v = %v, want %v", tc.sq, got, tc.want)
		}
	}
}

func TestRenderHighlights(t *testing.T) {
	r := NewRenderer(testSize)
	pos := board.NewPosition()
	theme := DefaultTheme()

	hl := HighlightsFor(pos, board.E2)
	if hl.Selected != board.E2 || len(hl.Targets) != 2 {
		t.Fatalf("HighlightsFor(e2) = %+v", hl)
	}
	img := r.Render(pos, hl)

	x, y := center(r, board.E3)
	if sameColor(img.At(x, y), theme.DarkSquare) {
		t.Error("legal target e3 not marked")
	}
	x, y = center(r, board.E5)
	if !sameColor(img.At(x, y), theme.DarkSquare) {
		t.Error("e5 marked although it is not a target")
	}

	// Selecting an opponent piece highlights nothing.
	if hl := HighlightsFor(pos, board.E7); hl.Selected != board.NoSquare || hl.Targets != nil {
		t.Errorf("HighlightsFor(e7) = %+v", hl)
	}
}

func TestRenderCheck(t *testing.T) {
	r := NewRenderer(testSize)
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	hl := HighlightsFor(pos, board.NoSquare)
	if hl.Check != board.E1 {
		t.Fatalf("Check = %v, want e1", hl.Check)
	}

	img := r.Render(pos, hl)
	x, y := r.SquareToScreen(board.E1)
	got := img.At(x+testSize-3, y+2)
	if sameColor(got, DefaultTheme().DarkSquare) {
		t.Error("checked king square not tinted")
	}
}

func TestSprites(t *testing.T) {
	ss := NewSpriteSet(testSize)
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			img := ss.Piece(p)
			if img == nil {
				t.Errorf("no sprite for %v", p)
				continue
			}
			if !hasInk(img) {
				t.Errorf("sprite for %v is blank", p)
			}
		}
	}
	if ss.Piece(board.NoPiece) != nil {
		t.Error("sprite for NoPiece")
	}
	if PieceSVG(board.NoPiece) != nil {
		t.Error("SVG for NoPiece")
	}
}

func hasInk(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

func TestFlippedPiecePlacement(t *testing.T) {
	r := NewRenderer(testSize)
	r.SetFlipped(true)
	r.SetCoordinates(false)
	img := r.Render(board.NewPosition(), NoHighlights())

	// With Black at the bottom the white king sits in the top row.
	x, y := center(r, board.E1)
	if y >= testSize {
		t.Fatalf("e1 drawn at row y=%d with the board flipped", y)
	}
	if sameColor(img.At(x, y), DefaultTheme().DarkSquare) {
		t.Error("no piece drawn on e1")
	}
}

func TestEncodePNG(t *testing.T) {
	r := NewRenderer(testSize)
	img := r.Render(board.NewPosition(), NoHighlights())

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
