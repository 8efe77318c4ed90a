package board

import "testing"

func TestPieceEncoding(t *testing.T) {
	for _, c := range []Color{White, Black} {
		for pt := Pawn; pt <= King; pt++ {
			p := NewPiece(pt, c)
			if p.Type() != pt || p.Color() != c {
				t.Errorf("NewPiece(%v, %v) decodes as %v %v", pt, c, p.Color(), p.Type())
			}
			if got := PieceFromChar(p.String()[0]); got != p {
				t.Errorf("PieceFromChar(%q) = %v, want %v", p.String(), got, p)
			}
		}
	}

	if NewPiece(NoPieceType, White) != NoPiece || NewPiece(Queen, NoColor) != NoPiece {
		t.Error("out of range input must give NoPiece")
	}
	if NoPiece.Type() != NoPieceType || NoPiece.Color() != NoColor {
		t.Error("NoPiece must decode to NoPieceType and NoColor")
	}
	if PieceFromChar('x') != NoPiece {
		t.Error("PieceFromChar accepted a non-piece letter")
	}
}

func TestPieceTypeFromChar(t *testing.T) {
	tests := []struct {
		c    byte
		want PieceType
	}{
		{'q', Queen}, {'Q', Queen}, {'n', Knight}, {'K', King}, {'p', Pawn},
		{'x', NoPieceType}, {'1', NoPieceType}, {' ', NoPieceType},
	}
	for _, tc := range tests {
		if got := PieceTypeFromChar(tc.c); got != tc.want {
			t.Errorf("PieceTypeFromChar(%q) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestPieceSymbols(t *testing.T) {
	if got := WhiteKing.Symbol(); got != "♔" {
		t.Errorf("WhiteKing.Symbol() = %q", got)
	}
	if got := BlackPawn.Symbol(); got != "♟" {
		t.Errorf("BlackPawn.Symbol() = %q", got)
	}
	if got := NoPiece.Symbol(); got != " " {
		t.Errorf("NoPiece.Symbol() = %q", got)
	}
	if got := BlackQueen.Value(); got != 900 {
		t.Errorf("BlackQueen.Value() = %d, want 900", got)
	}
}
