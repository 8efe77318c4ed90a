package board

import "testing"

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ka1, Ra8; Black Kh8 boxed in by g7/h7.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.IsCheck() {
		t.Error("Expected check")
	}
	if n := len(pos.LegalMoves()); n != 0 {
		t.Errorf("Expected no legal moves, got %d", n)
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("Checkmate must never classify as stalemate")
	}
	if got := pos.Status(); got != Checkmate {
		t.Errorf("Status() = %v, want checkmate", got)
	}
	if got := pos.Winner(); got != White {
		t.Errorf("Winner() = %v, want White", got)
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can capture the checking rook.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.IsCheck() {
		t.Error("Expected check")
	}
	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if got := pos.Status(); got != Ongoing {
		t.Errorf("Status() = %v, want ongoing", got)
	}
	if got := pos.Winner(); got != NoColor {
		t.Errorf("Winner() = %v, want NoColor", got)
	}
}

func TestStalemate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"KingAndQueen", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"},
		{"BlockedPawn", "8/8/8/8/8/2k5/2p5/2K5 w - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if pos.IsCheck() {
				t.Error("Stalemate position must not be check")
			}
			if !pos.IsStalemate() {
				t.Error("Expected stalemate")
			}
			if pos.IsCheckmate() {
				t.Error("Stalemate must not classify as checkmate")
			}
			if got := pos.Status(); got != Stalemate {
				t.Errorf("Status() = %v, want stalemate", got)
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		req, err := ParseMoveRequest(s)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pos.Play(req); err != nil {
			t.Fatalf("Play(%s): %v", s, err)
		}
	}
	if !pos.IsCheckmate() {
		t.Fatalf("Expected checkmate after fool's mate:\n%s", pos)
	}
	if got := pos.Winner(); got != Black {
		t.Errorf("Winner() = %v, want Black", got)
	}
}

func TestKingInCheckWithoutKing(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/8/R6K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if pos.KingInCheck(Black) {
		t.Error("A missing king is treated as not in check")
	}
}
