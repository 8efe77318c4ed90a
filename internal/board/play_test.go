package board

import (
	"errors"
	"testing"
)

func TestPlayRejects(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		req    MoveRequest
		reason RejectReason
		err    error
	}{
		{"OffBoard", StartFEN, MoveRequest{From: E2, To: NoSquare, Promotion: NoPieceType}, ReasonInvalidSquare, ErrInvalidSquare},
		{"EmptySource", StartFEN, MoveRequest{From: E3, To: E4, Promotion: NoPieceType}, ReasonNoPiece, ErrIllegalMove},
		{"NotYourTurn", StartFEN, MoveRequest{From: E7, To: E5, Promotion: NoPieceType}, ReasonNotYourTurn, ErrIllegalMove},
		{"OwnPiece", StartFEN, MoveRequest{From: A1, To: A2, Promotion: NoPieceType}, ReasonBlockedByOwnPiece, ErrIllegalMove},
		{"BadPattern", StartFEN, MoveRequest{From: E2, To: E5, Promotion: NoPieceType}, ReasonInvalidPieceMovement, ErrIllegalMove},
		{"Pinned", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", MoveRequest{From: E2, To: D3, Promotion: NoPieceType}, ReasonWouldLeaveKingInCheck, ErrIllegalMove},
		{"MissingPromotion", "7k/P7/8/8/8/8/8/K7 w - - 0 1", MoveRequest{From: A7, To: A8, Promotion: NoPieceType}, ReasonPromotionRequired, ErrIllegalMove},
		{"CastleOntoRookWithPromotion", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", MoveRequest{From: E1, To: H1, Promotion: Queen}, ReasonBlockedByOwnPiece, ErrIllegalMove},
		{"PromotionOffLastRank", StartFEN, MoveRequest{From: E2, To: E4, Promotion: Queen}, ReasonInvalidPieceMovement, ErrIllegalMove},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, tc.fen)
			before := pos.ToFEN()

			m, err := pos.Play(tc.req)
			if err == nil {
				t.Fatalf("Play(%v) accepted as %v", tc.req, m)
			}
			if m != NoMove {
				t.Errorf("rejected Play returned move %v", m)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("error %v does not wrap %v", err, tc.err)
			}

			var moveErr *MoveError
			if !errors.As(err, &moveErr) {
				t.Fatalf("error %T is not a *MoveError", err)
			}
			if moveErr.Reason != tc.reason {
				t.Errorf("Reason = %v, want %v", moveErr.Reason, tc.reason)
			}

			if got := pos.ToFEN(); got != before {
				t.Errorf("rejected move changed the position: %s", got)
			}
			if pos.Plies() != 0 {
				t.Errorf("rejected move recorded in history")
			}
		})
	}
}

func TestPlayKingOntoRookCastles(t *testing.T) {
	tests := []struct {
		name     string
		req      string
		king     Square
		rook     Square
		castling CastleSide
	}{
		{"KingSide", "e1h1", G1, F1, KingSide},
		{"QueenSide", "e1a1", C1, D1, QueenSide},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			req, err := ParseMoveRequest(tc.req)
			if err != nil {
				t.Fatal(err)
			}
			m, err := pos.Play(req)
			if err != nil {
				t.Fatalf("Play(%s): %v", tc.req, err)
			}
			if m.Castle != tc.castling {
				t.Errorf("Castle = %v, want %v", m.Castle, tc.castling)
			}
			if pos.PieceAt(tc.king) != WhiteKing || pos.PieceAt(tc.rook) != WhiteRook {
				t.Errorf("castled layout wrong:\n%s", pos)
			}
		})
	}
}

func TestUndoRestoresEverything(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 7 20")
	before := pos.ToFEN()

	mustPlay(t, pos, "e1g1", "a8a1")
	if pos.Plies() != 2 {
		t.Fatalf("Plies() = %d, want 2", pos.Plies())
	}

	if m, ok := pos.UndoMove(); !ok || m.String() != "a8a1" {
		t.Fatalf("UndoMove() = %v, %v", m, ok)
	}
	if m, ok := pos.UndoMove(); !ok || !m.IsCastling() {
		t.Fatalf("UndoMove() = %v, %v", m, ok)
	}
	if got := pos.ToFEN(); got != before {
		t.Errorf("ToFEN() after undo = %q, want %q", got, before)
	}

	if m, ok := pos.UndoMove(); ok || m != NoMove {
		t.Errorf("UndoMove() on empty history = %v, %v", m, ok)
	}
}

func TestUndoPromotionAndEnPassant(t *testing.T) {
	pos := mustFEN(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	before := pos.ToFEN()
	mustPlay(t, pos, "a7b8q")
	if pos.PieceAt(B8) != WhiteQueen {
		t.Fatalf("b8 = %v, want white queen", pos.PieceAt(B8))
	}
	pos.UndoMove()
	if got := pos.ToFEN(); got != before {
		t.Errorf("ToFEN() after undoing promotion = %q, want %q", got, before)
	}

	pos = NewPosition()
	mustPlay(t, pos, "e2e4", "a7a6", "e4e5", "d7d5")
	before = pos.ToFEN()
	mustPlay(t, pos, "e5d6")
	pos.UndoMove()
	if got := pos.ToFEN(); got != before {
		t.Errorf("ToFEN() after undoing en passant = %q, want %q", got, before)
	}
	if pos.PieceAt(D5) != BlackPawn {
		t.Error("en passant victim not restored on d5")
	}
}
