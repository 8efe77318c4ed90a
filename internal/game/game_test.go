package game

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithEngine(engine.NewEngine(engine.WithSeed(1)))}, opts...)
	g, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func request(t *testing.T, s string) board.MoveRequest {
	t.Helper()
	req, err := board.ParseMoveRequest(s)
	if err != nil {
		t.Fatalf("ParseMoveRequest(%q): %v", s, err)
	}
	return req
}

func TestNewDefaults(t *testing.T) {
	g := newGame(t)
	if g.Mode() != HumanVsComputer || g.HumanColor() != board.White || g.Difficulty() != engine.Medium {
		t.Errorf("defaults = %v %v %v", g.Mode(), g.HumanColor(), g.Difficulty())
	}
	if g.HintsLeft() != HintsPerGame {
		t.Errorf("HintsLeft() = %d, want %d", g.HintsLeft(), HintsPerGame)
	}
	if g.Position().ToFEN() != board.StartFEN {
		t.Errorf("start position = %s", g.Position().ToFEN())
	}
}

func TestNewRejectsBadFEN(t *testing.T) {
	if _, err := New(WithFEN("not a fen")); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("New(bad FEN) error = %v, want ErrInvalidFEN", err)
	}
	if _, err := New(WithFEN("8/8/8/8/8/8/8/4K3 w - - 0 1")); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("New(no black king) error = %v, want ErrInvalidFEN", err)
	}
}

func TestSubmitLegal(t *testing.T) {
	g := newGame(t)
	res := g.Submit(request(t, "e2e4"))
	if !res.Applied || res.Err != nil {
		t.Fatalf("Submit(e2e4) = %+v", res)
	}
	if res.SAN != "e4" || res.Status != board.Ongoing {
		t.Errorf("Submit(e2e4) = %+v", res)
	}
	if diff := cmp.Diff([]string{"e4"}, g.History()); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
	if !g.IsComputerTurn() {
		t.Error("computer should be to move")
	}
}

func TestSubmitRejected(t *testing.T) {
	g := newGame(t)
	before := g.Position().ToFEN()

	res := g.Submit(request(t, "e2e5"))
	if res.Applied {
		t.Fatal("illegal move applied")
	}
	if !errors.Is(res.Err, board.ErrIllegalMove) {
		t.Errorf("Err = %v, want ErrIllegalMove", res.Err)
	}
	if res.Reason != board.ReasonInvalidPieceMovement {
		t.Errorf("Reason = %v", res.Reason)
	}
	if g.Position().ToFEN() != before || len(g.History()) != 0 {
		t.Error("rejected move changed the game")
	}
}

func TestSubmitOnComputerTurn(t *testing.T) {
	g := newGame(t)
	g.Submit(request(t, "e2e4"))

	res := g.Submit(request(t, "e7e5"))
	if res.Applied || !errors.Is(res.Err, ErrNotHumanTurn) {
		t.Errorf("Submit on the computer's turn = %+v", res)
	}
}

func TestAIMove(t *testing.T) {
	g := newGame(t, WithDifficulty(engine.Easy))

	if _, ok := g.AIMove(); ok {
		t.Fatal("AIMove played on the human's turn")
	}

	g.Submit(request(t, "e2e4"))
	m, ok := g.AIMove()
	if !ok {
		t.Fatal("AIMove returned no move")
	}
	if g.LastMove() != m || g.Position().SideToMove != board.White {
		t.Errorf("AIMove %v not applied", m)
	}
	if len(g.History()) != 2 {
		t.Errorf("History() = %v", g.History())
	}
}

func TestHumanPlaysBlack(t *testing.T) {
	g := newGame(t, WithHumanColor(board.Black), WithDifficulty(engine.Easy))
	if !g.IsComputerTurn() {
		t.Fatal("computer should open when the human plays Black")
	}
	if res := g.Submit(request(t, "e2e4")); !errors.Is(res.Err, ErrNotHumanTurn) {
		t.Errorf("Submit for White = %+v", res)
	}
	if _, ok := g.AIMove(); !ok {
		t.Fatal("AIMove returned no move")
	}
	if !g.IsHumanTurn() {
		t.Error("human should be to move")
	}

	// Only the computer's opening move is on the board.
	if _, err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
}

func TestHintBudget(t *testing.T) {
	g := newGame(t, WithMode(HumanVsHuman))
	before := g.Position().ToFEN()

	for i := 0; i < HintsPerGame; i++ {
		m, err := g.Hint()
		if err != nil {
			t.Fatalf("Hint %d: %v", i+1, err)
		}
		if !g.Position().IsLegal(m) {
			t.Errorf("Hint %d = %v is not legal", i+1, m)
		}
	}
	if _, err := g.Hint(); !errors.Is(err, ErrNoHintsLeft) {
		t.Errorf("fourth Hint error = %v, want ErrNoHintsLeft", err)
	}
	if g.Position().ToFEN() != before {
		t.Error("Hint changed the position")
	}

	g.Reset()
	if g.HintsLeft() != HintsPerGame {
		t.Errorf("HintsLeft() after Reset = %d", g.HintsLeft())
	}
}

func TestHintFindsMate(t *testing.T) {
	g := newGame(t, WithFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"))
	m, err := g.Hint()
	if err != nil {
		t.Fatal(err)
	}
	if m.From != board.A1 || m.To != board.A8 {
		t.Errorf("Hint() = %v, want a1a8", m)
	}
}

func TestUndoAgainstComputer(t *testing.T) {
	g := newGame(t, WithDifficulty(engine.Easy))
	if _, err := g.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() at start error = %v", err)
	}

	g.Submit(request(t, "d2d4"))
	g.AIMove()

	n, err := g.Undo()
	if err != nil || n != 2 {
		t.Fatalf("Undo() = %d, %v; want 2 plies", n, err)
	}
	if g.Position().ToFEN() != board.StartFEN || len(g.History()) != 0 {
		t.Errorf("Undo did not restore the start: %s %v", g.Position().ToFEN(), g.History())
	}
}

func TestUndoHumanVsHuman(t *testing.T) {
	g := newGame(t, WithMode(HumanVsHuman))
	g.Submit(request(t, "e2e4"))
	g.Submit(request(t, "e7e5"))

	if n, err := g.Undo(); err != nil || n != 1 {
		t.Fatalf("Undo() = %d, %v; want 1 ply", n, err)
	}
	if diff := cmp.Diff([]string{"e4"}, g.History()); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	g := newGame(t, WithMode(HumanVsHuman))
	var last Result
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		last = g.Submit(request(t, s))
		if !last.Applied {
			t.Fatalf("Submit(%s) = %+v", s, last)
		}
	}

	if last.SAN != "Qh4#" || last.Status != board.Checkmate {
		t.Errorf("final result = %+v", last)
	}
	if !g.IsOver() || g.Winner() != board.Black {
		t.Errorf("IsOver() = %v, Winner() = %v", g.IsOver(), g.Winner())
	}
	if got := g.ResultText(); got != "Black wins by checkmate" {
		t.Errorf("ResultText() = %q", got)
	}

	if res := g.Submit(request(t, "a2a3")); !errors.Is(res.Err, ErrGameOver) {
		t.Errorf("Submit after mate = %+v", res)
	}
	if _, err := g.Hint(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Hint after mate error = %v", err)
	}
}

func TestStalemateResult(t *testing.T) {
	g := newGame(t, WithMode(HumanVsHuman), WithFEN("7k/8/5QK1/8/8/8/8/8 w - - 0 1"))
	res := g.Submit(request(t, "f6f7"))
	if res.Status != board.Stalemate {
		t.Fatalf("Status = %v, want stalemate", res.Status)
	}
	if got := g.ResultText(); got != "Draw by stalemate" {
		t.Errorf("ResultText() = %q", got)
	}
}

func TestComputerVsComputer(t *testing.T) {
	g := newGame(t, WithMode(ComputerVsComputer), WithDifficulty(engine.Easy))
	for i := 0; i < 6; i++ {
		if _, ok := g.AIMove(); !ok {
			t.Fatalf("AIMove %d returned no move", i+1)
		}
	}
	if len(g.History()) != 6 {
		t.Errorf("History() = %v", g.History())
	}
	if res := g.Submit(request(t, "e2e4")); !errors.Is(res.Err, ErrNotHumanTurn) {
		t.Errorf("Submit in computer game = %+v", res)
	}
}

func TestReplay(t *testing.T) {
	g := newGame(t, WithMode(HumanVsHuman))
	if err := g.Replay([]string{"e2e4", "e7e5", "g1f3"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"e4", "e5", "Nf3"}, g.History()); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}

	if err := g.Replay([]string{"e1e3"}); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Replay(illegal) error = %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{HumanVsHuman, HumanVsComputer, ComputerVsComputer} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("online"); err == nil {
		t.Error("ParseMode(online) succeeded")
	}
}
