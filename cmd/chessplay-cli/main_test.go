package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hailam/chesstutor/internal/storage"
)

func init() {
	color.NoColor = true
}

func TestDrawBoard(t *testing.T) {
	var buf bytes.Buffer
	drawBoard(&buf, board.NewPosition(), board.NoMove, false)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9:\n%s", len(lines), buf.String())
	}
	if want := "8  r  n  b  q  k  b  n  r "; lines[0] != want {
		t.Errorf("top line = %q, want %q", lines[0], want)
	}
	if want := "1  R  N  B  Q  K  B  N  R "; lines[7] != want {
		t.Errorf("bottom line = %q, want %q", lines[7], want)
	}
	if !strings.HasPrefix(lines[4], "4  .  . ") {
		t.Errorf("empty rank = %q", lines[4])
	}
	if got := strings.Join(strings.Fields(lines[8]), ""); got != "abcdefgh" {
		t.Errorf("file labels = %q", got)
	}

	buf.Reset()
	drawBoard(&buf, board.NewPosition(), board.NoMove, true)
	if first := strings.SplitN(buf.String(), "\n", 2)[0]; !strings.HasPrefix(first, "1  R  N  B  K  Q") {
		t.Errorf("flipped top line = %q", first)
	}
}

func newSession(t *testing.T, opts ...game.Option) (*session, *bytes.Buffer) {
	t.Helper()
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	all := append([]game.Option{game.WithEngine(engine.NewEngine(engine.WithSeed(7)))}, opts...)
	g, err := game.New(all...)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	return &session{game: g, store: store, out: &out}, &out
}

func TestSessionHumanVsHuman(t *testing.T) {
	s, out := newSession(t, game.WithMode(game.HumanVsHuman))

	s.run(strings.NewReader("e2e4\ne5\nNf3\nbogus\ne2e4\nmoves\nquit\n"))

	if got := s.game.History(); len(got) != 3 || got[2] != "Nf3" {
		t.Fatalf("history = %v", got)
	}
	text := out.String()
	if !strings.Contains(text, `Cannot read move "bogus"`) {
		t.Errorf("missing parse error in output:\n%s", text)
	}
	if !strings.Contains(text, "Illegal move e2e4: no piece on the source square") {
		t.Errorf("missing rejection reason in output:\n%s", text)
	}
	if !strings.Contains(text, "e4 e5 Nf3") {
		t.Errorf("moves command output missing:\n%s", text)
	}
}

func TestSessionComputerReplies(t *testing.T) {
	s, _ := newSession(t, game.WithDifficulty(engine.Easy))

	s.run(strings.NewReader("e2e4\nquit\n"))

	if got := len(s.game.Moves()); got != 2 {
		t.Fatalf("%d plies played, want 2", got)
	}
	if !s.game.IsHumanTurn() {
		t.Error("human not to move after the computer replied")
	}
}

func TestSessionTwoPlayerGameNotInStats(t *testing.T) {
	s, out := newSession(t, game.WithMode(game.HumanVsHuman))

	s.run(strings.NewReader("f2f3\ne7e5\ng2g4\nQh4#\ne2e4\nquit\n"))

	if !s.game.IsOver() {
		t.Fatal("fool's mate not detected")
	}
	if !strings.Contains(out.String(), "Black wins by checkmate") {
		t.Errorf("result not announced:\n%s", out.String())
	}
	stats, err := s.store.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 0 {
		t.Errorf("stats = %+v, two player games must not be counted", stats)
	}
}

func TestSessionSaveAndUndo(t *testing.T) {
	s, _ := newSession(t, game.WithMode(game.HumanVsHuman))

	s.run(strings.NewReader("d2d4\nd7d5\nundo\nquit\n"))
	if got := len(s.game.Moves()); got != 1 {
		t.Fatalf("%d plies after undo, want 1", got)
	}

	s.save()
	if s.gameID == "" {
		t.Fatal("game not saved")
	}
	sg, err := s.store.LoadGame(s.gameID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sg.Moves) != 1 || sg.Moves[0] != "d2d4" {
		t.Errorf("saved moves = %v", sg.Moves)
	}
}
