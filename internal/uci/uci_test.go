package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
)

func run(t *testing.T, u *UCI, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := u.Run(strings.NewReader(strings.Join(script, "\n")), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func newUCI() *UCI {
	return New(engine.NewEngine(engine.WithSeed(1)))
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

func TestHandshake(t *testing.T) {
	out := run(t, newUCI(), "uci", "isready")
	for _, want := range []string{"id name Chess Tutor", "option name Difficulty", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPositionWithMoves(t *testing.T) {
	u := newUCI()
	run(t, u, "position startpos moves e2e4 e7e5 g1f3")

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := u.Position().ToFEN(); got != want {
		t.Errorf("FEN = %s, want %s", got, want)
	}
}

func TestPositionFEN(t *testing.T) {
	u := newUCI()
	run(t, u, "position fen r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1 moves e1h1")

	// Dropping the king on its rook castles.
	if got := u.Position().PieceAt(board.G1); got != board.WhiteKing {
		t.Errorf("g1 = %v, want white king", got)
	}
	if got := u.Position().PieceAt(board.F1); got != board.WhiteRook {
		t.Errorf("f1 = %v, want white rook", got)
	}
}

func TestPositionErrorsKeepPrevious(t *testing.T) {
	u := newUCI()
	out := run(t, u,
		"position startpos moves e2e4",
		"position startpos moves e2e5",
		"position fen not-a-fen w - - 0 1",
	)

	if !strings.Contains(out, "Invalid move") {
		t.Errorf("illegal move not reported:\n%s", out)
	}
	if !strings.Contains(out, "Invalid FEN") {
		t.Errorf("bad FEN not reported:\n%s", out)
	}
	if got := u.Position().PieceAt(board.E4); got != board.WhitePawn {
		t.Errorf("previous position lost, e4 = %v", got)
	}
}

func TestGoDepthFindsMate(t *testing.T) {
	u := newUCI()
	out := run(t, u,
		"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"go depth 1",
	)
	if got := lastLine(out); got != "bestmove a1a8" {
		t.Errorf("last line = %q, want bestmove a1a8\n%s", got, out)
	}
	if !strings.Contains(out, "info depth 1") {
		t.Errorf("no info line:\n%s", out)
	}
}

func TestGoReturnsLegalMove(t *testing.T) {
	for _, d := range []string{"easy", "medium", "hard"} {
		t.Run(d, func(t *testing.T) {
			u := newUCI()
			out := run(t, u,
				"setoption name Difficulty value "+d,
				"position startpos moves e2e4",
				"go",
			)

			got := strings.TrimPrefix(lastLine(out), "bestmove ")
			req, err := board.ParseMoveRequest(got)
			if err != nil {
				t.Fatalf("bestmove %q: %v", got, err)
			}
			if _, ok := u.Position().FindMove(req); !ok {
				t.Errorf("bestmove %s is not legal", got)
			}
		})
	}
}

func TestGoWithoutMoves(t *testing.T) {
	out := run(t, newUCI(),
		"position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"go",
	)
	if got := lastLine(out); got != "bestmove 0000" {
		t.Errorf("last line = %q, want bestmove 0000", got)
	}
}

func TestSetOption(t *testing.T) {
	u := newUCI()
	run(t, u, "setoption name Difficulty value Hard")
	if u.Difficulty() != engine.Hard {
		t.Errorf("Difficulty() = %v, want hard", u.Difficulty())
	}

	out := run(t, u, "setoption name Difficulty value impossible", "setoption name Hash value 64")
	if u.Difficulty() != engine.Hard {
		t.Errorf("bad value changed difficulty to %v", u.Difficulty())
	}
	if !strings.Contains(out, "Unknown option: Hash") {
		t.Errorf("unknown option not reported:\n%s", out)
	}
}

func TestHint(t *testing.T) {
	out := run(t, newUCI(),
		"position fen k7/8/8/8/q7/8/8/R5K1 w - - 0 1",
		"hint",
	)
	if got := lastLine(out); got != "hint a1a4 Rxa4+" {
		t.Errorf("last line = %q, want hint a1a4 Rxa4+", got)
	}
}

func TestPerft(t *testing.T) {
	out := run(t, newUCI(), "perft 2")
	if !strings.Contains(out, "Nodes: 400") {
		t.Errorf("perft 2 output:\n%s", out)
	}
}

func TestDisplayAndQuit(t *testing.T) {
	out := run(t, newUCI(), "d", "quit", "isready")
	if !strings.Contains(out, "Fen: "+board.StartFEN) {
		t.Errorf("display missing FEN:\n%s", out)
	}
	if strings.Contains(out, "readyok") {
		t.Error("commands after quit were processed")
	}
}
