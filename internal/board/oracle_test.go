package board

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

// referenceMoves lists the legal moves of fen as computed by notnil/chess.
func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("chess.FEN(%q): %v", fen, err)
	}
	game := chess.NewGame(opt)

	out := []string{}
	for _, m := range game.ValidMoves() {
		out = append(out, chess.UCINotation{}.Encode(game.Position(), m))
	}
	sort.Strings(out)
	return out
}

func sortedMoveStrings(moves []Move) []string {
	out := moveStrings(moves)
	sort.Strings(out)
	return out
}

func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}

	for _, fen := range fens {
		pos := mustFEN(t, fen)
		want := referenceMoves(t, fen)
		got := sortedMoveStrings(pos.LegalMoves())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("legal moves of %q differ from reference (-want +got):\n%s", fen, diff)
		}
	}
}

func TestRandomPlayoutsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for game := 0; game < 8; game++ {
		pos := NewPosition()
		for ply := 0; ply < 60; ply++ {
			fen := pos.ToFEN()
			got := sortedMoveStrings(pos.LegalMoves())
			if diff := cmp.Diff(referenceMoves(t, fen), got); diff != "" {
				t.Fatalf("legal moves of %q differ from reference (-want +got):\n%s", fen, diff)
			}
			if len(got) == 0 {
				break
			}

			moves := pos.LegalMoves()
			pos.ApplyMove(moves[rng.IntN(len(moves))])
		}
	}
}
