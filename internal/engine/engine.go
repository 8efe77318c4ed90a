// Package engine picks moves for the computer player: a material
// evaluation, an exhaustive fixed-depth minimax and a difficulty policy
// that turns the ranked move list into a single choice.
package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hailam/chesstutor/internal/board"
)

// SearchInfo contains information about a finished ranking.
type SearchInfo struct {
	Depth int
	Score int // Score of the best ranked move
	Nodes uint64
	Time  time.Duration
	Move  board.Move // Move the policy chose
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // depth 1, banded random choice
	Medium                   // depth 2, random among near-best moves
	Hard                     // depth 3, always the best move
)

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses "easy", "medium" or "hard", case insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// DifficultySettings maps difficulty to search depth in plies.
var DifficultySettings = map[Difficulty]int{
	Easy:   1,
	Medium: 2,
	Hard:   3,
}

// HintDepth is the depth hints are searched at.
const HintDepth = 2

// mediumWindow is how far below the best score a Medium choice may be.
const mediumWindow = 150

// Engine is the chess AI engine. It is not safe for concurrent use.
type Engine struct {
	searcher Searcher
	rng      *rand.Rand

	// Callbacks
	OnInfo func(SearchInfo)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes the engine draw its random choices from r.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed seeds the engine's random source for reproducible games.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEngine creates a new chess engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return e
}

// BestMove chooses a move for aiColor, who must be the side to move.
// The second result is false when there is no legal move, which the caller
// treats as the end of the game.
//
// Hard searches three plies with no pruning and can take a noticeable
// time on branchy positions; it always runs to completion.
func (e *Engine) BestMove(pos *board.Position, aiColor board.Color, d Difficulty) (board.Move, bool) {
	depth, ok := DifficultySettings[d]
	if !ok {
		depth = DifficultySettings[Medium]
		d = Medium
	}

	start := time.Now()
	ranked := e.Rank(pos, aiColor, depth)
	if len(ranked) == 0 {
		return board.NoMove, false
	}

	var m board.Move
	switch d {
	case Hard:
		m = ranked[0].Move
	case Medium:
		m = e.pickMedium(ranked)
	default:
		m = e.pickEasy(ranked)
	}

	e.report(depth, ranked[0].Score, start, m)
	return m, true
}

// Hint returns the best move for the side to move at HintDepth.
// Budgeting hints is up to the caller.
func (e *Engine) Hint(pos *board.Position) (board.Move, bool) {
	start := time.Now()
	ranked := e.Rank(pos, pos.SideToMove, HintDepth)
	if len(ranked) == 0 {
		return board.NoMove, false
	}
	e.report(HintDepth, ranked[0].Score, start, ranked[0].Move)
	return ranked[0].Move, true
}

// Rank scores every legal move of pos for aiColor at depth, best first.
func (e *Engine) Rank(pos *board.Position, aiColor board.Color, depth int) []ScoredMove {
	e.searcher.Reset()
	return e.searcher.RankMoves(pos, aiColor, depth)
}

// Nodes returns the number of positions visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

func (e *Engine) report(depth, score int, start time.Time, m board.Move) {
	if e.OnInfo == nil {
		return
	}
	e.OnInfo(SearchInfo{
		Depth: depth,
		Score: score,
		Nodes: e.searcher.Nodes(),
		Time:  time.Since(start),
		Move:  m,
	})
}

// pickMedium picks uniformly among the moves scoring within mediumWindow
// of the best. ranked is sorted best first.
func (e *Engine) pickMedium(ranked []ScoredMove) board.Move {
	n := 1
	for n < len(ranked) && ranked[0].Score-ranked[n].Score <= mediumWindow {
		n++
	}
	return ranked[e.rng.IntN(n)].Move
}

// pickEasy picks from a band of the ranked list chosen at random: 45% the
// worst quarter, 35% the 30th to 70th percentile, 20% the best quarter.
// With three moves or fewer every move is equally likely.
func (e *Engine) pickEasy(ranked []ScoredMove) board.Move {
	n := len(ranked)
	if n <= 3 {
		return ranked[e.rng.IntN(n)].Move
	}
	lo, hi := easyBand(n, e.rng.Float64())
	return ranked[lo+e.rng.IntN(hi-lo)].Move
}

// easyBand returns the half-open index range [lo, hi) of the band that
// roll in [0, 1) selects, for a ranked list of n > 3 moves.
func easyBand(n int, roll float64) (lo, hi int) {
	switch {
	case roll < 0.45:
		return n * 3 / 4, n
	case roll < 0.80:
		return n * 3 / 10, (n*7 + 9) / 10
	default:
		return 0, max(1, (n+3)/4)
	}
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		pos.ApplyMove(m)
		nodes += e.Perft(pos, depth-1)
		pos.UndoMove()
	}

	return nodes
}

// Evaluate returns the static evaluation of a position for the side to move.
func (e *Engine) Evaluate(pos *board.Position) int {
	return EvaluateMaterial(pos, pos.SideToMove)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score >= MateScore/2 {
		return "Mate"
	}
	if score <= -MateScore/2 {
		return "Mated"
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
