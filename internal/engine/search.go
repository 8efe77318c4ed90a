package engine

import (
	"sort"

	"github.com/hailam/chesstutor/internal/board"
)

// MateScore is added to the material score when the opponent is
// checkmated and subtracted when the AI is.
const MateScore = 100000

// ScoredMove is a root move with its minimax score.
type ScoredMove struct {
	Move  board.Move
	Score int
}

// Searcher runs a fixed-depth minimax without pruning.
// Every child is searched on its own copy of the position.
type Searcher struct {
	nodes uint64
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of positions visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search returns the minimax score of pos for aiColor.
//
// Legal moves are always generated. At depth 0, or when there are none,
// the material balance is returned, shifted by MateScore when the side to
// move is checkmated. Otherwise the side to move maximizes when it is
// aiColor and minimizes when it is not.
func (s *Searcher) Search(pos *board.Position, depth int, aiColor board.Color) int {
	s.nodes++

	moves := pos.LegalMoves()
	if depth <= 0 || len(moves) == 0 {
		score := EvaluateMaterial(pos, aiColor)
		if len(moves) == 0 && pos.InCheck() {
			if pos.SideToMove == aiColor {
				score -= MateScore
			} else {
				score += MateScore
			}
		}
		return score
	}

	maximize := pos.SideToMove == aiColor
	best := 0
	for i, m := range moves {
		score := s.Search(pos.After(m), depth-1, aiColor)
		if i == 0 || (maximize && score > best) || (!maximize && score < best) {
			best = score
		}
	}
	return best
}

// RankMoves scores every legal move of pos by searching the resulting
// position at depth-1, best first. Equal scores keep generation order.
// An empty result means the side to move has no legal move.
func (s *Searcher) RankMoves(pos *board.Position, aiColor board.Color, depth int) []ScoredMove {
	moves := pos.LegalMoves()
	ranked := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		ranked = append(ranked, ScoredMove{
			Move:  m,
			Score: s.Search(pos.After(m), depth-1, aiColor),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Search is a convenience wrapper around a fresh Searcher.
func Search(pos *board.Position, depth int, aiColor board.Color) int {
	var s Searcher
	return s.Search(pos, depth, aiColor)
}

// RankMoves is a convenience wrapper around a fresh Searcher.
func RankMoves(pos *board.Position, aiColor board.Color, depth int) []ScoredMove {
	var s Searcher
	return s.RankMoves(pos, aiColor, depth)
}
