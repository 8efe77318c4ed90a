package engine

import "github.com/hailam/chesstutor/internal/board"

// EvaluateMaterial returns the material balance of pos from forColor's
// point of view: forColor's piece values minus the opponent's.
func EvaluateMaterial(pos *board.Position, forColor board.Color) int {
	score := 0
	for _, piece := range pos.Board {
		if piece == board.NoPiece {
			continue
		}
		if piece.Color() == forColor {
			score += piece.Value()
		} else {
			score -= piece.Value()
		}
	}
	return score
}
