package board

// offset is a (file, rank) displacement on the internal board.
type offset struct {
	df, dr int
}

var (
	knightOffsets = [8]offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8]offset{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

	rookDirections   = [4]offset{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	bishopDirections = [4]offset{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	queenDirections  = [8]offset{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

// IsSquareAttacked returns true if any piece of byColor attacks sq.
//
// The lookup runs backwards from sq instead of generating every attack-only
// move of byColor; both give the same answer (see attacks_test.go).
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	if !sq.IsValid() {
		return false
	}

	// Pawns attack diagonally forward, so look one rank behind sq
	// from the attacker's point of view.
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Offset(df, -forward(byColor)); ok && p.Board[from] == NewPiece(Pawn, byColor) {
			return true
		}
	}

	knight := NewPiece(Knight, byColor)
	for _, o := range knightOffsets {
		if from, ok := sq.Offset(o.df, o.dr); ok && p.Board[from] == knight {
			return true
		}
	}

	king := NewPiece(King, byColor)
	for _, o := range kingOffsets {
		if from, ok := sq.Offset(o.df, o.dr); ok && p.Board[from] == king {
			return true
		}
	}

	queen := NewPiece(Queen, byColor)
	if p.rayHits(sq, rookDirections[:], NewPiece(Rook, byColor), queen) {
		return true
	}
	return p.rayHits(sq, bishopDirections[:], NewPiece(Bishop, byColor), queen)
}

// rayHits walks each direction from sq and reports whether the first piece
// met is one of the two sliders.
func (p *Position) rayHits(sq Square, dirs []offset, slider, queen Piece) bool {
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := cur.Offset(d.df, d.dr)
			if !ok {
				break
			}
			piece := p.Board[next]
			if piece != NoPiece {
				if piece == slider || piece == queen {
					return true
				}
				break
			}
			cur = next
		}
	}
	return false
}

// KingInCheck returns true if the king of color c is attacked.
// A board without that king is treated as not in check.
func (p *Position) KingInCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, c.Other())
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.KingInCheck(p.SideToMove)
}

// Attackers returns the squares holding pieces of byColor that attack sq,
// computed from attack-only generation.
func (p *Position) Attackers(sq Square, byColor Color) []Square {
	var from []Square
	for s, piece := range p.Board {
		if piece == NoPiece || piece.Color() != byColor {
			continue
		}
		for _, m := range p.PseudoMovesForPiece(Square(s), piece, true) {
			if m.To == sq {
				from = append(from, Square(s))
				break
			}
		}
	}
	return from
}
