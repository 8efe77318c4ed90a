package board

import "fmt"

// PseudoMovesForPiece generates the moves of piece standing on sq that obey
// its movement pattern, without checking whether the mover's king is left
// in check. With attackOnly set, pawns emit only their diagonal attack
// squares and the king does not castle; this is the form the attack oracle
// is defined by.
func (p *Position) PseudoMovesForPiece(sq Square, piece Piece, attackOnly bool) []Move {
	var moves []Move
	switch piece.Type() {
	case Pawn:
		moves = p.pawnMoves(moves, sq, piece.Color(), attackOnly)
	case Knight:
		moves = p.stepMoves(moves, sq, piece.Color(), knightOffsets[:])
	case Bishop:
		moves = p.slideMoves(moves, sq, piece.Color(), bishopDirections[:])
	case Rook:
		moves = p.slideMoves(moves, sq, piece.Color(), rookDirections[:])
	case Queen:
		moves = p.slideMoves(moves, sq, piece.Color(), queenDirections[:])
	case King:
		moves = p.stepMoves(moves, sq, piece.Color(), kingOffsets[:])
		if !attackOnly {
			moves = p.castlingMoves(moves, sq, piece.Color())
		}
	case NoPieceType:
	default:
		panic(fmt.Sprintf("board: unknown piece type %d", piece.Type()))
	}
	return moves
}

// pawnMoves generates pushes, captures, en passant and promotions.
func (p *Position) pawnMoves(moves []Move, sq Square, us Color, attackOnly bool) []Move {
	dir := forward(us)

	if attackOnly {
		for _, df := range [2]int{-1, 1} {
			to, ok := sq.Offset(df, dir)
			if !ok {
				continue
			}
			if target := p.Board[to]; target == NoPiece || target.Color() != us {
				moves = append(moves, newMove(sq, to, target != NoPiece))
			}
		}
		return moves
	}

	// Single and double pushes
	if to, ok := sq.Offset(0, dir); ok && p.Board[to] == NoPiece {
		moves = addPawnMove(moves, newMove(sq, to, false))

		if sq.RelativeRank(us) == 1 {
			if to2, ok := to.Offset(0, dir); ok && p.Board[to2] == NoPiece {
				m := newMove(sq, to2, false)
				m.DoublePush = true
				moves = append(moves, m)
			}
		}
	}

	// Captures, en passant included
	for _, df := range [2]int{-1, 1} {
		to, ok := sq.Offset(df, dir)
		if !ok {
			continue
		}
		target := p.Board[to]
		if target != NoPiece && target.Color() != us {
			moves = addPawnMove(moves, newMove(sq, to, true))
		} else if target == NoPiece && to == p.EnPassant && us == p.SideToMove {
			m := newMove(sq, to, true)
			m.EnPassant = true
			moves = append(moves, m)
		}
	}

	return moves
}

// addPawnMove adds m, expanded into the four promotions when it lands on
// the last rank.
func addPawnMove(moves []Move, m Move) []Move {
	if r := m.To.Rank(); r != 0 && r != 7 {
		return append(moves, m)
	}
	for _, pt := range promotionOrder {
		promo := m
		promo.Promotion = pt
		moves = append(moves, promo)
	}
	return moves
}

// stepMoves generates single-step moves (knight and king).
func (p *Position) stepMoves(moves []Move, sq Square, us Color, offsets []offset) []Move {
	for _, o := range offsets {
		to, ok := sq.Offset(o.df, o.dr)
		if !ok {
			continue
		}
		target := p.Board[to]
		if target == NoPiece {
			moves = append(moves, newMove(sq, to, false))
		} else if target.Color() != us {
			moves = append(moves, newMove(sq, to, true))
		}
	}
	return moves
}

// slideMoves casts rays until the board edge, an own piece, or the first
// enemy piece, which is captured.
func (p *Position) slideMoves(moves []Move, sq Square, us Color, dirs []offset) []Move {
	for _, d := range dirs {
		cur := sq
		for {
			to, ok := cur.Offset(d.df, d.dr)
			if !ok {
				break
			}
			target := p.Board[to]
			if target == NoPiece {
				moves = append(moves, newMove(sq, to, false))
				cur = to
				continue
			}
			if target.Color() != us {
				moves = append(moves, newMove(sq, to, true))
			}
			break
		}
	}
	return moves
}

// castleLayout describes the squares involved in one castling move.
type castleLayout struct {
	king, rook     Square
	kingTo, rookTo Square
	empty          []Square  // squares between king and rook
	safe           [3]Square // king start, transit, destination
}

var castleLayouts = [2][2]castleLayout{
	White: {
		{king: E1, rook: H1, kingTo: G1, rookTo: F1, empty: []Square{F1, G1}, safe: [3]Square{E1, F1, G1}},
		{king: E1, rook: A1, kingTo: C1, rookTo: D1, empty: []Square{B1, C1, D1}, safe: [3]Square{E1, D1, C1}},
	},
	Black: {
		{king: E8, rook: H8, kingTo: G8, rookTo: F8, empty: []Square{F8, G8}, safe: [3]Square{E8, F8, G8}},
		{king: E8, rook: A8, kingTo: C8, rookTo: D8, empty: []Square{B8, C8, D8}, safe: [3]Square{E8, D8, C8}},
	},
}

// layout returns the castling layout for a color and side.
func layout(c Color, side CastleSide) castleLayout {
	if side == KingSide {
		return castleLayouts[c][0]
	}
	return castleLayouts[c][1]
}

// castlingMoves generates castling moves for the king on sq.
func (p *Position) castlingMoves(moves []Move, sq Square, us Color) []Move {
	them := us.Other()
	for _, side := range [2]CastleSide{KingSide, QueenSide} {
		if !p.CastlingRights.CanCastle(us, side) {
			continue
		}
		l := layout(us, side)
		if sq != l.king || p.Board[l.rook] != NewPiece(Rook, us) {
			continue
		}

		open := true
		for _, s := range l.empty {
			if p.Board[s] != NoPiece {
				open = false
				break
			}
		}
		if !open {
			continue
		}

		if p.IsSquareAttacked(l.safe[0], them) || p.IsSquareAttacked(l.safe[1], them) || p.IsSquareAttacked(l.safe[2], them) {
			continue
		}

		m := newMove(l.king, l.kingTo, false)
		m.Castle = side
		moves = append(moves, m)
	}
	return moves
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves for the side to move.
func (p *Position) GeneratePseudoLegalMoves() []Move {
	var moves []Move
	us := p.SideToMove
	for sq, piece := range p.Board {
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		moves = append(moves, p.PseudoMovesForPiece(Square(sq), piece, false)...)
	}
	return moves
}

// LegalMoves generates all legal moves for the side to move.
// Every pseudo-legal move is played on an independent copy and kept only if
// the mover's king is not in check afterwards.
func (p *Position) LegalMoves() []Move {
	pseudo := p.GeneratePseudoLegalMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if p.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalMovesFrom returns the legal moves starting on sq.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	if !sq.IsValid() {
		return nil
	}
	piece := p.Board[sq]
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return nil
	}
	var legal []Move
	for _, m := range p.PseudoMovesForPiece(sq, piece, false) {
		if p.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal returns true if the pseudo-legal move m does not leave the
// mover's king in check.
func (p *Position) IsLegal(m Move) bool {
	us := p.SideToMove
	sim := p.snapshot()
	sim.play(m)
	return !sim.KingInCheck(us)
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	us := p.SideToMove
	for sq, piece := range p.Board {
		if piece == NoPiece || piece.Color() != us {
			continue
		}
		for _, m := range p.PseudoMovesForPiece(Square(sq), piece, false) {
			if p.IsLegal(m) {
				return true
			}
		}
	}
	return false
}
