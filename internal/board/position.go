package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// castleRight returns the flag for a color and side.
func castleRight(c Color, side CastleSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSideCastle
	case c == White && side == QueenSide:
		return WhiteQueenSideCastle
	case c == Black && side == KingSide:
		return BlackKingSideCastle
	case c == Black && side == QueenSide:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// CanCastle returns true if the given side still holds the right.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&castleRight(c, side) != 0
}

// Position represents a complete chess position.
// A Position has a single owner; it is not safe for concurrent use.
type Position struct {
	Board [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Square skipped by the last double push, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture
	FullMoveNumber int    // Incremented after Black moves, starts at 1

	history []UndoRecord
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	p := &Position{}
	p.Clear()

	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range back {
		p.Board[NewSquare(file, 0)] = NewPiece(pt, Black)
		p.Board[NewSquare(file, 1)] = BlackPawn
		p.Board[NewSquare(file, 6)] = WhitePawn
		p.Board[NewSquare(file, 7)] = NewPiece(pt, White)
	}
	p.CastlingRights = AllCastling
	return p
}

// Clear resets the position to an empty board with White to move.
func (p *Position) Clear() {
	*p = Position{
		SideToMove:     White,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for sq := range p.Board {
		p.Board[sq] = NoPiece
	}
}

// Copy creates a deep copy of the position, undo history included.
func (p *Position) Copy() *Position {
	newPos := *p
	if p.history != nil {
		newPos.history = make([]UndoRecord, len(p.history))
		copy(newPos.history, p.history)
	}
	return &newPos
}

// snapshot returns an independent copy of the position without history.
// Used for simulation and search so that children never share state.
func (p *Position) snapshot() Position {
	s := *p
	s.history = nil
	return s
}

// After returns a new position with m applied, leaving p untouched.
// The returned position carries no undo history.
func (p *Position) After(m Move) *Position {
	s := p.snapshot()
	s.play(m)
	return &s
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// SetPiece places a piece on a square. Use NoPiece to empty it.
func (p *Position) SetPiece(sq Square, piece Piece) {
	if sq.IsValid() {
		p.Board[sq] = piece
	}
}

// KingSquare locates the king of color c, NoSquare if there is none.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq, piece := range p.Board {
		if piece == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// Plies returns the number of moves on the undo stack.
func (p *Position) Plies() int {
	return len(p.history)
}

// LastMove returns the most recently applied move, NoMove if none.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].Move
}

// Moves returns the applied moves in order.
func (p *Position) Moves() []Move {
	moves := make([]Move, len(p.history))
	for i, rec := range p.history {
		moves[i] = rec.Move
	}
	return moves
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(&sb, "%d  ", 8-rank)
		for file := 0; file < 8; file++ {
			piece := p.Board[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Validate checks that each side has exactly one king and no pawn stands
// on a back rank.
func (p *Position) Validate() error {
	var kings [2]int
	for sq, piece := range p.Board {
		switch piece.Type() {
		case King:
			kings[piece.Color()]++
		case Pawn:
			if r := Square(sq).Rank(); r == 0 || r == 7 {
				return fmt.Errorf("pawn on back rank at %s", Square(sq))
			}
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}
	return nil
}
