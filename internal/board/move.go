package board

import "fmt"

// CastleSide identifies which side a castling move goes to.
type CastleSide uint8

const (
	NoCastle CastleSide = iota
	KingSide
	QueenSide
)

// String returns the castling notation for the side.
func (cs CastleSide) String() string {
	switch cs {
	case KingSide:
		return "O-O"
	case QueenSide:
		return "O-O-O"
	default:
		return ""
	}
}

// Move is a value produced by the generator. It does not touch a Position
// until applied. Moves are comparable with ==.
type Move struct {
	From       Square
	To         Square
	Promotion  PieceType // NoPieceType unless the move promotes
	Capture    bool
	EnPassant  bool
	DoublePush bool
	Castle     CastleSide
}

// NoMove represents an absent move.
var NoMove = Move{From: NoSquare, To: NoSquare, Promotion: NoPieceType}

// newMove creates a plain move.
func newMove(from, to Square, capture bool) Move {
	return Move{From: from, To: to, Promotion: NoPieceType, Capture: capture}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Castle != NoCastle
}

// IsQuiet returns true if this is not a capture or promotion.
func (m Move) IsQuiet() bool {
	return !m.Capture && !m.IsPromotion()
}

// String returns the coordinate notation of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// MoveRequest is a candidate move as supplied by an input layer.
type MoveRequest struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType when not given
}

// String returns the coordinate notation of the request.
func (r MoveRequest) String() string {
	s := r.From.String() + r.To.String()
	if r.Promotion != NoPieceType {
		s += string(r.Promotion.Char())
	}
	return s
}

// Matches reports whether m is the move described by the request.
func (r MoveRequest) Matches(m Move) bool {
	return m.From == r.From && m.To == r.To && m.Promotion == r.Promotion
}

// Request returns the request that selects m.
func (m Move) Request() MoveRequest {
	return MoveRequest{From: m.From, To: m.To, Promotion: m.Promotion}
}

// ParseMoveRequest parses a coordinate move string such as "e2e4" or "e7e8q".
func ParseMoveRequest(s string) (MoveRequest, error) {
	req := MoveRequest{From: NoSquare, To: NoSquare, Promotion: NoPieceType}
	if len(s) != 4 && len(s) != 5 {
		return req, fmt.Errorf("%w: invalid move string %q", ErrInvalidSquare, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return req, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return req, err
	}
	req.From, req.To = from, to

	if len(s) == 5 {
		pt := PieceTypeFromChar(s[4])
		if !isPromotionType(pt) {
			return req, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		req.Promotion = pt
	}

	return req, nil
}

// UndoRecord stores what is needed to reverse one applied move.
type UndoRecord struct {
	Move           Move
	Moved          Piece
	Captured       Piece
	CapturedSquare Square // differs from Move.To for en passant
	EnPassant      Square
	CastlingRights CastlingRights
	HalfMoveClock  int
	FullMoveNumber int
}

// isPromotionType reports whether a pawn may promote to pt.
func isPromotionType(pt PieceType) bool {
	return pt == Knight || pt == Bishop || pt == Rook || pt == Queen
}
