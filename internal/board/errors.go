package board

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check for them.
var (
	// ErrIllegalMove indicates a requested move not in the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidSquare indicates an out-of-range or malformed square.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")
)

// RejectReason explains why a move request was rejected.
type RejectReason int

const (
	ReasonNone RejectReason = iota
	ReasonInvalidSquare
	ReasonNoPiece
	ReasonNotYourTurn
	ReasonBlockedByOwnPiece
	ReasonWouldLeaveKingInCheck
	ReasonInvalidPieceMovement
	ReasonPromotionRequired
)

// String returns a human readable explanation.
func (r RejectReason) String() string {
	switch r {
	case ReasonInvalidSquare:
		return "square is off the board"
	case ReasonNoPiece:
		return "no piece on the source square"
	case ReasonNotYourTurn:
		return "that piece belongs to the other side"
	case ReasonBlockedByOwnPiece:
		return "destination holds one of your pieces"
	case ReasonWouldLeaveKingInCheck:
		return "move would leave your king in check"
	case ReasonInvalidPieceMovement:
		return "piece cannot move that way"
	case ReasonPromotionRequired:
		return "a promotion piece must be chosen"
	default:
		return "none"
	}
}

// MoveError is returned when a move request is rejected. It wraps
// ErrInvalidSquare or ErrIllegalMove.
type MoveError struct {
	Request MoveRequest
	Reason  RejectReason
	Err     error
}

// Error returns the formatted rejection.
func (e *MoveError) Error() string {
	return fmt.Sprintf("%v %s: %s", e.Err, e.Request, e.Reason)
}

// Unwrap returns the underlying sentinel error.
func (e *MoveError) Unwrap() error {
	return e.Err
}
