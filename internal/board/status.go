package board

// Status is the game-end classification of a position.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Status classifies the position: no legal moves and in check is
// checkmate, no legal moves otherwise is stalemate.
func (p *Position) Status() Status {
	if p.HasLegalMoves() {
		return Ongoing
	}
	if p.InCheck() {
		return Checkmate
	}
	return Stalemate
}

// IsCheck returns true if the side to move is in check.
func (p *Position) IsCheck() bool {
	return p.InCheck()
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// Winner returns the winning color on checkmate, NoColor otherwise.
func (p *Position) Winner() Color {
	if p.IsCheckmate() {
		return p.SideToMove.Other()
	}
	return NoColor
}
