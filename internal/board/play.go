package board

// FindMove looks up the legal move selected by req.
//
// Dragging the king onto its own rook selects castling on that side, as
// users naturally castle that way. Such a request carries no promotion.
func (p *Position) FindMove(req MoveRequest) (Move, bool) {
	for _, m := range p.LegalMovesFrom(req.From) {
		if req.Matches(m) {
			return m, true
		}
		if m.IsCastling() && req.Promotion == NoPieceType && req.To == layout(p.SideToMove, m.Castle).rook {
			return m, true
		}
	}
	return NoMove, false
}

// Play validates req against the legal move set and applies it.
// On rejection the position is left unchanged and a *MoveError is returned.
func (p *Position) Play(req MoveRequest) (Move, error) {
	if !req.From.IsValid() || !req.To.IsValid() {
		return NoMove, &MoveError{Request: req, Reason: ReasonInvalidSquare, Err: ErrInvalidSquare}
	}

	m, ok := p.FindMove(req)
	if !ok {
		return NoMove, &MoveError{Request: req, Reason: p.rejectReason(req), Err: ErrIllegalMove}
	}

	p.ApplyMove(m)
	return m, nil
}

// rejectReason analyzes why req is not a legal move.
func (p *Position) rejectReason(req MoveRequest) RejectReason {
	piece := p.Board[req.From]
	if piece == NoPiece {
		return ReasonNoPiece
	}
	if piece.Color() != p.SideToMove {
		return ReasonNotYourTurn
	}

	dest := p.Board[req.To]
	if dest != NoPiece && dest.Color() == piece.Color() {
		return ReasonBlockedByOwnPiece
	}

	promotes := false
	for _, m := range p.PseudoMovesForPiece(req.From, piece, false) {
		if m.From != req.From || m.To != req.To {
			continue
		}
		if m.Promotion != req.Promotion {
			promotes = true
			continue
		}
		// Generated but filtered out by the legality check
		return ReasonWouldLeaveKingInCheck
	}
	if promotes {
		if req.Promotion == NoPieceType {
			return ReasonPromotionRequired
		}
		return ReasonInvalidPieceMovement
	}

	return ReasonInvalidPieceMovement
}
