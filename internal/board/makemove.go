package board

// ApplyMove applies a generated move to the position and pushes an
// UndoRecord. The move is not validated; use Play for input coming from
// outside the engine.
func (p *Position) ApplyMove(m Move) {
	rec := p.play(m)
	p.history = append(p.history, rec)
}

// play applies m and returns the record needed to reverse it.
func (p *Position) play(m Move) UndoRecord {
	us := p.SideToMove
	them := us.Other()
	piece := p.Board[m.From]

	rec := UndoRecord{
		Move:           m,
		Moved:          piece,
		Captured:       NoPiece,
		CapturedSquare: NoSquare,
		EnPassant:      p.EnPassant,
		CastlingRights: p.CastlingRights,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}

	// Handle captures
	if m.EnPassant {
		// The captured pawn sits one rank behind the target square.
		capSq, _ := m.To.Offset(0, -forward(us))
		rec.Captured = p.Board[capSq]
		rec.CapturedSquare = capSq
		p.Board[capSq] = NoPiece
	} else if captured := p.Board[m.To]; captured != NoPiece {
		rec.Captured = captured
		rec.CapturedSquare = m.To
	}

	// Move the piece, promoting if requested
	p.Board[m.From] = NoPiece
	if m.IsPromotion() {
		p.Board[m.To] = NewPiece(m.Promotion, us)
	} else {
		p.Board[m.To] = piece
	}

	// Castling relocates the rook as well
	if m.IsCastling() {
		l := layout(us, m.Castle)
		p.Board[l.rookTo] = p.Board[l.rook]
		p.Board[l.rook] = NoPiece
	}

	// Update castling rights
	if piece.Type() == King {
		p.CastlingRights &^= castleRight(us, KingSide) | castleRight(us, QueenSide)
	}
	p.CastlingRights &^= cornerRight(m.From)
	if rec.Captured != NoPiece {
		p.CastlingRights &^= cornerRight(rec.CapturedSquare)
	}

	// En passant target exists only right after a double push
	p.EnPassant = NoSquare
	if m.DoublePush {
		p.EnPassant = Square((int(m.From) + int(m.To)) / 2)
	}

	if piece.Type() == Pawn || rec.Captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	return rec
}

// cornerRight returns the castling right tied to a rook's original corner.
func cornerRight(sq Square) CastlingRights {
	switch sq {
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// UndoMove reverses the last applied move. It returns the move undone and
// false if there was nothing to undo.
func (p *Position) UndoMove() (Move, bool) {
	if len(p.history) == 0 {
		return NoMove, false
	}
	rec := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.unplay(rec)
	return rec.Move, true
}

// unplay restores the position from rec.
func (p *Position) unplay(rec UndoRecord) {
	m := rec.Move
	us := p.SideToMove.Other()
	p.SideToMove = us

	// A promoted piece goes back as the pawn that moved
	p.Board[m.From] = rec.Moved
	p.Board[m.To] = NoPiece

	if m.IsCastling() {
		l := layout(us, m.Castle)
		p.Board[l.rook] = p.Board[l.rookTo]
		p.Board[l.rookTo] = NoPiece
	}

	if rec.Captured != NoPiece {
		p.Board[rec.CapturedSquare] = rec.Captured
	}

	p.EnPassant = rec.EnPassant
	p.CastlingRights = rec.CastlingRights
	p.HalfMoveClock = rec.HalfMoveClock
	p.FullMoveNumber = rec.FullMoveNumber
}
