package board

import (
	"fmt"
	"strings"
)

// SAN returns the Standard Algebraic Notation of a legal move in pos.
func (m Move) SAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	piece := pos.PieceAt(m.From)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		sb.WriteString(m.Castle.String())
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m, pt))
		}

		if m.Capture {
			if pt == Pawn {
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(m.To.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion])
		}
	}

	next := pos.After(m)
	if next.IsCheckmate() {
		sb.WriteByte('#')
	} else if next.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the origin qualifier needed when another piece of
// the same type can reach the same square.
func disambiguation(pos *Position, m Move, pt PieceType) string {
	var candidates []Square
	for _, other := range pos.LegalMoves() {
		if other.To != m.To || other.From == m.From {
			continue
		}
		if pos.PieceAt(other.From).Type() == pt {
			candidates = append(candidates, other.From)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('8' - m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN finds the legal move described by a SAN string.
func ParseSAN(s string, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	switch s {
	case "O-O", "0-0":
		return pos.findCastle(KingSide, s)
	case "O-O-O", "0-0-0":
		return pos.findCastle(QueenSide, s)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 && idx+1 < len(s) {
		promo = PieceTypeFromChar(s[idx+1])
		if !isPromotionType(promo) {
			return NoMove, fmt.Errorf("%w: bad promotion in %q", ErrIllegalMove, s)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = PieceTypeFromChar(s[0])
		if pt == NoPieceType {
			return NoMove, fmt.Errorf("%w: unknown piece in %q", ErrIllegalMove, s)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			fileHint = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			rankHint = 7 - int(c-'1')
		}
	}

	for _, m := range pos.LegalMoves() {
		if m.To != dest || pos.PieceAt(m.From).Type() != pt {
			continue
		}
		if fileHint >= 0 && m.From.File() != fileHint {
			continue
		}
		if rankHint >= 0 && m.From.Rank() != rankHint {
			continue
		}
		if isCapture && !m.Capture {
			continue
		}
		if m.Promotion != promo {
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("%w: no legal move matches %q", ErrIllegalMove, s)
}

// findCastle returns the legal castling move on side.
func (p *Position) findCastle(side CastleSide, s string) (Move, error) {
	for _, m := range p.LegalMoves() {
		if m.Castle == side {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s not available", ErrIllegalMove, s)
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.snapshot()

	for i, m := range moves {
		result[i] = m.SAN(&p)
		p.play(m)
	}

	return result
}
