package board

import "strings"

// Color is the side a piece or player belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposing side. Not defined for NoColor.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is the kind of a piece. Move generation switches over every
// kind, so the set is closed.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

const (
	typeLetters  = "pnbrqk"
	pieceLetters = "PNBRQKpnbrqk"
)

var typeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

var pieceSymbols = [...]string{"♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		pt = NoPieceType
	}
	return typeNames[pt]
}

// Char is the lowercase letter of the kind, as used in FEN and in
// coordinate promotion suffixes. NoPieceType gives a space.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return typeLetters[pt]
}

// PieceTypeFromChar reads a kind letter in either case.
func PieceTypeFromChar(c byte) PieceType {
	i := strings.IndexByte(typeLetters, c|0x20)
	if i < 0 {
		return NoPieceType
	}
	return PieceType(i)
}

// PieceValue is the material worth of each kind in centipawns, indexed by
// PieceType. NoPieceType is worth nothing.
var PieceValue = [7]int{100, 320, 330, 500, 900, 20000, 0}

// promotionOrder is the order promotion moves are emitted in.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// Piece is a tagged Color × PieceType value, encoded as kind + colour*6,
// or NoPiece for an empty square. The zero value is a White pawn, so
// boards are always built through Clear or setup.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece combines a kind and a side. Out of range input gives NoPiece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String is the FEN letter: uppercase for White, lowercase for Black,
// a space for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceLetters[p : p+1]
}

// Symbol is the Unicode chess glyph, or a space for NoPiece.
func (p Piece) Symbol() string {
	if p >= NoPiece {
		return " "
	}
	return pieceSymbols[p]
}

// PieceFromChar converts a FEN letter to a Piece, NoPiece if it is not one.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceLetters, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}

// Value is the material worth in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
