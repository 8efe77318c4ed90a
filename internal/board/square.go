// Package board implements the chess rules: a mailbox board, legal move
// generation, move application with undo, and game-end classification.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Index 0 is the top-left corner of the internal array: rank 0 holds the
// human 8th rank and rank 7 the human 1st rank. A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Square constants for all 64 squares, in internal order.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	NoSquare Square = 64
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) % 8
}

// Rank returns the internal rank (row) of the square.
// 0 is the human 8th rank, 7 is the human 1st rank.
func (sq Square) Rank() int {
	return int(sq) / 8
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '8'-sq.Rank())
}

// NewSquare creates a square from internal file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	human := int(s[1]) - '1'

	if file < 0 || file > 7 || human < 0 || human > 7 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(file, 7-human), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Offset returns the square shifted by df files and dr internal ranks.
// The second result is false when the target falls off the board.
func (sq Square) Offset(df, dr int) (Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// RelativeRank returns the rank counted from a color's own back rank.
// A White pawn on its start square and a Black pawn on its start square
// both have relative rank 1.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return 7 - sq.Rank()
	}
	return sq.Rank()
}

// forward is the internal rank delta a pawn of color c advances by.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}
