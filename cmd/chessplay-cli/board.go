package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/hailam/chesstutor/internal/board"
)

const (
	lightSquare = color.BgYellow
	darkSquare  = color.BgGreen
	lastSquare  = color.BgCyan
	checkSquare = color.BgRed
	whitePiece  = color.FgHiWhite
	blackPiece  = color.FgBlack
)

var (
	labelText = color.New(color.FgHiBlack)
	errorText = color.New(color.FgRed)
	infoText  = color.New(color.FgCyan)
	endText   = color.New(color.FgYellow, color.Bold)
)

// drawBoard prints pos with rank and file labels. White's view puts the
// 8th rank on top; flipped shows Black's view.
func drawBoard(w io.Writer, pos *board.Position, last board.Move, flipped bool) {
	check := board.NoSquare
	if pos.InCheck() {
		check = pos.KingSquare(pos.SideToMove)
	}

	for r := 0; r < 8; r++ {
		rank := r
		if flipped {
			rank = 7 - r
		}
		labelText.Fprintf(w, "%c ", '8'-rune(rank))

		for f := 0; f < 8; f++ {
			file := f
			if flipped {
				file = 7 - f
			}
			sq := board.NewSquare(file, rank)

			bg := darkSquare
			if (file+rank)%2 == 0 {
				bg = lightSquare
			}
			switch {
			case sq == check:
				bg = checkSquare
			case last != board.NoMove && (sq == last.From || sq == last.To):
				bg = lastSquare
			}

			p := pos.PieceAt(sq)
			switch {
			case p == board.NoPiece && color.NoColor:
				fmt.Fprint(w, " . ")
			case p == board.NoPiece:
				color.New(bg).Fprint(w, "   ")
			case p.Color() == board.White:
				color.New(bg, whitePiece, color.Bold).Fprintf(w, " %s ", p)
			default:
				color.New(bg, blackPiece, color.Bold).Fprintf(w, " %s ", p)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "  ")
	for f := 0; f < 8; f++ {
		file := f
		if flipped {
			file = 7 - f
		}
		labelText.Fprintf(w, " %c ", 'a'+rune(file))
	}
	fmt.Fprintln(w)
}
