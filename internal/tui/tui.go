// Package tui is a terminal front end built on tview. The board is a
// selectable table; moves can also be typed into the input field.
package tui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hailam/chesstutor/internal/storage"
)

const (
	numrows = 8
	numcols = 8
)

// Theme colors the board table.
type Theme struct {
	SquareDark  tcell.Color
	SquareLight tcell.Color
	SquareHigh  tcell.Color
	SquareHint  tcell.Color
	SquareCheck tcell.Color
	SquareLast  tcell.Color
	Piece       tcell.Color
	Rank        tcell.Color
	File        tcell.Color
}

// ThemeBasic is the default theme.
var ThemeBasic = Theme{
	SquareDark:  tcell.Color188,
	SquareLight: tcell.Color230,
	SquareHigh:  tcell.Color226,
	SquareHint:  tcell.Color223,
	SquareCheck: tcell.Color218,
	SquareLast:  tcell.Color187,
	Piece:       tcell.Color232,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
}

// Config configures the terminal UI.
type Config struct {
	Game       *game.Game
	Store      *storage.Storage // optional, records finished games
	ThinkDelay time.Duration
}

// App is the running terminal UI.
type App struct {
	app    *tview.Application
	table  *tview.Table
	log    *tview.TextView
	input  *tview.InputField
	layout *tview.Grid

	game       *game.Game
	store      *storage.Storage
	thinkDelay time.Duration
	started    time.Time
	recorded   bool

	theme    Theme
	flipped  bool
	selected board.Square
	targets  map[board.Square]bool
	hint     board.Move

	// While set, the AI goroutine owns the game.
	thinking atomic.Bool
	// search is held while the AI goroutine reads or writes the game.
	search  sync.WaitGroup
	stopped atomic.Bool
}

// New builds the UI around cfg.Game. It does not take over the terminal
// until Run is called.
func New(cfg Config) *App {
	a := &App{
		app:        tview.NewApplication(),
		table:      tview.NewTable(),
		log:        tview.NewTextView(),
		input:      tview.NewInputField(),
		game:       cfg.Game,
		store:      cfg.Store,
		thinkDelay: cfg.ThinkDelay,
		started:    time.Now(),
		theme:      ThemeBasic,
		selected:   board.NoSquare,
		targets:    make(map[board.Square]bool),
		hint:       board.NoMove,
	}
	a.flipped = a.game.Mode() == game.HumanVsComputer && a.game.HumanColor() == board.Black

	a.log.SetDynamicColors(true).SetScrollable(true)
	a.log.SetBorder(true)
	a.log.SetTitle(" Moves ")

	a.input.SetLabel("> ").SetFieldWidth(0)
	a.input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := a.input.GetText()
			a.input.SetText("")
			a.handleInput(text)
		case tcell.KeyTab:
			a.app.SetFocus(a.table)
		case tcell.KeyEscape:
			a.stop()
		}
	})

	a.initTable()

	a.layout = tview.NewGrid().
		SetRows(numrows+1, -1, 1).
		SetColumns(4*(numcols+1), -1).
		AddItem(a.table, 0, 0, 1, 1, 0, 0, true).
		AddItem(a.log, 0, 1, 2, 1, 0, 0, false).
		AddItem(a.input, 2, 0, 1, 2, 0, 0, false)

	a.printf("[yellow]Mode %s[-], you play %s, difficulty %s", a.game.Mode(), a.game.HumanColor(), a.game.Difficulty())
	a.printf("Type moves like e2e4 or Nf3, or: hint, undo, new, flip, quit. Tab switches focus.")
	a.render()
	return a
}

// Run takes over the terminal until the user quits. It returns once any
// computer search in progress has finished.
func (a *App) Run() error {
	a.scheduleAI()
	err := a.app.SetRoot(a.layout, true).SetFocus(a.input).Run()
	a.stopped.Store(true)
	a.search.Wait()
	if a.game.IsOver() {
		a.recordResult()
	}
	return err
}

// Game waits for a computer search in progress and returns the game. Do
// not call it while Run is active.
func (a *App) Game() *game.Game {
	a.search.Wait()
	return a.game
}

// stop ends Run. A computer move still being searched is applied to the
// game but not shown.
func (a *App) stop() {
	a.stopped.Store(true)
	a.app.Stop()
}

func (a *App) initTable() {
	a.table.SetSelectable(true, true)
	a.table.Select(numrows-1, 1).SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			a.stop()
		case tcell.KeyTab:
			a.app.SetFocus(a.input)
		}
	}).SetSelectedFunc(func(row, col int) {
		a.selectSquare(cellToSquare(row, col, a.flipped))
	})
}

// cellToSquare maps a table cell to a board square. Label cells map to
// NoSquare.
func cellToSquare(row, col int, flipped bool) board.Square {
	if row < 0 || row >= numrows || col < 1 || col > numcols {
		return board.NoSquare
	}
	file, rank := col-1, row
	if flipped {
		file, rank = numcols-1-file, numrows-1-rank
	}
	return board.NewSquare(file, rank)
}

// squareToCell is the inverse of cellToSquare.
func squareToCell(sq board.Square, flipped bool) (row, col int) {
	file, rank := sq.File(), sq.Rank()
	if flipped {
		file, rank = numcols-1-file, numrows-1-rank
	}
	return rank, file + 1
}

// render redraws every table cell from the game state.
func (a *App) render() {
	pos := a.game.Position()
	last := a.game.LastMove()
	check := board.NoSquare
	if pos.InCheck() {
		check = pos.KingSquare(pos.SideToMove)
	}

	for row := 0; row < numrows; row++ {
		rankSq := cellToSquare(row, 1, a.flipped)
		a.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf(" %c ", '8'-rune(rankSq.Rank()))).
			SetTextColor(a.theme.Rank).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))

		for col := 1; col <= numcols; col++ {
			sq := cellToSquare(row, col, a.flipped)
			bg := a.theme.SquareDark
			if (sq.File()+sq.Rank())%2 == 0 {
				bg = a.theme.SquareLight
			}
			switch {
			case sq == check:
				bg = a.theme.SquareCheck
			case sq == a.selected:
				bg = a.theme.SquareHigh
			case a.targets[sq]:
				bg = a.theme.SquareHint
			case a.hint != board.NoMove && (sq == a.hint.From || sq == a.hint.To):
				bg = a.theme.SquareHint
			case last != board.NoMove && (sq == last.From || sq == last.To):
				bg = a.theme.SquareLast
			}

			a.table.SetCell(row, col, tview.NewTableCell(" "+pos.PieceAt(sq).Symbol()+" ").
				SetTextColor(a.theme.Piece).
				SetBackgroundColor(bg).
				SetAlign(tview.AlignCenter))
		}
	}

	for col := 1; col <= numcols; col++ {
		file := cellToSquare(0, col, a.flipped).File()
		a.table.SetCell(numrows, col, tview.NewTableCell(fmt.Sprintf(" %c ", 'a'+rune(file))).
			SetTextColor(a.theme.File).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
	a.table.SetCell(numrows, 0, tview.NewTableCell("").SetSelectable(false))
}

// selectSquare handles a table selection: pick a piece, then a target.
func (a *App) selectSquare(sq board.Square) {
	if a.thinking.Load() || sq == board.NoSquare {
		return
	}

	if a.selected != board.NoSquare && a.targets[sq] {
		from := a.selected
		a.clearSelection()
		req := board.MoveRequest{From: from, To: sq, Promotion: board.NoPieceType}
		if a.needsPromotion(req) {
			req.Promotion = board.Queen
		}
		a.submit(req)
		return
	}

	if sq == a.selected {
		a.clearSelection()
		a.render()
		return
	}

	a.clearSelection()
	moves := a.game.Position().LegalMovesFrom(sq)
	if len(moves) > 0 && a.game.IsHumanTurn() {
		a.selected = sq
		for _, m := range moves {
			a.targets[m.To] = true
		}
	}
	a.render()
}

func (a *App) clearSelection() {
	a.selected = board.NoSquare
	clear(a.targets)
}

func (a *App) needsPromotion(req board.MoveRequest) bool {
	for _, m := range a.game.Position().LegalMovesFrom(req.From) {
		if m.To == req.To && m.IsPromotion() {
			return true
		}
	}
	return false
}

// handleInput runs a command or a typed move.
func (a *App) handleInput(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	switch strings.ToLower(text) {
	case "quit", "exit":
		a.stop()
		return
	}
	if a.thinking.Load() {
		a.printf("[gray]The computer is thinking...[-]")
		return
	}

	switch strings.ToLower(text) {
	case "hint":
		m, err := a.game.Hint()
		if err != nil {
			a.printf("[red]%s[-]", capitalize(err.Error()))
			return
		}
		a.hint = m
		a.table.Select(squareToCell(m.From, a.flipped))
		a.printf("Hint: %s (%d left)", m.SAN(a.game.Position()), a.game.HintsLeft())
		a.render()
		return
	case "undo":
		n, err := a.game.Undo()
		if err != nil {
			a.printf("[red]%s[-]", capitalize(err.Error()))
			return
		}
		a.clearSelection()
		a.hint = board.NoMove
		a.printf("Took back %d move(s)", n)
		a.render()
		return
	case "new":
		a.game.Reset()
		a.started = time.Now()
		a.recorded = false
		a.clearSelection()
		a.hint = board.NoMove
		a.printf("[yellow]New game[-]")
		a.render()
		a.scheduleAI()
		return
	case "flip":
		a.flipped = !a.flipped
		a.render()
		return
	}

	req, err := parseTyped(text, a.game.Position())
	if err != nil {
		a.printf("[red]%s[-]", capitalize(err.Error()))
		return
	}
	a.clearSelection()
	a.submit(req)
}

// parseTyped accepts coordinate notation first, then SAN.
func parseTyped(text string, pos *board.Position) (board.MoveRequest, error) {
	if req, err := board.ParseMoveRequest(text); err == nil {
		return req, nil
	}
	m, err := board.ParseSAN(text, pos)
	if err != nil {
		return board.MoveRequest{}, fmt.Errorf("cannot read move %q", text)
	}
	return m.Request(), nil
}

func (a *App) submit(req board.MoveRequest) {
	res := a.game.Submit(req)
	if !res.Applied {
		switch {
		case errors.Is(res.Err, game.ErrGameOver):
			a.printf("[red]The game is over. Type new to play again.[-]")
		case res.Reason != board.ReasonNone:
			a.printf("[red]Illegal move %s: %s[-]", req, res.Reason)
		default:
			a.printf("[red]%s[-]", capitalize(res.Err.Error()))
		}
		a.render()
		return
	}
	a.hint = board.NoMove
	a.afterMove(res.SAN)
}

// afterMove logs a played move and hands over to the computer.
func (a *App) afterMove(san string) {
	ply := len(a.game.Moves())
	if ply%2 == 1 {
		a.printf("%d. %s", (ply+1)/2, san)
	} else {
		a.printf("%d... %s", ply/2, san)
	}
	a.render()

	if a.game.IsOver() {
		a.printf("[yellow]%s[-]", a.game.ResultText())
		a.recordResult()
		return
	}
	a.scheduleAI()
}

// scheduleAI starts the computer's reply on a goroutine when it is the
// computer's turn. The move is shown from the UI goroutine.
func (a *App) scheduleAI() {
	if !a.game.IsComputerTurn() || !a.thinking.CompareAndSwap(false, true) {
		return
	}

	a.search.Add(1)
	go func() {
		time.Sleep(a.thinkDelay)
		_, ok := a.game.AIMove()
		san := ""
		if ok {
			history := a.game.History()
			san = history[len(history)-1]
		}
		a.search.Done()

		// Nothing drains queued updates once Run has returned.
		if a.stopped.Load() {
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.thinking.Store(false)
			if !ok {
				log.Printf("[AI] No reply in %s", a.game.Position().ToFEN())
				return
			}
			a.afterMove(san)
		})
	}()
}

func (a *App) recordResult() {
	if a.store == nil || a.recorded {
		return
	}
	res, ok := storage.ResultFor(a.game, time.Since(a.started))
	if !ok {
		return
	}
	if err := a.store.RecordGame(res); err != nil {
		log.Printf("[STORAGE] Failed to record game: %v", err)
		return
	}
	a.recorded = true
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.log, format+"\n", args...)
	a.log.ScrollToEnd()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RedirectLog sends the standard logger to the file at dest so that log
// output does not corrupt the screen. The caller closes the file.
func RedirectLog(dest, prefix string) (*os.File, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return f, nil
}
