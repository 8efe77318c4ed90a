// Package ui implements the desktop chess tutor using Ebitengine.
package ui

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hailam/chesstutor/internal/render"
	"github.com/hailam/chesstutor/internal/storage"
	"github.com/hajimehoshi/ebiten/v2"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

var background = color.RGBA{30, 32, 36, 255}

// Config configures a new App.
type Config struct {
	Storage *storage.Storage // optional; nothing is persisted when nil
	Resume  string           // saved game id to continue
	Seed    uint64           // engine seed, 0 for a random one
}

// App implements ebiten.Game on top of a game.Game.
type App struct {
	game  *game.Game
	store *storage.Storage
	prefs *storage.UserPreferences

	gameID   string
	started  time.Time
	recorded bool

	view      *BoardView
	input     *InputHandler
	panel     *Panel
	feedback  *FeedbackManager
	promotion PromotionChooser

	selected board.Square
	dragging bool
	dragFrom board.Square
	hint     board.Move

	aiPending bool
	aiDue     time.Time
}

// NewApp creates the application, loading preferences and optionally a
// saved game from cfg.Storage.
func NewApp(cfg Config) (*App, error) {
	a := &App{
		store:    cfg.Storage,
		prefs:    storage.DefaultPreferences(),
		started:  time.Now(),
		view:     NewBoardView(SquareSize),
		input:    NewInputHandler(),
		selected: board.NoSquare,
		dragFrom: board.NoSquare,
		hint:     board.NoMove,
	}
	a.loadPreferences()

	var engOpts []engine.Option
	if cfg.Seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(cfg.Seed))
	}
	eng := engine.NewEngine(engOpts...)

	if cfg.Resume != "" {
		if err := a.resume(cfg.Resume, eng); err != nil {
			return nil, err
		}
	} else {
		g, err := game.New(append(a.prefs.GameOptions(), game.WithEngine(eng))...)
		if err != nil {
			return nil, err
		}
		a.game = g
	}

	a.feedback = NewFeedbackManager(a.prefs.SoundEnabled)
	a.panel = NewPanel(a)
	a.view.SetFlipped(a.game.HumanColor() == board.Black)
	a.checkFirstLaunch()
	a.scheduleAI()
	return a, nil
}

func (a *App) loadPreferences() {
	if a.store == nil {
		return
	}
	prefs, err := a.store.LoadPreferences()
	if err != nil {
		log.Printf("[UI] Failed to load preferences: %v", err)
		return
	}
	a.prefs = prefs
}

func (a *App) savePreferences() {
	if a.store == nil {
		return
	}
	a.prefs.GameMode = a.game.Mode()
	a.prefs.PlayerColor = a.game.HumanColor()
	a.prefs.Difficulty = a.game.Difficulty()
	a.prefs.LastPlayed = time.Now()
	if err := a.store.SavePreferences(a.prefs); err != nil {
		log.Printf("[UI] Failed to save preferences: %v", err)
	}
}

func (a *App) resume(id string, eng *engine.Engine) error {
	if a.store == nil {
		return fmt.Errorf("resume %s: no storage", id)
	}
	sg, err := a.store.LoadGame(id)
	if err != nil {
		return err
	}
	g, err := sg.Restore(game.WithEngine(eng))
	if err != nil {
		return err
	}
	a.game = g
	a.gameID = sg.ID
	log.Printf("[GAME] Resumed %s after %d plies", sg.ID, len(sg.Moves))
	return nil
}

func (a *App) checkFirstLaunch() {
	if a.store == nil {
		return
	}
	first, err := a.store.IsFirstLaunch()
	if err != nil {
		log.Printf("[UI] Failed to check first launch: %v", err)
		return
	}
	if !first {
		return
	}
	a.feedback.Show(fmt.Sprintf("Welcome! Press H for a hint (%d per game)", game.HintsPerGame), ToastInfo, 6*time.Second)
	if err := a.store.MarkFirstLaunchComplete(); err != nil {
		log.Printf("[UI] Failed to mark first launch complete: %v", err)
	}
}

// Update handles input and runs the computer's move when it is due.
func (a *App) Update() error {
	a.input.Update()
	a.feedback.Update()

	if a.promotion.IsVisible() {
		a.promotion.Update(a.input, a.view)
		return nil
	}

	a.handleKeys()
	if !a.panel.HandleInput(a.input) {
		a.handleBoardInput()
	}

	if a.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	if a.aiPending && !time.Now().Before(a.aiDue) {
		a.runAI()
	}
	return nil
}

func (a *App) handleKeys() {
	switch a.input.Command() {
	case CmdNewGame:
		a.NewGameAction()
	case CmdUndo:
		a.UndoAction()
	case CmdHint:
		a.HintAction()
	case CmdFlip:
		a.FlipAction()
	case CmdToggleSound:
		a.ToggleSound()
	case CmdCancel:
		a.clearSelection()
	}
}

// handleBoardInput supports both click-click and drag-and-drop moves.
func (a *App) handleBoardInput() {
	if !a.game.IsHumanTurn() || a.aiPending {
		return
	}

	mx, my := a.input.MousePosition()
	sq := a.view.ScreenToSquare(mx, my)

	if a.input.IsLeftJustPressed() {
		if sq == board.NoSquare {
			a.clearSelection()
			return
		}
		if a.selected.IsValid() && a.isTarget(a.selected, sq) {
			a.tryMove(a.selected, sq)
			return
		}
		piece := a.game.Position().PieceAt(sq)
		if piece != board.NoPiece && piece.Color() == a.game.Position().SideToMove && sq != a.selected {
			a.selectSquare(sq)
			a.dragging = true
			a.dragFrom = sq
			a.view.Invalidate()
			return
		}
		if a.selected.IsValid() && sq != a.selected {
			a.tryMove(a.selected, sq)
			return
		}
		a.dragging = sq == a.selected
		a.dragFrom = a.selected
		a.view.Invalidate()
		return
	}

	if a.dragging && a.input.IsLeftJustReleased() {
		from := a.dragFrom
		a.dragging = false
		a.dragFrom = board.NoSquare
		a.view.Invalidate()
		if sq.IsValid() && sq != from {
			a.tryMove(from, sq)
		}
	}
}

func (a *App) selectSquare(sq board.Square) {
	a.selected = sq
	a.view.Invalidate()
}

func (a *App) clearSelection() {
	a.selected = board.NoSquare
	a.dragging = false
	a.dragFrom = board.NoSquare
	a.view.Invalidate()
}

// isTarget reports whether from -> to names a legal move, including the
// king dropped onto its own rook to castle.
func (a *App) isTarget(from, to board.Square) bool {
	for _, m := range a.game.Position().LegalMovesFrom(from) {
		if m.To == to {
			return true
		}
	}
	_, ok := a.game.Position().FindMove(board.MoveRequest{From: from, To: to, Promotion: board.NoPieceType})
	return ok
}

// tryMove submits from -> to, asking for the promotion piece first when
// the move is a promotion.
func (a *App) tryMove(from, to board.Square) {
	for _, m := range a.game.Position().LegalMovesFrom(from) {
		if m.To == to && m.IsPromotion() {
			a.promotion.Show(from, to, a.game.Position().SideToMove, a.submit)
			return
		}
	}
	a.submit(board.MoveRequest{From: from, To: to, Promotion: board.NoPieceType})
}

func (a *App) submit(req board.MoveRequest) {
	res := a.game.Submit(req)
	a.clearSelection()
	if !res.Applied {
		a.feedback.OnRejected(req, res)
		return
	}
	a.feedback.OnMove(res.Move, a.game)
	a.afterMove()
}

func (a *App) afterMove() {
	a.hint = board.NoMove
	a.view.Invalidate()
	if a.game.IsOver() {
		a.recordResult()
		return
	}
	a.scheduleAI()
}

// scheduleAI arranges for the computer to move after the think delay.
func (a *App) scheduleAI() {
	if a.game.IsOver() || !a.game.IsComputerTurn() {
		a.aiPending = false
		return
	}
	a.aiPending = true
	a.aiDue = time.Now().Add(a.prefs.ThinkDelay)
}

// runAI searches on the update goroutine. The frame stalls for the
// duration of a Hard search.
func (a *App) runAI() {
	a.aiPending = false
	m, ok := a.game.AIMove()
	if !ok {
		a.view.Invalidate()
		return
	}
	a.feedback.OnMove(m, a.game)
	a.afterMove()
}

func (a *App) recordResult() {
	if a.recorded || a.store == nil {
		return
	}
	res, ok := storage.ResultFor(a.game, time.Since(a.started))
	if !ok {
		return
	}
	a.recorded = true
	if err := a.store.RecordGame(res); err != nil {
		log.Printf("[UI] Failed to record game: %v", err)
	}
	a.saveGame()
}

func (a *App) saveGame() {
	if a.store == nil || len(a.game.Moves()) == 0 {
		return
	}
	id, err := a.store.SaveGame(storage.Snapshot(a.game, a.gameID))
	if err != nil {
		log.Printf("[UI] Failed to save game: %v", err)
		return
	}
	a.gameID = id
}

// NewGameAction starts over with the current settings.
func (a *App) NewGameAction() {
	a.saveGame()
	a.game.Reset()
	a.gameID = ""
	a.started = time.Now()
	a.recorded = false
	a.clearSelection()
	a.promotion.Hide()
	a.hint = board.NoMove
	a.scheduleAI()
}

// UndoAction takes back the last move, or the last pair against the
// computer.
func (a *App) UndoAction() {
	a.aiPending = false
	if _, err := a.game.Undo(); err != nil {
		a.feedback.OnError(err)
		a.scheduleAI()
		return
	}
	a.recorded = false
	a.clearSelection()
	a.hint = board.NoMove
	a.scheduleAI()
}

// HintAction shows the suggested move for the human to move.
func (a *App) HintAction() {
	m, err := a.game.Hint()
	if err != nil {
		a.feedback.OnError(err)
		return
	}
	a.hint = m
	a.view.Invalidate()
	a.feedback.OnHint(m, a.game.HintsLeft())
}

// FlipAction turns the board around.
func (a *App) FlipAction() {
	a.view.SetFlipped(!a.view.Flipped())
}

// SetMode changes who controls each side.
func (a *App) SetMode(m game.Mode) {
	a.game.SetMode(m)
	a.savePreferences()
	a.scheduleAI()
}

// SetHumanColor changes the human's side and puts it at the bottom.
func (a *App) SetHumanColor(c board.Color) {
	a.game.SetHumanColor(c)
	a.view.SetFlipped(c == board.Black)
	a.clearSelection()
	a.savePreferences()
	a.scheduleAI()
}

// SetDifficulty changes the computer's strength.
func (a *App) SetDifficulty(d engine.Difficulty) {
	a.game.SetDifficulty(d)
	a.savePreferences()
}

// ToggleSound switches sound effects on or off and remembers the choice.
func (a *App) ToggleSound() {
	on := !a.feedback.Audio().IsEnabled()
	a.feedback.Audio().SetEnabled(on)
	a.prefs.SoundEnabled = on
	a.savePreferences()
	if on {
		a.feedback.Show("Sound on", ToastInfo, time.Second)
	} else {
		a.feedback.Show("Sound off", ToastInfo, time.Second)
	}
}

// IsAIThinking reports whether a computer move is scheduled.
func (a *App) IsAIThinking() bool {
	return a.aiPending
}

// StatusText describes the state of play for the status bar.
func (a *App) StatusText() string {
	switch {
	case a.game.IsOver():
		return a.game.ResultText()
	case a.aiPending:
		return "Computer thinking..."
	}
	s := a.game.Position().SideToMove.String() + " to move"
	if a.game.Position().InCheck() {
		s += " (check)"
	}
	return s
}

// Draw renders the board, overlays and panel.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	pos := a.game.Position()
	selected := board.NoSquare
	if a.game.IsHumanTurn() && !a.aiPending {
		selected = a.selected
	}
	hl := render.HighlightsFor(pos, selected)
	hl.Hint = a.hint

	hidden := board.NoSquare
	if a.dragging {
		hidden = a.dragFrom
	}
	a.view.Refresh(pos, hl, hidden)
	a.view.Draw(screen)

	if a.dragging && a.dragFrom.IsValid() {
		mx, my := a.input.MousePosition()
		a.view.DrawPiece(screen, pos.PieceAt(a.dragFrom), mx, my)
	}

	a.feedback.Draw(screen, a.view)
	a.promotion.Draw(screen, a.view)
	a.panel.Draw(screen)
}

// Layout returns the fixed logical screen size; Ebitengine scales it to
// the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close saves the game in progress and the preferences.
func (a *App) Close() {
	a.saveGame()
	a.savePreferences()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("[UI] Failed to close storage: %v", err)
		}
	}
}

// GameID returns the saved game id, empty before the first save.
func (a *App) GameID() string {
	return a.gameID
}
