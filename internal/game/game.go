// Package game runs a single chess game: it validates and applies human
// moves, asks the engine for computer moves and hints, keeps the move log
// and classifies the end of the game.
package game

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
)

// HintsPerGame is the number of hints a player may ask for in one game.
const HintsPerGame = 3

var (
	// ErrGameOver is returned for input after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrNotHumanTurn is returned when a human acts on the computer's turn.
	ErrNotHumanTurn = errors.New("not the human player's turn")

	// ErrNoHintsLeft is returned once the hint budget is spent.
	ErrNoHintsLeft = errors.New("no hints left")

	// ErrNothingToUndo is returned when there is no move to take back.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Mode represents the current game mode.
type Mode int

const (
	HumanVsHuman Mode = iota
	HumanVsComputer
	ComputerVsComputer
)

// String returns the mode name used in preferences and flags.
func (m Mode) String() string {
	switch m {
	case HumanVsHuman:
		return "hvh"
	case HumanVsComputer:
		return "hvc"
	case ComputerVsComputer:
		return "cvc"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "hvh", "hvc" or "cvc".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hvh":
		return HumanVsHuman, nil
	case "hvc":
		return HumanVsComputer, nil
	case "cvc":
		return ComputerVsComputer, nil
	}
	return HumanVsComputer, fmt.Errorf("unknown game mode %q", s)
}

// Result is the outcome of a submitted move request.
type Result struct {
	Applied bool
	Move    board.Move
	SAN     string
	Reason  board.RejectReason // set when the request was an illegal move
	Err     error
	Status  board.Status
}

// Game is one game in progress. It is not safe for concurrent use.
type Game struct {
	pos        *board.Position
	startFEN   string
	san        []string
	mode       Mode
	human      board.Color
	difficulty engine.Difficulty
	eng        *engine.Engine
	hintsUsed  int
}

// Option configures a Game.
type Option func(*Game)

// WithMode sets who plays each side.
func WithMode(m Mode) Option {
	return func(g *Game) { g.mode = m }
}

// WithHumanColor sets the side the human plays in HumanVsComputer.
func WithHumanColor(c board.Color) Option {
	return func(g *Game) { g.human = c }
}

// WithDifficulty sets the computer's difficulty.
func WithDifficulty(d engine.Difficulty) Option {
	return func(g *Game) { g.difficulty = d }
}

// WithEngine supplies the engine used for computer moves and hints.
func WithEngine(e *engine.Engine) Option {
	return func(g *Game) { g.eng = e }
}

// WithFEN starts the game from a FEN position instead of the setup.
func WithFEN(fen string) Option {
	return func(g *Game) { g.startFEN = fen }
}

// New creates a game. By default the human plays White against the
// computer at Medium difficulty from the standard setup.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		startFEN:   board.StartFEN,
		mode:       HumanVsComputer,
		human:      board.White,
		difficulty: engine.Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.eng == nil {
		g.eng = engine.NewEngine()
	}

	pos, err := board.ParseFEN(g.startFEN)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrInvalidFEN, err)
	}
	g.pos = pos
	return g, nil
}

// Reset starts over from the starting position with a fresh hint budget.
func (g *Game) Reset() {
	pos, err := board.ParseFEN(g.startFEN)
	if err != nil {
		// startFEN was validated by New
		panic(err)
	}
	g.pos = pos
	g.san = nil
	g.hintsUsed = 0
	log.Printf("[GAME] New game: mode=%v human=%v difficulty=%v", g.mode, g.human, g.difficulty)
}

// Position returns the current position. Callers must not modify it.
func (g *Game) Position() *board.Position {
	return g.pos
}

// StartFEN returns the FEN the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Mode returns the current game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetMode changes who plays each side.
func (g *Game) SetMode(m Mode) {
	g.mode = m
}

// HumanColor returns the side the human plays in HumanVsComputer.
func (g *Game) HumanColor() board.Color {
	return g.human
}

// SetHumanColor changes the side the human plays.
func (g *Game) SetHumanColor(c board.Color) {
	g.human = c
}

// Difficulty returns the computer's difficulty.
func (g *Game) Difficulty() engine.Difficulty {
	return g.difficulty
}

// SetDifficulty changes the computer's difficulty.
func (g *Game) SetDifficulty(d engine.Difficulty) {
	g.difficulty = d
}

// Engine returns the engine used by the game.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// HintsUsed returns how many hints were given this game.
func (g *Game) HintsUsed() int {
	return g.hintsUsed
}

// HintsLeft returns how many hints remain this game.
func (g *Game) HintsLeft() int {
	return HintsPerGame - g.hintsUsed
}

// Status classifies the current position.
func (g *Game) Status() board.Status {
	return g.pos.Status()
}

// IsOver returns true after checkmate or stalemate.
func (g *Game) IsOver() bool {
	return g.Status() != board.Ongoing
}

// Winner returns the side that gave checkmate, NoColor otherwise.
func (g *Game) Winner() board.Color {
	return g.pos.Winner()
}

// ResultText describes the end of the game, empty while it goes on.
func (g *Game) ResultText() string {
	switch g.Status() {
	case board.Checkmate:
		return fmt.Sprintf("%v wins by checkmate", g.Winner())
	case board.Stalemate:
		return "Draw by stalemate"
	default:
		return ""
	}
}

// IsHumanTurn returns true if a human is to move.
func (g *Game) IsHumanTurn() bool {
	switch g.mode {
	case HumanVsHuman:
		return true
	case ComputerVsComputer:
		return false
	default:
		return g.pos.SideToMove == g.human
	}
}

// IsComputerTurn returns true if the computer should move next.
func (g *Game) IsComputerTurn() bool {
	return !g.IsHumanTurn() && !g.IsOver()
}

// History returns the moves played so far in SAN.
func (g *Game) History() []string {
	out := make([]string, len(g.san))
	copy(out, g.san)
	return out
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	return g.pos.Moves()
}

// LastMove returns the most recent move, NoMove if none.
func (g *Game) LastMove() board.Move {
	return g.pos.LastMove()
}

// Submit validates a human move request and applies it when legal.
// A rejected request leaves the game untouched.
func (g *Game) Submit(req board.MoveRequest) Result {
	if g.IsOver() {
		return Result{Err: ErrGameOver, Status: g.Status()}
	}
	if !g.IsHumanTurn() {
		return Result{Err: ErrNotHumanTurn, Reason: board.ReasonNotYourTurn, Status: g.Status()}
	}

	m, ok := g.pos.FindMove(req)
	if !ok {
		// Play rejects without touching the position and explains why.
		_, err := g.pos.Play(req)
		res := Result{Err: err, Status: g.Status()}
		var moveErr *board.MoveError
		if errors.As(err, &moveErr) {
			res.Reason = moveErr.Reason
		}
		log.Printf("[MOVE] Rejected %v: %v", req, err)
		return res
	}

	san := g.apply(m)
	return Result{Applied: true, Move: m, SAN: san, Status: g.Status()}
}

// AIMove lets the engine choose and play a move when it is the computer's
// turn. The second result is false when the computer has nothing to do or
// no legal move; the game is then over or waiting for a human.
func (g *Game) AIMove() (board.Move, bool) {
	if !g.IsComputerTurn() {
		return board.NoMove, false
	}

	side := g.pos.SideToMove
	log.Printf("[AI] Thinking: side=%v difficulty=%v", side, g.difficulty)
	m, ok := g.eng.BestMove(g.pos, side, g.difficulty)
	if !ok {
		log.Printf("[AI] No move available")
		return board.NoMove, false
	}

	g.apply(m)
	log.Printf("[AI] Played %v (%d nodes)", m, g.eng.Nodes())
	return m, true
}

// Hint suggests a move for the human to move without playing it.
func (g *Game) Hint() (board.Move, error) {
	if g.IsOver() {
		return board.NoMove, ErrGameOver
	}
	if !g.IsHumanTurn() {
		return board.NoMove, ErrNotHumanTurn
	}
	if g.hintsUsed >= HintsPerGame {
		return board.NoMove, ErrNoHintsLeft
	}

	m, ok := g.eng.Hint(g.pos)
	if !ok {
		return board.NoMove, ErrGameOver
	}
	g.hintsUsed++
	log.Printf("[HINT] %v -> %v (%d left)", m.From, m.To, g.HintsLeft())
	return m, nil
}

// Undo takes back the last move. Against the computer it takes back the
// computer's reply too, so the human is to move again. It returns the
// number of plies taken back.
func (g *Game) Undo() (int, error) {
	n := 1
	if g.mode == HumanVsComputer && g.pos.SideToMove == g.human {
		n = 2
	}
	if g.pos.Plies() < n {
		return 0, ErrNothingToUndo
	}

	for i := 0; i < n; i++ {
		g.pos.UndoMove()
		g.san = g.san[:len(g.san)-1]
	}
	log.Printf("[MOVE] Took back %d plies", n)
	return n, nil
}

// Replay applies moves in coordinate notation, as stored in saved games.
func (g *Game) Replay(moves []string) error {
	for i, s := range moves {
		req, err := board.ParseMoveRequest(s)
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		m, ok := g.pos.FindMove(req)
		if !ok {
			return fmt.Errorf("move %d %s: %w", i+1, s, board.ErrIllegalMove)
		}
		g.apply(m)
	}
	return nil
}

// SetHintsUsed restores the hint count of a saved game.
func (g *Game) SetHintsUsed(n int) {
	g.hintsUsed = min(max(n, 0), HintsPerGame)
}

// apply plays a legal move and records it.
func (g *Game) apply(m board.Move) string {
	san := m.SAN(g.pos)
	g.pos.ApplyMove(m)
	g.san = append(g.san, san)

	switch g.Status() {
	case board.Checkmate, board.Stalemate:
		log.Printf("[GAME] %s after %s", g.ResultText(), san)
	}
	return san
}
