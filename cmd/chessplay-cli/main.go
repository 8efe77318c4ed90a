// Command chessplay-cli plays chess against the tutor engine in a terminal,
// either line by line or, with -tui, in a full screen interface.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hailam/chesstutor/internal/storage"
	"github.com/hailam/chesstutor/internal/tui"
)

var (
	difficulty = flag.String("difficulty", "", "computer strength: easy, medium or hard (default: saved preference)")
	side       = flag.String("color", "", "side you play: white or black (default: saved preference)")
	mode       = flag.String("mode", "", "hvh, hvc or cvc (default: saved preference)")
	dbDir      = flag.String("db", "", "database directory (default: per-user data dir)")
	resume     = flag.String("resume", "", "saved game id to continue")
	noColor    = flag.Bool("nocolor", false, "disable colored output")
	useTUI     = flag.Bool("tui", false, "full screen terminal interface")
	seed       = flag.Uint64("seed", 0, "engine random seed (0 = random)")
	logFile    = flag.String("log", "", "log file (default: cli.log in the data dir)")
)

// maxAutoPlies stops computer-vs-computer games that do not finish.
const maxAutoPlies = 400

func main() {
	flag.Parse()

	if *noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	logPath := *logFile
	if logPath == "" {
		logPath = storage.GetLogPath("cli.log")
	}
	lf, err := tui.RedirectLog(logPath, "[chessplay-cli] ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lf.Close()

	store := openStorage()
	if store != nil {
		defer store.Close()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if p, err := store.LoadPreferences(); err != nil {
			log.Printf("[STORAGE] Failed to load preferences: %v", err)
		} else {
			prefs = p
		}
	}
	if err := applyFlags(prefs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var engOpts []engine.Option
	if *seed != 0 {
		engOpts = append(engOpts, engine.WithSeed(*seed))
	}
	eng := engine.NewEngine(engOpts...)

	g, gameID, err := loadGame(store, prefs, eng)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := &session{
		game:    g,
		store:   store,
		gameID:  gameID,
		started: time.Now(),
		out:     os.Stdout,
	}

	if *useTUI {
		app := tui.New(tui.Config{Game: g, Store: store, ThinkDelay: prefs.ThinkDelay})
		if err := app.Run(); err != nil {
			log.Printf("tui: %v", err)
		}
		s.game = app.Game()
		// The TUI records finished games itself.
		s.recorded = true
	} else {
		s.run(os.Stdin)
	}

	s.save()
	if store != nil {
		prefs.LastPlayed = time.Now()
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("[STORAGE] Failed to save preferences: %v", err)
		}
	}
}

func openStorage() *storage.Storage {
	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("[STORAGE] Running without storage: %v", err)
		return nil
	}
	return store
}

// applyFlags overrides saved preferences with the flags given.
func applyFlags(prefs *storage.UserPreferences) error {
	if *difficulty != "" {
		d, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			return err
		}
		prefs.Difficulty = d
	}
	if *mode != "" {
		m, err := game.ParseMode(*mode)
		if err != nil {
			return err
		}
		prefs.GameMode = m
	}
	switch strings.ToLower(*side) {
	case "":
	case "white", "w":
		prefs.PlayerColor = board.White
	case "black", "b":
		prefs.PlayerColor = board.Black
	default:
		return fmt.Errorf("unknown color %q", *side)
	}
	return nil
}

func loadGame(store *storage.Storage, prefs *storage.UserPreferences, eng *engine.Engine) (*game.Game, string, error) {
	if *resume == "" {
		g, err := game.New(append(prefs.GameOptions(), game.WithEngine(eng))...)
		return g, "", err
	}
	if store == nil {
		return nil, "", errors.New("cannot resume without storage")
	}
	sg, err := store.LoadGame(*resume)
	if err != nil {
		return nil, "", err
	}
	g, err := sg.Restore(game.WithEngine(eng))
	if err != nil {
		return nil, "", err
	}
	return g, sg.ID, nil
}

// session is one line mode run.
type session struct {
	game     *game.Game
	store    *storage.Storage
	gameID   string
	started  time.Time
	recorded bool
	out      io.Writer
}

func (s *session) flipped() bool {
	return s.game.Mode() == game.HumanVsComputer && s.game.HumanColor() == board.Black
}

func (s *session) show() {
	fmt.Fprintln(s.out)
	drawBoard(s.out, s.game.Position(), s.game.LastMove(), s.flipped())
}

func (s *session) run(r io.Reader) {
	fmt.Fprintf(s.out, "Mode %s, you play %s, difficulty %s. Type help for commands.\n",
		s.game.Mode(), s.game.HumanColor(), s.game.Difficulty())
	s.show()
	s.computerTurns()

	scanner := bufio.NewScanner(r)
	for {
		s.prompt()
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		if quit := s.handle(strings.TrimSpace(scanner.Text())); quit {
			return
		}
	}
}

func (s *session) prompt() {
	if s.game.IsOver() {
		fmt.Fprint(s.out, "(game over) > ")
		return
	}
	fmt.Fprintf(s.out, "%s to move > ", s.game.Position().SideToMove)
}

// handle runs one input line. It reports true when the user quits.
func (s *session) handle(line string) bool {
	switch strings.ToLower(line) {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, "Moves: e2e4, e7e8q, Nf3, O-O. Commands: hint, undo, new, board, moves, list, stats, quit.")
	case "board":
		s.show()
	case "moves":
		fmt.Fprintln(s.out, strings.Join(s.game.History(), " "))
	case "hint":
		m, err := s.game.Hint()
		if err != nil {
			errorText.Fprintln(s.out, err)
			break
		}
		infoText.Fprintf(s.out, "Try %s (%d hints left)\n", m.SAN(s.game.Position()), s.game.HintsLeft())
	case "undo":
		n, err := s.game.Undo()
		if err != nil {
			errorText.Fprintln(s.out, err)
			break
		}
		infoText.Fprintf(s.out, "Took back %d move(s)\n", n)
		s.show()
	case "new":
		s.save()
		s.game.Reset()
		s.gameID = ""
		s.started = time.Now()
		s.recorded = false
		s.show()
		s.computerTurns()
	case "list":
		s.list()
	case "stats":
		s.stats()
	default:
		s.move(line)
	}
	return false
}

func (s *session) move(text string) {
	req, err := board.ParseMoveRequest(text)
	if err != nil {
		m, sanErr := board.ParseSAN(text, s.game.Position())
		if sanErr != nil {
			errorText.Fprintf(s.out, "Cannot read move %q\n", text)
			return
		}
		req = m.Request()
	}

	res := s.game.Submit(req)
	if !res.Applied {
		switch {
		case res.Reason != board.ReasonNone:
			errorText.Fprintf(s.out, "Illegal move %s: %s\n", req, res.Reason)
		default:
			errorText.Fprintln(s.out, res.Err)
		}
		return
	}

	fmt.Fprintf(s.out, "You played %s\n", res.SAN)
	s.show()
	s.finished()
	s.computerTurns()
}

// computerTurns plays computer moves until a human is to move or the
// game ends.
func (s *session) computerTurns() {
	for plies := 0; s.game.IsComputerTurn(); plies++ {
		if plies >= maxAutoPlies {
			infoText.Fprintln(s.out, "Stopping automatic play.")
			return
		}
		fmt.Fprint(s.out, "Thinking...")
		if _, ok := s.game.AIMove(); !ok {
			fmt.Fprintln(s.out)
			return
		}
		history := s.game.History()
		fmt.Fprintf(s.out, " %s plays %s\n", s.game.Position().SideToMove.Other(), history[len(history)-1])
		s.show()
		if s.finished() {
			return
		}
	}
}

// finished announces and records the end of the game.
func (s *session) finished() bool {
	if !s.game.IsOver() {
		return false
	}
	endText.Fprintln(s.out, s.game.ResultText())
	if s.store == nil || s.recorded {
		return true
	}
	s.recorded = true
	res, ok := storage.ResultFor(s.game, time.Since(s.started))
	if !ok {
		return true
	}
	if err := s.store.RecordGame(res); err != nil {
		log.Printf("[STORAGE] Failed to record game: %v", err)
	}
	return true
}

// save stores the current game when it has any moves.
func (s *session) save() {
	if s.store == nil || len(s.game.Moves()) == 0 {
		return
	}
	id, err := s.store.SaveGame(storage.Snapshot(s.game, s.gameID))
	if err != nil {
		log.Printf("[STORAGE] Failed to save game: %v", err)
		return
	}
	s.gameID = id
	if !s.game.IsOver() {
		fmt.Fprintf(s.out, "Game saved as %s (resume with -resume %s)\n", id, id)
	}
}

func (s *session) list() {
	if s.store == nil {
		errorText.Fprintln(s.out, "No storage available")
		return
	}
	games, err := s.store.ListGames()
	if err != nil {
		errorText.Fprintln(s.out, err)
		return
	}
	if len(games) == 0 {
		fmt.Fprintln(s.out, "No saved games")
		return
	}
	for _, sg := range games {
		fmt.Fprintf(s.out, "%-24s %-10s %3d plies  %s\n",
			sg.ID, sg.Status, len(sg.Moves), sg.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (s *session) stats() {
	if s.store == nil {
		errorText.Fprintln(s.out, "No storage available")
		return
	}
	st, err := s.store.LoadStats()
	if err != nil {
		errorText.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Played %d: %d won, %d lost, %d drawn (%.0f%%). Best streak %d, hints used %d.\n",
		st.GamesPlayed, st.Wins, st.Losses, st.Draws, st.GetWinRate(), st.LongestWinStrk, st.HintsUsed)
}
