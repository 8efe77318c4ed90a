// Package uci speaks a UCI-style line protocol so the engine can be driven
// by scripts, test harnesses and chess GUIs.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
)

// UCI implements the protocol over any reader and writer. Searches run
// synchronously, so "go" blocks until the move is printed.
type UCI struct {
	engine     *engine.Engine
	position   *board.Position
	difficulty engine.Difficulty
	out        io.Writer
}

// New creates a protocol handler playing at Medium.
func New(eng *engine.Engine) *UCI {
	return &UCI{
		engine:     eng,
		position:   board.NewPosition(),
		difficulty: engine.Medium,
	}
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Difficulty returns the difficulty used by a plain "go".
func (u *UCI) Difficulty() engine.Difficulty {
	return u.difficulty
}

// SetDifficulty sets the difficulty used by a plain "go".
func (u *UCI) SetDifficulty(d engine.Difficulty) {
	u.difficulty = d
}

// Run reads commands from r until "quit" or end of input, writing replies
// to w.
func (u *UCI) Run(r io.Reader, w io.Writer) error {
	u.out = w
	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.position = board.NewPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "hint":
			u.handleHint()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			u.handleDisplay()
		case "perft":
			u.handlePerft(args)
		case "quit":
			return nil
		default:
			u.printf("info string Unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

func (u *UCI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) handleUCI() {
	u.println("id name Chess Tutor")
	u.println("id author Chess Tutor Team")
	u.println("")
	u.println("option name Difficulty type combo default medium var easy var medium var hard")
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// On any error the previous position is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		p, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err == nil {
			err = p.Validate()
		}
		if err != nil {
			u.printf("info string Invalid FEN: %v\n", err)
			return
		}
		pos = p
	default:
		u.printf("info string Unknown position type: %s\n", args[0])
		return
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := parseMove(pos, s)
			if err != nil {
				u.printf("info string Invalid move: %v\n", err)
				return
			}
			pos.ApplyMove(m)
		}
	}
	u.position = pos
}

// parseMove resolves coordinate notation to a legal move in pos.
func parseMove(pos *board.Position, s string) (board.Move, error) {
	req, err := board.ParseMoveRequest(s)
	if err != nil {
		return board.NoMove, err
	}
	m, ok := pos.FindMove(req)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
	}
	return m, nil
}

// handleGo plays the configured difficulty, or with "depth N" reports the
// best move at that depth.
func (u *UCI) handleGo(args []string) {
	depth := 0
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "depth" {
			depth, _ = strconv.Atoi(args[i+1])
		}
	}

	pos := u.position.Copy()
	var (
		m  board.Move
		ok bool
	)
	if depth > 0 {
		start := time.Now()
		ranked := u.engine.Rank(pos, pos.SideToMove, depth)
		if len(ranked) > 0 {
			m, ok = ranked[0].Move, true
			u.sendInfo(engine.SearchInfo{
				Depth: depth,
				Score: ranked[0].Score,
				Nodes: u.engine.Nodes(),
				Time:  time.Since(start),
				Move:  m,
			})
		}
	} else {
		m, ok = u.engine.BestMove(pos, pos.SideToMove, u.difficulty)
	}

	if !ok {
		u.println("bestmove 0000")
		return
	}
	u.printf("bestmove %s\n", m)
}

func (u *UCI) handleHint() {
	m, ok := u.engine.Hint(u.position.Copy())
	if !ok {
		u.println("hint none")
		return
	}
	u.printf("hint %s %s\n", m, m.SAN(u.position))
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	if u.out == nil {
		return
	}
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score cp %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %d", uint64(float64(info.Nodes)/info.Time.Seconds())))
	}
	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.String())
	}
	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "difficulty":
		d, err := engine.ParseDifficulty(strings.ToLower(strings.Join(value, " ")))
		if err != nil {
			u.printf("info string %v\n", err)
			return
		}
		u.difficulty = d
	default:
		u.printf("info string Unknown option: %s\n", strings.Join(name, " "))
	}
}

func (u *UCI) handleDisplay() {
	u.println(u.position.String())
	u.printf("Fen: %s\n", u.position.ToFEN())
	u.printf("Status: %v\n", u.position.Status())
	u.printf("Eval: %s\n", engine.ScoreToString(u.engine.Evaluate(u.position)))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
