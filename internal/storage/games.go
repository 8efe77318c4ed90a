package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
)

const gamePrefix = "game/"

// ErrGameNotFound is returned for an unknown saved game id.
var ErrGameNotFound = errors.New("saved game not found")

// SavedGame is a game as persisted: the start position and the moves in
// coordinate notation, enough to replay it exactly.
type SavedGame struct {
	ID         string            `json:"id"`
	StartFEN   string            `json:"start_fen"`
	Moves      []string          `json:"moves"`
	Mode       game.Mode         `json:"mode"`
	HumanColor board.Color       `json:"human_color"`
	Difficulty engine.Difficulty `json:"difficulty"`
	HintsUsed  int               `json:"hints_used"`
	Status     string            `json:"status"`
	Result     string            `json:"result,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Snapshot captures g for saving. An empty id lets SaveGame pick one.
func Snapshot(g *game.Game, id string) *SavedGame {
	moves := g.Moves()
	uci := make([]string, len(moves))
	for i, m := range moves {
		uci[i] = m.String()
	}

	return &SavedGame{
		ID:         id,
		StartFEN:   g.StartFEN(),
		Moves:      uci,
		Mode:       g.Mode(),
		HumanColor: g.HumanColor(),
		Difficulty: g.Difficulty(),
		HintsUsed:  g.HintsUsed(),
		Status:     g.Status().String(),
		Result:     g.ResultText(),
	}
}

// Restore rebuilds the game. Extra options, such as the engine, are
// applied after the saved settings.
func (sg *SavedGame) Restore(opts ...game.Option) (*game.Game, error) {
	all := []game.Option{
		game.WithFEN(sg.StartFEN),
		game.WithMode(sg.Mode),
		game.WithHumanColor(sg.HumanColor),
		game.WithDifficulty(sg.Difficulty),
	}
	g, err := game.New(append(all, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", sg.ID, err)
	}
	if err := g.Replay(sg.Moves); err != nil {
		return nil, fmt.Errorf("restore %s: %w", sg.ID, err)
	}
	g.SetHintsUsed(sg.HintsUsed)
	return g, nil
}

// SaveGame stores sg, assigning a fresh human readable id when sg.ID is
// empty. It returns the id.
func (s *Storage) SaveGame(sg *SavedGame) (string, error) {
	if sg.ID == "" {
		id, err := s.newGameID()
		if err != nil {
			return "", err
		}
		sg.ID = id
	}
	sg.UpdatedAt = time.Now()

	if err := s.put(gamePrefix+sg.ID, sg); err != nil {
		return "", err
	}
	return sg.ID, nil
}

// LoadGame returns the saved game with the given id.
func (s *Storage) LoadGame(id string) (*SavedGame, error) {
	var sg SavedGame
	found, err := s.get(gamePrefix+id, &sg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return &sg, nil
}

// ListGames returns all saved games, most recently updated first.
func (s *Storage) ListGames() ([]SavedGame, error) {
	var games []SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var sg SavedGame
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sg)
			})
			if err != nil {
				return err
			}
			games = append(games, sg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
	return games, nil
}

// DeleteGame removes a saved game.
func (s *Storage) DeleteGame(id string) error {
	key := []byte(gamePrefix + id)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// newGameID picks a petname that is not in use yet.
func (s *Storage) newGameID() (string, error) {
	base := petname.Generate(2, "-")
	id := base
	for n := 2; ; n++ {
		var probe SavedGame
		found, err := s.get(gamePrefix+id, &probe)
		if err != nil {
			return "", err
		}
		if !found {
			return id, nil
		}
		id = base + "-" + strconv.Itoa(n)
	}
}
