package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// DefaultThinkDelay is how long the computer pretends to think before the
// search starts.
const DefaultThinkDelay = 600 * time.Millisecond

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string            `json:"username"`
	Difficulty   engine.Difficulty `json:"difficulty"`
	GameMode     game.Mode         `json:"game_mode"`
	PlayerColor  board.Color       `json:"player_color"`
	ThinkDelay   time.Duration     `json:"think_delay"`
	SoundEnabled bool              `json:"sound_enabled"`
	LastPlayed   time.Time         `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		Difficulty:   engine.Medium,
		GameMode:     game.HumanVsComputer,
		PlayerColor:  board.White,
		ThinkDelay:   DefaultThinkDelay,
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// GameOptions returns the game options the preferences describe.
func (p *UserPreferences) GameOptions() []game.Option {
	return []game.Option{
		game.WithMode(p.GameMode),
		game.WithHumanColor(p.PlayerColor),
		game.WithDifficulty(p.Difficulty),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByMode     map[string]int `json:"wins_by_mode"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	HintsUsed      int            `json:"hints_used"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByMode: make(map[string]int),
		WinsByDiff: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Won        bool
	Draw       bool
	Mode       game.Mode
	Difficulty engine.Difficulty
	HintsUsed  int
	Duration   time.Duration
}

// ResultFor describes a finished game from the human's side.
// The second result is false while the game is still going, and for
// games without exactly one human player, which do not count in the
// statistics.
func ResultFor(g *game.Game, duration time.Duration) (GameResult, bool) {
	if !g.IsOver() || g.Mode() != game.HumanVsComputer {
		return GameResult{}, false
	}
	res := GameResult{
		Mode:       g.Mode(),
		Difficulty: g.Difficulty(),
		HintsUsed:  g.HintsUsed(),
		Duration:   duration,
	}
	if g.Status() == board.Stalemate {
		res.Draw = true
	} else {
		res.Won = g.Winner() == g.HumanColor()
	}
	return res, true
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts = opts.WithLogger(nil) // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.get(keyPreferences, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if _, err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	stats.HintsUsed += result.HintsUsed

	modeKey := result.Mode.String()
	diffKey := result.Difficulty.String()

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByMode[modeKey]++
		stats.WinsByDiff[diffKey]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// put stores v as JSON under key.
func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the JSON stored under key into v. It reports false, and
// leaves v untouched, when the key does not exist.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err != nil {
		return found, fmt.Errorf("load %s: %w", key, err)
	}
	return found, nil
}
