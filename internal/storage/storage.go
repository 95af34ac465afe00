package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	gameKeyPrefix  = "game:"
)

// Record is a finished game: the notated moves plus the board snapshot after
// each move, enough to replay the game without re-running legality logic.
type Record struct {
	ID         string    `json:"id"`
	PlayedAt   time.Time `json:"played_at"`
	Result     string    `json:"result"` // "1-0", "0-1", "1/2-1/2", "*"
	Difficulty string    `json:"difficulty"`
	Moves      []string  `json:"moves"`     // notated, in order
	Snapshots  []string  `json:"snapshots"` // FEN after each move, in order
}

// UserPreferences stores user settings.
type UserPreferences struct {
	Username     string    `json:"username"`
	Difficulty   string    `json:"difficulty"`
	PlayerColor  string    `json:"player_color"`
	AutosaveGame bool      `json:"autosave_game"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		Difficulty:   "medium",
		PlayerColor:  "white",
		AutosaveGame: true,
		LastPlayed:   time.Now(),
	}
}

// GameStats stores game statistics.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	WinsByDiff    map[string]int `json:"wins_by_difficulty"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_win_streak"`
}

// WinRate returns the percentage of games won.
func (s *GameStats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByDiff: make(map[string]int),
	}
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", dir, err)
	}
	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame persists a finished game. An empty ID gets a timestamp-derived
// one; the (possibly assigned) ID is returned.
func (s *Storage) SaveGame(rec *Record) (string, error) {
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	if rec.ID == "" {
		rec.ID = rec.PlayedAt.UTC().Format("20060102-150405.000000000")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+rec.ID), data)
	})
	return rec.ID, err
}

// LoadGame loads a saved game by ID.
func (s *Storage) LoadGame(id string) (*Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("no saved game %q", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListGames returns all saved games, newest first.
func (s *Storage) ListGames() ([]*Record, error) {
	var recs []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].PlayedAt.After(recs[j].PlayedAt)
	})
	return recs, nil
}

// DeleteGame removes a saved game by ID.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gameKeyPrefix + id))
	})
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returning defaults if not found.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returning empty stats if not found.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordResult updates statistics for a completed game from the human
// player's point of view.
func (s *Storage) RecordResult(won, draw bool, difficulty string) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	switch {
	case draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		diff := strings.ToLower(difficulty)
		stats.WinsByDiff[diff]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}
