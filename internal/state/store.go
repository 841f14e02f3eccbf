package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/wxterm/cityweather/internal/models"
)

// Storage keys. Values are opaque JSON blobs, one key per write.
const (
	favoritesKey = "favorites"
	lastCityKey  = "last_city"
)

// Store persists small pieces of application state in a sqlite
// key-value table. Reads never fail from the caller's point of view:
// a missing key, an unreadable database or corrupt JSON all degrade to
// "nothing stored".
type Store struct {
	dbPath string
	log    *zap.Logger
}

// NewStore creates a store backed by the sqlite database at dbPath.
func NewStore(dbPath string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dbPath: dbPath, log: log}
}

// ensureSchema creates the app_state table if needed. Safe to call
// multiple times.
func (s *Store) ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating app_state table: %w", err)
	}
	return nil
}

// get reads the raw value for a key. The second return is false when
// the key is absent.
func (s *Store) get(key string) (string, bool, error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return "", false, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := s.ensureSchema(db); err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying %s: %w", key, err)
	}

	return value, true, nil
}

// set writes the raw value for a key, atomically per call.
func (s *Store) set(key, value string) error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := s.ensureSchema(db); err != nil {
		return err
	}

	query := `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := db.Exec(query, key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	return nil
}

// LoadFavorites returns the persisted favorites list, or an empty list
// when nothing usable is stored.
func (s *Store) LoadFavorites() []models.City {
	raw, ok, err := s.get(favoritesKey)
	if err != nil {
		s.log.Debug("loading favorites failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var cities []models.City
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		s.log.Debug("stored favorites are corrupt, ignoring", zap.Error(err))
		return nil
	}
	return cities
}

// SaveFavorites persists the favorites list.
func (s *Store) SaveFavorites(cities []models.City) error {
	if cities == nil {
		cities = []models.City{}
	}
	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	return s.set(favoritesKey, string(raw))
}

// LoadLastCity returns the persisted last-viewed city, or nil when
// nothing usable is stored.
func (s *Store) LoadLastCity() *models.City {
	raw, ok, err := s.get(lastCityKey)
	if err != nil {
		s.log.Debug("loading last city failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var city models.City
	if err := json.Unmarshal([]byte(raw), &city); err != nil {
		s.log.Debug("stored last city is corrupt, ignoring", zap.Error(err))
		return nil
	}
	return &city
}

// SaveLastCity persists the last-viewed city.
func (s *Store) SaveLastCity(city models.City) error {
	raw, err := json.Marshal(city)
	if err != nil {
		return fmt.Errorf("encoding last city: %w", err)
	}
	return s.set(lastCityKey, string(raw))
}
