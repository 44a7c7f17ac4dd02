package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/internal/storage"
)

const displayIntervalKey = "display_interval"

// Store implements storage.Store on a SQLite settings table
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at dbPath
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates tables if they don't exist
func (s *Store) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (*models.Settings, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, displayIntervalKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no %s row", storage.ErrNotFound, displayIntervalKey)
	}
	if err != nil {
		return nil, err
	}
	if !value.Valid {
		return nil, fmt.Errorf("%w: %s is NULL", storage.ErrInvalid, displayIntervalKey)
	}

	interval, err := strconv.ParseFloat(value.String, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", storage.ErrInvalid, value.String)
	}
	return &models.Settings{DisplayInterval: interval}, nil
}

func (s *Store) Save(ctx context.Context, settings *models.Settings) error {
	query := `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	value := strconv.FormatFloat(settings.DisplayInterval, 'g', -1, 64)
	_, err := s.db.ExecContext(ctx, query, displayIntervalKey, value)
	return err
}
