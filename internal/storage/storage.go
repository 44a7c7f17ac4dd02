package storage

import (
	"context"
	"errors"

	"github.com/all-dot-files/stopwatch/internal/models"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("settings not found")

// ErrInvalid is returned by Load when the saved value cannot be parsed
var ErrInvalid = errors.New("invalid settings data")

// Store persists the stopwatch settings between runs
type Store interface {
	// Load reads the saved settings
	Load(ctx context.Context) (*models.Settings, error)
	// Save replaces the saved settings
	Save(ctx context.Context, settings *models.Settings) error
	Close() error
}
