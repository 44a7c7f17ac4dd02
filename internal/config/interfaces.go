package config

import (
	"context"
	"time"

	"github.com/all-dot-files/stopwatch/internal/models"
)

// ConfigStore defines the interface for configuration persistence
type ConfigStore interface {
	// Load loads the configuration, keeping defaults on failure
	Load(ctx context.Context) error

	// Save saves the configuration
	Save(ctx context.Context) error

	// Get returns the current configuration
	Get() *models.Settings

	// SetDisplayInterval validates and records the display interval
	SetDisplayInterval(d time.Duration) error

	GetConfigPath() string
	GetDriver() string

	Close() error
}

var _ ConfigStore = (*Manager)(nil)
