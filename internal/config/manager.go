package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/internal/storage"
	"github.com/all-dot-files/stopwatch/internal/storage/sqlite"
	textStore "github.com/all-dot-files/stopwatch/internal/storage/text"
	yamlStore "github.com/all-dot-files/stopwatch/internal/storage/yaml"
	apperrors "github.com/all-dot-files/stopwatch/pkg/errors"
)

const (
	DefaultConfigDir  = ".config/stopwatch"
	DefaultConfigFile = "stopwatch_config.txt"
)

// Storage drivers, picked from the config file extension
const (
	DriverText   = "text"
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Manager handles configuration persistence
type Manager struct {
	configPath string
	driver     string
	settings   *models.Settings
	store      storage.Store
}

// NewManager creates a new configuration manager
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	return &Manager{
		configPath: configPath,
		driver:     DriverFor(configPath),
		settings:   models.DefaultSettings(),
	}, nil
}

// DriverFor returns the storage driver used for path
func DriverFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DriverYAML
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	default:
		return DriverText
	}
}

// GetConfigPath returns the path to the configuration file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// GetDriver returns the storage driver name
func (m *Manager) GetDriver() string {
	return m.driver
}

// Load loads the settings from disk. On any failure the defaults stay in
// effect and the returned error explains why.
func (m *Manager) Load(ctx context.Context) error {
	const op = "config.load"

	store, err := m.openStore()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrIO, op, "unable to open config store")
	}

	settings, err := store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.Wrap(err, apperrors.ErrNotFound, op, "no saved configuration").
			WithSuggestion("the current interval is saved on exit")
	case errors.Is(err, storage.ErrInvalid):
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, op, "invalid data in config file")
	case err != nil:
		return apperrors.Wrap(err, apperrors.ErrIO, op, "unable to read config file")
	}

	if err := settings.Validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, op, "saved display interval out of range")
	}

	m.settings = settings
	return nil
}

// Save saves the settings to disk
func (m *Manager) Save(ctx context.Context) error {
	const op = "config.save"

	store, err := m.openStore()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrIO, op, "unable to open config store")
	}
	if err := store.Save(ctx, m.settings); err != nil {
		return apperrors.Wrap(err, apperrors.ErrIO, op, "unable to write config file")
	}
	return nil
}

// Get returns the current settings
func (m *Manager) Get() *models.Settings {
	return m.settings
}

// SetDisplayInterval validates and records a new display interval
func (m *Manager) SetDisplayInterval(d time.Duration) error {
	if err := models.ValidateInterval(d); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, "config.set", "display interval out of range").
			WithSuggestion("use a value between 0.1 and 60 seconds")
	}
	m.settings.DisplayInterval = d.Seconds()
	return nil
}

// Close releases the underlying store
func (m *Manager) Close() error {
	if m.store == nil {
		return nil
	}
	err := m.store.Close()
	m.store = nil
	return err
}

func (m *Manager) openStore() (storage.Store, error) {
	if m.store != nil {
		return m.store, nil
	}

	switch m.driver {
	case DriverSQLite:
		store, err := sqlite.NewStore(m.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		m.store = store
	case DriverYAML:
		m.store = yamlStore.NewStore(m.configPath)
	default:
		m.store = textStore.NewStore(m.configPath)
	}
	return m.store, nil
}
