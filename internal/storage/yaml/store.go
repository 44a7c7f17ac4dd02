package yaml

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/internal/storage"
	"github.com/all-dot-files/stopwatch/pkg/fileio"
	"gopkg.in/yaml.v3"
)

// Store implements storage.Store for YAML file
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a new YAML store
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Load(ctx context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, s.path)
		}
		return nil, err
	}

	// Decode into a map first so a missing key is told apart from a zero value.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalid, err)
	}
	if _, ok := raw["display_interval"]; !ok {
		return nil, fmt.Errorf("%w: display_interval missing in %s", storage.ErrInvalid, s.path)
	}

	var settings models.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalid, err)
	}
	return &settings, nil
}

func (s *Store) Save(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return fileio.WriteFile(s.path, data, 0600)
}
