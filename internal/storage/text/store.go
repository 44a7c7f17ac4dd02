// Package text stores the display interval as a single line of plain text.
package text

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/all-dot-files/stopwatch/internal/models"
	"github.com/all-dot-files/stopwatch/internal/storage"
	"github.com/all-dot-files/stopwatch/pkg/fileio"
)

// Store implements storage.Store for a one-line text file
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a text store. The file is only touched by Load and Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Load(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Only the first token counts, trailing text is ignored.
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", storage.ErrInvalid, s.path)
	}
	interval, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", storage.ErrInvalid, fields[0])
	}

	return &models.Settings{DisplayInterval: interval}, nil
}

func (s *Store) Save(ctx context.Context, settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := strconv.FormatFloat(settings.DisplayInterval, 'g', -1, 64) + "\n"
	if err := fileio.WriteFile(s.path, []byte(line), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
