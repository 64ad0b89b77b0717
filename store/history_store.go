package store

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/halcyonhq/halcyon/models"
)

const defaultHistoryFile = "history.json"

// FileHistoryStore persists the engine's history blob to a single locked
// file, mirroring the task store's checksum and atomic-write discipline.
type FileHistoryStore struct {
	filePath string
	flk      *flock.Flock
	format   string
}

// NewFileHistoryStore creates a history store backed by the given file.
// An empty path defaults to 'history.json' in the current directory; an
// empty format defaults to JSON.
func NewFileHistoryStore(path, format string) (*FileHistoryStore, error) {
	if path == "" {
		path = defaultHistoryFile
	}
	normalized, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if err := ensureDataFile(path); err != nil {
		return nil, err
	}
	return &FileHistoryStore{
		filePath: path,
		flk:      flock.New(path),
		format:   normalized,
	}, nil
}

// Load reads the full history. Missing or unparseable data degrades to an
// empty history with a warning rather than failing: the engine must always
// have something to compute over.
func (s *FileHistoryStore) Load() (models.History, error) {
	if err := s.flk.Lock(); err != nil {
		return models.NewHistory(), fmt.Errorf("failed to acquire lock for history load: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := readDataFile(s.filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read history from %s, starting empty: %v\n", s.filePath, err)
		return models.NewHistory(), nil
	}
	if len(data) == 0 {
		return models.NewHistory(), nil
	}

	var history models.History
	if err := unmarshalAs(s.format, data, &history); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history in %s is corrupt, starting empty: %v\n", s.filePath, err)
		return models.NewHistory(), nil
	}

	// Older files may omit collections entirely; keep them non-nil.
	if history.MoodHistory == nil {
		history.MoodHistory = []models.MoodEntry{}
	}
	if history.TaskPerformance == nil {
		history.TaskPerformance = []models.PerformanceEntry{}
	}
	if history.OptimalTimes == nil {
		history.OptimalTimes = map[models.TaskTypeKey][]models.OptimalSlot{}
	}
	return history, nil
}

// Save replaces the stored history wholesale.
func (s *FileHistoryStore) Save(history models.History) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for history save: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := marshalAs(s.format, history)
	if err != nil {
		return fmt.Errorf("failed to marshal history to %s: %w", s.format, err)
	}
	return writeDataFile(s.filePath, data)
}

// Close releases the file lock held by the store.
func (s *FileHistoryStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
