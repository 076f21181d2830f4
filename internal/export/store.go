package export

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jvsales/faultctl/internal/record"
)

// Store materializes exports as files under a root directory.
type Store struct {
	root string
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// SaveCSV writes the CSV export and returns the file path.
func (s *Store) SaveCSV(records []record.FaultRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, f, err := s.create(CSVFilename(s.now()))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return "", err
	}
	return path, nil
}

// SaveAnalytics writes the analytics JSON export and returns the file path.
func (s *Store) SaveAnalytics(records []record.FaultRecord, exportedBy string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	path, f, err := s.create(AnalyticsFilename(now))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteAnalytics(f, records, exportedBy, now); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) create(name string) (string, *os.File, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(s.root, name)
	f, err := os.Create(path)
	if err != nil {
		return "", nil, err
	}
	return path, f, nil
}
