package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/resume-matcher/backend/internal/match"
)

// Report is the persisted outcome of one match request. Only the ranked
// output is stored, never the resume documents themselves.
type Report struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	ResumeCount int            `json:"resume_count"`
	QueryChars  int            `json:"query_chars"`
	Results     []match.Result `json:"results"`
}

// ReportStorage defines the interface for saving match reports
type ReportStorage interface {
	Save(report *Report) error
	Get(id string) (*Report, error)
	Close() error
}

// FileStorage implements ReportStorage using the local file system
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based report store
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Save writes the report to a JSON file
func (fs *FileStorage) Save(report *Report) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := filepath.Join(fs.baseDir, safeFilename(report.ID))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves a report from disk
func (fs *FileStorage) Get(id string) (*Report, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path := filepath.Join(fs.baseDir, safeFilename(id))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

// safeFilename converts a report ID to a safe filename
func safeFilename(id string) string {
	safe := ""
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safe += string(r)
		} else {
			safe += "_"
		}
	}
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe + ".json"
}
