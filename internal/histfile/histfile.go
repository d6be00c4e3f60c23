// Package histfile loads athlete history from disk. Daily check-ins
// and training sessions are CSV by default, with JSON accepted for
// either file via the .json extension. CSV columns bind by header
// name, blank cells stay unset, and unrecognized columns are ignored,
// so exports from other tracking tools load without trimming.
package histfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// FileProvider reads history files from the local filesystem.
type FileProvider struct{}

var _ contract.HistoryProvider = &FileProvider{} // Compile-time check

// NewFileProvider creates a new file-backed history provider.
func NewFileProvider() *FileProvider {
	return &FileProvider{}
}

// LoadDaily implements the HistoryProvider interface. The daily file is
// required: without check-ins there is nothing to score.
func (p *FileProvider) LoadDaily(path string) ([]schema.DailyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open daily history: %w", err)
	}
	defer f.Close()

	if isJSONFile(path) {
		var days []schema.DailyRecord
		if err := json.NewDecoder(f).Decode(&days); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return days, nil
	}

	days, err := ParseDailyCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return days, nil
}

// LoadSessions implements the HistoryProvider interface. A missing
// sessions file is not an error: subjective-only logs are valid, the
// objective detectors just stay silent.
func (p *FileProvider) LoadSessions(path string) ([]schema.SessionRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []schema.SessionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session history: %w", err)
	}
	defer f.Close()

	if isJSONFile(path) {
		var sessions []schema.SessionRecord
		if err := json.NewDecoder(f).Decode(&sessions); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return sessions, nil
	}

	sessions, err := ParseSessionsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return sessions, nil
}

func isJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
