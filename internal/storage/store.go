// Package storage persists finished interviews as JSON documents and
// renders plain-text transcripts for download.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	resultPrefix = "interview_"
	resultExt    = ".json"
)

// Store writes interview results under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the result as an indented JSON file named after its ID.
func (s *Store) Save(result *InterviewResult) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating results directory %s: %w", s.dir, err)
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing interview result: %w", err)
	}

	path := filepath.Join(s.dir, resultPrefix+result.InterviewID+resultExt)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("writing result file %s: %w", path, err)
	}

	return nil
}

// Load reads a previously saved result by interview ID.
func (s *Store) Load(interviewID string) (*InterviewResult, error) {
	path := filepath.Join(s.dir, resultPrefix+interviewID+resultExt)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}

	var result InterviewResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing result file %s: %w", path, err)
	}

	return &result, nil
}

// List returns the IDs of all saved interviews.
func (s *Store) List() ([]string, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading results directory %s: %w", s.dir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, resultPrefix) || !strings.HasSuffix(name, resultExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, resultPrefix), resultExt))
	}

	return ids, nil
}
