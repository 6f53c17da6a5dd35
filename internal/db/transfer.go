package db

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Export returns the whole document as pretty-printed JSON
func (s *Store) Export() (string, error) {
	data, err := s.Data()
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(out), nil
}

// Import replaces the whole document. Anything without jobs and template
// arrays is rejected with ErrInvalidImport and the stored state is kept.
func (s *Store) Import(raw []byte) error {
	data, err := decodeDocument(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(data); err != nil {
		return err
	}
	s.log.Info("document imported", zap.Int("jobs", len(data.Jobs)), zap.Int("template", len(data.Template)))
	return nil
}

// ExportFilename names a backup file after the day it was taken
func ExportFilename(t time.Time) string {
	return "job-tracker-backup-" + t.Format("2006-01-02") + ".json"
}
