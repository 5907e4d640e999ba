package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each document in a JSON file. Writes go through a
// temporary file and a rename so a crash mid-write cannot corrupt the
// previous snapshot.
type FileStore struct {
	mainPath     string
	paymentsPath string
}

// NewFileStore creates a file store over the two document paths
func NewFileStore(mainPath, paymentsPath string) *FileStore {
	return &FileStore{
		mainPath:     mainPath,
		paymentsPath: paymentsPath,
	}
}

// LoadMain reads the main document, or returns an empty one if the file
// does not exist yet
func (s *FileStore) LoadMain(_ context.Context) (*MainDocument, error) {
	data, err := os.ReadFile(s.mainPath)
	if os.IsNotExist(err) {
		return NewMainDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.mainPath, err)
	}

	doc := NewMainDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.mainPath, err)
	}
	doc.normalize()
	return doc, nil
}

// SaveMain writes the main document atomically
func (s *FileStore) SaveMain(_ context.Context, doc *MainDocument) error {
	return writeJSON(s.mainPath, doc)
}

// LoadPayments reads the payments document, or returns an empty ledger if
// the file does not exist yet
func (s *FileStore) LoadPayments(_ context.Context) (PaymentsDocument, error) {
	data, err := os.ReadFile(s.paymentsPath)
	if os.IsNotExist(err) {
		return PaymentsDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.paymentsPath, err)
	}

	doc := PaymentsDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.paymentsPath, err)
	}
	return doc, nil
}

// SavePayments writes the payments document atomically
func (s *FileStore) SavePayments(_ context.Context, doc PaymentsDocument) error {
	return writeJSON(s.paymentsPath, doc)
}

// writeJSON marshals v and replaces path with one rename
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
