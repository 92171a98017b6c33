package mapping

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-import/internal/logging"
	"fjacquet/statement-import/internal/models"

	"gopkg.in/yaml.v3"
)

// TemplateStore persists confirmed column mappings keyed by header
// signature, so a repeat upload with an identical schema skips the guessing.
type TemplateStore interface {
	Get(signature string) (models.ColumnMapping, bool, error)
	Put(signature string, m models.ColumnMapping) error
	All() (map[string]models.ColumnMapping, error)
}

// FileTemplateStore keeps templates in a single YAML file. A missing file is
// an empty store, never an error. Templates are only ever added or
// overwritten, never deleted.
type FileTemplateStore struct {
	path string
	log  logging.Logger
}

// NewFileTemplateStore creates a store backed by the given YAML file.
func NewFileTemplateStore(path string, logger logging.Logger) *FileTemplateStore {
	return &FileTemplateStore{path: path, log: logger}
}

// Get looks up the template for an exact header signature.
func (s *FileTemplateStore) Get(signature string) (models.ColumnMapping, bool, error) {
	templates, err := s.load()
	if err != nil {
		return models.ColumnMapping{}, false, err
	}
	m, ok := templates[signature]
	return m, ok, nil
}

// Put saves a template, overwriting any prior template for the signature.
func (s *FileTemplateStore) Put(signature string, m models.ColumnMapping) error {
	templates, err := s.load()
	if err != nil {
		return err
	}
	templates[signature] = m

	data, err := yaml.Marshal(templates)
	if err != nil {
		return fmt.Errorf("marshaling mapping templates: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating template directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing mapping templates: %w", err)
	}

	s.log.WithField("signature", signature).Debug("Saved mapping template")
	return nil
}

// All returns every saved template.
func (s *FileTemplateStore) All() (map[string]models.ColumnMapping, error) {
	return s.load()
}

func (s *FileTemplateStore) load() (map[string]models.ColumnMapping, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.ColumnMapping{}, nil
		}
		return nil, fmt.Errorf("reading mapping templates: %w", err)
	}

	templates := map[string]models.ColumnMapping{}
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing mapping templates: %w", err)
	}
	if templates == nil {
		templates = map[string]models.ColumnMapping{}
	}
	return templates, nil
}
