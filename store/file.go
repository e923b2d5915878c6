// Package store persists the activated license key between runs.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/gestionpro/lib-license-go/model"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoStoredLicense is returned when no license has been persisted yet
	ErrNoStoredLicense = errors.New("no stored license")
	// ErrMachineMismatch is returned when the stored license was activated on another machine
	ErrMachineMismatch = errors.New("stored license belongs to another machine")
)

// FileStore keeps the activated license in a YAML file readable only by its owner
type FileStore struct {
	path   string
	logger log.Logger
}

// NewFileStore creates a store backed by path
func NewFileStore(path string, logger log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the file the license is stored in
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored license and checks it was activated for machineID
func (s *FileStore) Load(machineID string) (model.StoredLicense, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.StoredLicense{}, ErrNoStoredLicense
	}

	if err != nil {
		return model.StoredLicense{}, fmt.Errorf("failed to read license file: %w", err)
	}

	var stored model.StoredLicense
	if err := yaml.Unmarshal(raw, &stored); err != nil {
		return model.StoredLicense{}, fmt.Errorf("failed to decode license file: %w", err)
	}

	if strings.TrimSpace(stored.LicenseKey) == "" {
		return model.StoredLicense{}, ErrNoStoredLicense
	}

	if stored.MachineID != machineID {
		s.logger.Warnf("Stored license was activated on machine %s, current machine is %s", stored.MachineID, machineID)

		return stored, ErrMachineMismatch
	}

	return stored, nil
}

// Save writes the license atomically: a temporary file is written then renamed
func (s *FileStore) Save(stored model.StoredLicense) error {
	raw, err := yaml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode license file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create license directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".license-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary license file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to restrict license file permissions: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write license file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write license file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace license file: %w", err)
	}

	s.logger.Debugf("License stored in %s", s.path)

	return nil
}

// Clear removes the stored license. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove license file: %w", err)
	}

	return nil
}
