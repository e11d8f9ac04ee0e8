package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultWindowTitle is used until the user picks a title
const DefaultWindowTitle = "audiodesk"

// WindowSettings are the persisted window preferences
type WindowSettings struct {
	Decorated bool   `json:"decorated"`
	Title     string `json:"title"`
}

// SettingsStore reads and writes window preferences in a JSON file
type SettingsStore interface {
	Load() (*WindowSettings, error)
	Save(settings *WindowSettings) error
	Path() string
}

type settingsStore struct {
	mu   sync.Mutex
	path string
}

// NewSettingsStore creates a store backed by the file at path
func NewSettingsStore(path string) SettingsStore {
	return &settingsStore{path: path}
}

// DefaultWindowSettings returns the settings used when no file exists
func DefaultWindowSettings() *WindowSettings {
	return &WindowSettings{
		Decorated: true,
		Title:     DefaultWindowTitle,
	}
}

func (s *settingsStore) Path() string {
	return s.path
}

// Load returns the stored settings, or the defaults if the file doesn't exist
func (s *settingsStore) Load() (*WindowSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultWindowSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	settings := DefaultWindowSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

// Save validates and writes the settings atomically
func (s *settingsStore) Save(settings *WindowSettings) error {
	if settings == nil {
		return fmt.Errorf("settings are required")
	}
	settings.Title = strings.TrimSpace(settings.Title)
	if settings.Title == "" {
		return fmt.Errorf("title must not be empty")
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return os.Rename(tmp, s.path)
}
