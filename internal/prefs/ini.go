package prefs

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/ini.v1"
)

// INIProvider stores preferences in an INI file, one section per client
type INIProvider struct {
	mu   sync.Mutex
	path string
	file *ini.File
}

// NewINIProvider opens path, creating an empty file on first save
func NewINIProvider(path string) (*INIProvider, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences file: %w", err)
	}
	return &INIProvider{path: path, file: f}, nil
}

// Store returns the store of clientID
func (p *INIProvider) Store(clientID string) Store {
	return &iniStore{p: p, section: clientID}
}

// Close is a no-op; every Set is saved immediately
func (p *INIProvider) Close() error {
	return nil
}

type iniStore struct {
	p       *INIProvider
	section string
}

func (s *iniStore) Get(_ context.Context, key string) (string, bool, error) {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	sec, err := s.p.file.GetSection(s.section)
	if err != nil {
		return "", false, nil
	}
	if !sec.HasKey(key) {
		return "", false, nil
	}
	return sec.Key(key).String(), true, nil
}

func (s *iniStore) Set(_ context.Context, key, value string) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	s.p.file.Section(s.section).Key(key).SetValue(value)
	if err := s.p.file.SaveTo(s.p.path); err != nil {
		return fmt.Errorf("failed to save preferences file: %w", err)
	}
	return nil
}
