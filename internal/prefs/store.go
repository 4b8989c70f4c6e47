// Package prefs persists per-client display preferences.
//
// A Store is the durable key/value storage of one client. Writes are not
// validated; consumers degrade unknown values to their defaults.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"domain_expiry/internal/model"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name
var ErrUnknownBackend = errors.New("unknown preferences backend")

// Store is the preference storage of a single client
type Store interface {
	// Get returns the stored value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value durably before returning
	Set(ctx context.Context, key, value string) error
}

// Provider hands out the Store of a client
type Provider interface {
	Store(clientID string) Store
	Close() error
}

// GetOr returns the stored value or def when absent
func GetOr(ctx context.Context, s Store, key, def string) (string, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Load reads both preferences, creating absent keys with their defaults
func Load(ctx context.Context, s Store) (model.Preferences, error) {
	p := model.DefaultPreferences()

	theme, ok, err := s.Get(ctx, model.PrefKeyTheme)
	if err != nil {
		return p, fmt.Errorf("failed to read theme: %w", err)
	}
	if ok {
		p.Theme = theme
	} else if err := s.Set(ctx, model.PrefKeyTheme, p.Theme); err != nil {
		return p, fmt.Errorf("failed to store default theme: %w", err)
	}

	format, ok, err := s.Get(ctx, model.PrefKeyDateFormat)
	if err != nil {
		return p, fmt.Errorf("failed to read date format: %w", err)
	}
	if ok {
		p.DateFormat = format
	} else if err := s.Set(ctx, model.PrefKeyDateFormat, p.DateFormat); err != nil {
		return p, fmt.Errorf("failed to store default date format: %w", err)
	}

	return p, nil
}
