// Package theme resolves the stored theme preference into a visual mode.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
)

// ErrInvalidTheme is returned when selecting a theme outside model.Themes
var ErrInvalidTheme = errors.New("invalid theme")

// Resolved visual modes
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// Target receives theme changes
type Target interface {
	// SetTheme applies the resolved visual mode
	SetTheme(mode string)
	// SetActiveTheme marks the control of the stored logical preference
	SetActiveTheme(pref string)
}

// Controller owns the theme state of one session
type Controller struct {
	mu         sync.Mutex
	store      prefs.Store
	target     Target
	logger     *logrus.Entry
	systemDark bool
}

// NewController creates a controller; systemDark is the OS signal at start
func NewController(store prefs.Store, target Target, systemDark bool, logger *logrus.Entry) *Controller {
	return &Controller{
		store:      store,
		target:     target,
		systemDark: systemDark,
		logger:     logger.WithField("component", "theme"),
	}
}

// Resolve maps a logical preference to a visual mode.
// Unrecognized values behave like "system".
func Resolve(pref string, systemDark bool) string {
	switch pref {
	case model.ThemeLight:
		return ModeLight
	case model.ThemeDark:
		return ModeDark
	default:
		if systemDark {
			return ModeDark
		}
		return ModeLight
	}
}

// Normalize returns pref when known and "system" otherwise
func Normalize(pref string) string {
	if model.IsKnownTheme(pref) {
		return pref
	}
	return model.ThemeSystem
}

// Init applies the stored preference
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pref, err := c.current(ctx)
	c.apply(pref)
	return err
}

// Set stores and applies an explicit selection
func (c *Controller) Set(ctx context.Context, pref string) error {
	if !model.IsKnownTheme(pref) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, pref)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Set(ctx, model.PrefKeyTheme, pref); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	c.apply(pref)
	return nil
}

// SystemChanged records an OS color-scheme change and re-applies while "system" is stored
func (c *Controller) SystemChanged(ctx context.Context, dark bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.systemDark = dark
	pref, err := c.current(ctx)
	if pref == model.ThemeSystem {
		c.apply(pref)
	}
	return err
}

// Mode returns the currently resolved visual mode
func (c *Controller) Mode(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	pref, _ := c.current(ctx)
	return Resolve(pref, c.systemDark)
}

// current reads the stored preference; read failures fall back to "system"
func (c *Controller) current(ctx context.Context) (string, error) {
	stored, err := prefs.GetOr(ctx, c.store, model.PrefKeyTheme, model.DefaultTheme)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to read theme preference, using system")
		return model.ThemeSystem, err
	}
	pref := Normalize(stored)
	if pref != stored {
		c.logger.WithField("stored", stored).Warn("Unrecognized theme preference, using system")
	}
	return pref, nil
}

func (c *Controller) apply(pref string) {
	c.target.SetTheme(Resolve(pref, c.systemDark))
	c.target.SetActiveTheme(pref)
}

// SchemeIsDark reads an OS color-scheme signal such as the
// Sec-CH-Prefers-Color-Scheme hint ("dark", quoted or not)
func SchemeIsDark(v string) bool {
	return strings.EqualFold(strings.Trim(strings.TrimSpace(v), `"`), ModeDark)
}
