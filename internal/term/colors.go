package term

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/theme"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors based on environment (default)
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// SystemDark guesses the terminal background from COLORFGBG ("fg;bg").
// Backgrounds 0-6 and 8 are dark; anything unparseable counts as light.
func SystemDark(colorfgbg string) bool {
	parts := strings.Split(colorfgbg, ";")
	if len(parts) < 2 {
		return false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}

// palette holds the colors of one visual mode
type palette struct {
	title    *color.Color
	muted    *color.Color
	accent   *color.Color
	critical *color.Color
	warning  *color.Color
	healthy  *color.Color
	unknown  *color.Color
}

func newPalette(mode string, enabled bool) palette {
	p := palette{
		critical: color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow, color.Bold),
		healthy:  color.New(color.FgGreen),
	}
	if mode == theme.ModeDark {
		p.title = color.New(color.FgHiWhite, color.Bold)
		p.muted = color.New(color.FgHiBlack)
		p.accent = color.New(color.FgHiCyan)
		p.unknown = color.New(color.FgHiBlack)
	} else {
		p.title = color.New(color.FgBlack, color.Bold)
		p.muted = color.New(color.FgHiBlack)
		p.accent = color.New(color.FgBlue)
		p.unknown = color.New(color.FgHiBlack)
	}

	for _, c := range []*color.Color{p.title, p.muted, p.accent, p.critical, p.warning, p.healthy, p.unknown} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) tier(t dashboard.Tier) *color.Color {
	switch t {
	case dashboard.TierCritical:
		return p.critical
	case dashboard.TierWarning:
		return p.warning
	case dashboard.TierHealthy:
		return p.healthy
	default:
		return p.unknown
	}
}

func (p palette) status(kind dashboard.StatusKind) *color.Color {
	switch kind {
	case dashboard.StatusSuccess:
		return p.healthy
	case dashboard.StatusWarning:
		return p.warning
	case dashboard.StatusError:
		return p.critical
	default:
		return p.muted
	}
}
