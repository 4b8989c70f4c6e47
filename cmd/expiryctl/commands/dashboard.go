package commands

import (
	"os"
	"strings"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/dateformat"
	"domain_expiry/internal/status"
	"domain_expiry/internal/term"
	"domain_expiry/internal/theme"
)

// newDashboard builds a session rendering into target
func (a *app) newDashboard(target dashboard.Target, systemDark bool) (*dashboard.Dashboard, error) {
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, err
	}

	client := status.NewClient(&status.Config{
		BaseURL: a.cfg.API.URL,
		Timeout: a.cfg.APITimeout(),
		Logger:  a.logger,
	})

	return dashboard.New(dashboard.Options{
		APIURL:   a.cfg.API.URL,
		Interval: a.cfg.Interval(),
		Thresholds: dashboard.Thresholds{
			Red:    a.cfg.Thresholds.Red,
			Yellow: a.cfg.Thresholds.Yellow,
		},
		Fetcher:    client,
		Store:      a.store,
		Target:     target,
		Formatter:  dateformat.New(envLocale(), loc),
		SystemDark: systemDark,
		Logger:     a.logger,
	}), nil
}

// systemDark resolves the --system-scheme flag; auto reads COLORFGBG
func systemDark(scheme string) bool {
	switch scheme {
	case theme.ModeDark, theme.ModeLight:
		return theme.SchemeIsDark(scheme)
	default:
		return term.SystemDark(os.Getenv("COLORFGBG"))
	}
}

// envLocale turns the POSIX locale (de_DE.UTF-8) into a language tag (de-DE)
func envLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return ""
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
