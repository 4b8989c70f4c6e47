package commands

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"domain_expiry/internal/dashboard"
	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/term"
)

func watchCmd(a *app) *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard with auto-refresh and countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := term.NewTarget(cmd.OutOrStdout(), term.Options{Live: true, Colors: a.colors})
			d, err := a.newDashboard(target, systemDark(scheme))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := d.Start(); err != nil {
				return err
			}
			defer d.Stop()

			keys := make(chan string)
			go readKeys(ctx, cmd.InOrStdin(), keys)

			for {
				select {
				case <-ctx.Done():
					return nil
				case key, ok := <-keys:
					if !ok {
						// stdin closed; keep running until a signal arrives
						keys = nil
						continue
					}
					if quit := a.handleKey(ctx, d, key); quit {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&scheme, "system-scheme", "auto", "OS color scheme: auto (from COLORFGBG), light or dark")
	return cmd
}

// readKeys sends one trimmed line per enter press and closes keys on EOF.
// It stops sending once ctx is done; a blocked stdin read still ends with the process.
func readKeys(ctx context.Context, in io.Reader, keys chan<- string) {
	defer close(keys)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case keys <- strings.ToLower(strings.TrimSpace(scanner.Text())):
		case <-ctx.Done():
			return
		}
	}
}

// handleKey applies one key command and reports whether to quit
func (a *app) handleKey(ctx context.Context, d *dashboard.Dashboard, key string) bool {
	switch key {
	case "q", "quit":
		return true
	case "r", "":
		d.RefreshAsync()
	case "t":
		cur, _ := prefs.GetOr(ctx, a.store, model.PrefKeyTheme, model.DefaultTheme)
		if err := d.SetTheme(ctx, nextValue(model.Themes, cur)); err != nil {
			a.logger.WithError(err).Warn("Failed to change theme")
		}
	case "d":
		cur, _ := prefs.GetOr(ctx, a.store, model.PrefKeyDateFormat, model.DefaultDateFormat)
		if err := d.SetDateFormat(ctx, nextValue(model.DateFormats, cur)); err != nil {
			a.logger.WithError(err).Warn("Failed to change date format")
		}
	default:
		a.logger.WithField("key", key).Debug("Unknown key")
	}
	return false
}

// nextValue cycles through values; an unknown current value starts over
func nextValue(values []string, cur string) string {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
