package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"domain_expiry/internal/config"
	"domain_expiry/internal/logger"
	"domain_expiry/internal/prefs"
	"domain_expiry/internal/term"
)

// LocalClientID scopes the terminal's preferences inside the INI file
const LocalClientID = "local"

// app holds what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *logrus.Entry
	prefs  prefs.Provider
	store  prefs.Store
	colors bool
	out    io.Writer
}

var (
	configFile string
	apiURL     string
	prefsFile  string
	colorMode  string
	logLevel   string
)

// Execute runs the root command
func Execute() error {
	return newRootCmd(os.Stdout).Execute()
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "expiryctl",
		Short:         "Domain expiry dashboard for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.prefs != nil {
				return a.prefs.Close()
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "INI config file (env overrides its values)")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "status API base URL (overrides API_URL)")
	root.PersistentFlags().StringVar(&prefsFile, "prefs", "", "preferences file (default ~/.expiryctl/preferences.ini)")
	root.PersistentFlags().StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(watchCmd(a), statusCmd(a), prefsCmd(a))
	return root
}

func (a *app) init() error {
	var err error
	if configFile != "" {
		a.cfg, err = config.LoadFromINI(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if apiURL != "" {
		a.cfg.API.URL = apiURL
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logger.New(logLevel, "text", "")
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	a.logger = logrus.NewEntry(log).WithField("component", "expiryctl")

	mode, err := term.ParseColorMode(colorMode)
	if err != nil {
		return err
	}
	a.colors = term.ResolveColors(mode)

	path, err := preferencesPath()
	if err != nil {
		return err
	}
	provider, err := prefs.NewINIProvider(path)
	if err != nil {
		return err
	}
	a.prefs = provider
	a.store = provider.Store(LocalClientID)
	return nil
}

func preferencesPath() (string, error) {
	path := prefsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".expiryctl", "preferences.ini")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create preferences directory: %w", err)
	}
	return path, nil
}
