package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"domain_expiry/internal/model"
	"domain_expiry/internal/prefs"
)

func prefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}
	cmd.AddCommand(prefsGetCmd(a), prefsSetCmd(a))
	return cmd
}

func prefsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prefs.Load(cmd.Context(), a.store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", model.PrefKeyTheme, p.Theme)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", model.PrefKeyDateFormat, p.DateFormat)
			return nil
		},
	}
}

func prefsSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <theme|dateFormat> <value>",
		Short: "Store a preference",
		Example: "  expiryctl prefs set theme dark\n" +
			"  expiryctl prefs set dateFormat YYYY-MM-DD",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			switch key {
			case model.PrefKeyTheme:
				if !model.IsKnownTheme(value) {
					return fmt.Errorf("unknown theme %q (allowed: %v)", value, model.Themes)
				}
			case model.PrefKeyDateFormat:
				if !model.IsKnownDateFormat(value) {
					return fmt.Errorf("unknown date format %q (allowed: %v)", value, model.DateFormats)
				}
			default:
				return fmt.Errorf("unknown preference %q (allowed: %s, %s)", key, model.PrefKeyTheme, model.PrefKeyDateFormat)
			}

			if err := a.store.Set(cmd.Context(), key, value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}
