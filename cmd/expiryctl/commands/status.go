package commands

import (
	"github.com/spf13/cobra"

	"domain_expiry/internal/term"
)

func statusCmd(a *app) *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch and print the expiry table once",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := term.NewTarget(cmd.OutOrStdout(), term.Options{Colors: a.colors})
			d, err := a.newDashboard(target, systemDark(scheme))
			if err != nil {
				return err
			}
			defer d.Stop()

			// the frame shows the inline error too, so render before returning it
			err = d.RenderOnce()
			target.Render()
			return err
		},
	}

	cmd.Flags().StringVar(&scheme, "system-scheme", "auto", "OS color scheme: auto (from COLORFGBG), light or dark")
	return cmd
}
