package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/cli/commands"
)

var version = "dev" // Will be set during build

// NewRootCmd assembles the labshare command tree around d
func NewRootCmd(d *commands.Deps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labshare",
		Short: "labshare - University large-equipment sharing platform",
		Long: `labshare CLI - Browse equipment, book time slots and review reservations
on the university large-equipment sharing platform.

Views that need a login or administrator rights send you back to the home view
when your session does not allow them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: d.Guard,
	}

	rootCmd.PersistentFlags().StringVar(&d.ServerAlias, "server", "", "Server alias from labshare.json (defaults to the selected server)")
	rootCmd.PersistentFlags().StringVarP(&d.Format, "output", "o", commands.FormatTable, "Output format: table, json or yaml")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(d.Out, "labshare version %s\n", version)
		},
	})

	rootCmd.AddCommand(
		commands.NewInitCmd(d),
		commands.NewSelectServerCmd(d),
		commands.NewLoginCmd(d),
		commands.NewLogoutCmd(d),
		commands.NewWhoamiCmd(d),
		commands.NewStatusCmd(d),
		commands.NewDashCmd(d),
		commands.NewHomeCmd(d),
		commands.NewHelpCenterCmd(d),
		commands.NewLabsCmd(d),
		commands.NewEquipmentCmd(d),
		commands.NewTimeslotsCmd(d),
		commands.NewReservationsCmd(d),
		commands.NewAuditLogsCmd(d),
		commands.NewStatsCmd(d),
	)

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context, d *commands.Deps, args []string) error {
	rootCmd := NewRootCmd(d)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(d.Out)
	rootCmd.SetErr(d.Err)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// The home view already explained the redirect.
		if !errors.Is(err, commands.ErrRedirectedHome) {
			fmt.Fprintf(d.Err, "Error: %v\n", err)
		}
		return err
	}
	return nil
}
