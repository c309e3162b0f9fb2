package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/cli/config"
	"github.com/labshare-dev/labshare/internal/cli/serverselect"
	"github.com/labshare-dev/labshare/internal/cli/userconfig"
)

// NewSelectServerCmd creates the select-server command
func NewSelectServerCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select-server [url-or-alias]",
		Short: "Select the server to use for commands",
		Long: `Select the server to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ labshare select-server                              # Interactive selection
  $ labshare select-server http://10.0.0.5:8000/api/v1  # Select by URL
  $ labshare select-server campus                       # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var urlOrAlias string
			if len(args) > 0 {
				urlOrAlias = args[0]
			}
			return runSelectServer(d, urlOrAlias)
		},
	}

	return cmd
}

func runSelectServer(d *Deps, urlOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'labshare init' to create a configuration file", err)
	}

	var server *config.Server
	if urlOrAlias != "" {
		server, err = serverselect.GetServerByURLOrAlias(cfg, urlOrAlias)
	} else {
		server, err = serverselect.PromptServerSelection(cfg)
	}
	if err != nil {
		return err
	}

	if err := userconfig.SetSelectedServer(server.URL); err != nil {
		return fmt.Errorf("failed to save selected server: %w", err)
	}

	d.server = server
	d.resetSession()

	fmt.Fprintf(d.Out, "Selected server: %s (%s)\n", server.Alias, server.URL)
	return nil
}
