package commands

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/router"
)

// NewDashCmd creates the dash command
func NewDashCmd(d *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dash [path]",
		Short: "Open the web console in browser",
		Long: `Open the web console in browser, optionally at a view path.

Examples:
  $ labshare dash
  $ labshare dash /equipment/12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := router.HomePath
			if len(args) > 0 {
				path = args[0]
			}
			return runDash(d, path)
		},
	}

	return cmd
}

func runDash(d *Deps, path string) error {
	server, err := d.Server()
	if err != nil {
		return err
	}

	nav := router.Navigate(path, d.Session().Flags())
	if nav.Route.Name == router.RouteNotFound {
		return fmt.Errorf("no view at %s", path)
	}

	dashboardURL := server.ConsoleURL() + "/" + strings.TrimPrefix(path, "/")

	fmt.Fprintf(d.Out, "Opening %s for %s (%s)...\n", nav.Title, server.Alias, server.URL)
	fmt.Fprintf(d.Out, "URL: %s\n", dashboardURL)
	if !nav.Decision.Allowed {
		fmt.Fprintf(d.Out, "Note: %s, the console will send you to the home page\n", denialMessage(nav.Decision.Reason))
	}

	if err := d.OpenBrowser(dashboardURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, dashboardURL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// NewStatusCmd creates the status command
func NewStatusCmd(d *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the selected server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := d.Server()
			if err != nil {
				return err
			}
			apiClient, err := d.Client()
			if err != nil {
				return err
			}

			health, err := apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s (%s) is unreachable: %w", server.Alias, server.URL, err)
			}

			return d.render(health, func(w io.Writer) {
				fmt.Fprintf(w, "Server:\t%s (%s)\n", server.Alias, server.URL)
				fmt.Fprintf(w, "Status:\t%s\n", health.Status)
				fmt.Fprintf(w, "Version:\t%s\n", orDash(health.Version))
			})
		},
	}
}
