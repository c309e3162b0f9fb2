package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/cli/config"
	"github.com/labshare-dev/labshare/internal/client"
)

// NewInitCmd creates the init command
func NewInitCmd(d *Deps) *cobra.Command {
	var alias, console string

	cmd := &cobra.Command{
		Use:   "init <api-base-url>",
		Short: "Add a platform server to ./labshare.json",
		Long: `Add a platform server to ./labshare.json, creating the file if needed.

The URL is the API base including its prefix, for example:
  $ labshare init http://10.0.0.5:8000/api/v1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context(), d, args[0], alias, console)
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Server alias (defaults to 'default', then server-N)")
	cmd.Flags().StringVar(&console, "console", "", "Web console URL (derived from the API URL if omitted)")

	return cmd
}

func runInit(ctx context.Context, d *Deps, baseURL, alias, console string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	cfg := &config.Config{Servers: []config.Server{}}
	isNewConfig := true
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		isNewConfig = false
		fmt.Fprintf(d.Out, "Found existing %s\n", config.ConfigFileName)
	}

	if existing, err := cfg.GetServerByURL(baseURL); err == nil {
		fmt.Fprintf(d.Out, "Server %s already exists in %s as '%s'\n", baseURL, config.ConfigFileName, existing.Alias)
		return nil
	}

	if alias == "" {
		alias = "default"
		if len(cfg.Servers) > 0 {
			alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
		}
	}

	server := config.Server{Alias: alias, URL: baseURL, Console: console}
	cfg.Servers = append(cfg.Servers, server)

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(d.Out, "✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, baseURL, alias)
	} else {
		fmt.Fprintf(d.Out, "✓ Added server %s (%s) to ./%s\n", baseURL, alias, config.ConfigFileName)
	}

	// Reachability is informational only; the server may not be up yet.
	health, err := client.New(baseURL, client.WithLogger(d.Logger)).Health(ctx)
	if err != nil {
		fmt.Fprintf(d.Out, "⚠ Could not reach %s: %v\n", baseURL, err)
	} else {
		fmt.Fprintf(d.Out, "✓ Server is %s (version %s)\n", health.Status, orDash(health.Version))
	}

	fmt.Fprintln(d.Out, "\nNext steps:")
	fmt.Fprintln(d.Out, "  1. Run 'labshare login' to authenticate")
	fmt.Fprintln(d.Out, "  2. Run 'labshare home' to see what you can do")

	return nil
}
