package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/labshare-dev/labshare/internal/cli/auth"
	"github.com/labshare-dev/labshare/internal/cli/config"
	"github.com/labshare-dev/labshare/internal/cli/serverselect"
	"github.com/labshare-dev/labshare/internal/cli/userconfig"
	"github.com/labshare-dev/labshare/internal/client"
	"github.com/labshare-dev/labshare/internal/session"
)

// Deps carries what every command needs. One Deps lives for one invocation.
type Deps struct {
	Out    io.Writer
	Err    io.Writer
	Tokens auth.TokenStore
	Logger zerolog.Logger

	// Timeout bounds each API request
	Timeout time.Duration
	// FallbackURL is used when no labshare.json is found
	FallbackURL string

	// Bound to persistent flags
	ServerAlias string
	Format      string

	OpenBrowser func(url string) error

	server  *config.Server
	session *session.Session
}

// NewDeps returns production defaults
func NewDeps() *Deps {
	return &Deps{
		Out:         os.Stdout,
		Err:         os.Stderr,
		Tokens:      auth.Default,
		Logger:      zerolog.Nop(),
		Timeout:     client.DefaultTimeout,
		Format:      FormatTable,
		OpenBrowser: openBrowser,
	}
}

// Server loads the project config and resolves the selected server once per invocation
func (d *Deps) Server() (*config.Server, error) {
	if d.server != nil {
		return d.server, nil
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		if d.FallbackURL != "" && d.ServerAlias == "" {
			d.server = &config.Server{Alias: "env", URL: d.FallbackURL}
			return d.server, nil
		}
		return nil, fmt.Errorf("failed to load config: %w\nRun 'labshare init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, d.ServerAlias)
	if err != nil {
		return nil, err
	}

	d.server = server
	return server, nil
}

// Session rebuilds the session for the selected server from the keyring token and
// the cached login profile. Anything missing yields an anonymous session.
func (d *Deps) Session() *session.Session {
	if d.session != nil {
		return d.session
	}

	d.session = session.Anonymous()

	server, err := d.Server()
	if err != nil {
		d.Logger.Debug().Err(err).Msg("No server resolved, continuing anonymously")
		return d.session
	}

	token, err := d.Tokens.LoadToken(server.URL)
	if err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			d.Logger.Warn().Err(err).Msg("Failed to read stored token")
		}
		return d.session
	}

	profile, err := userconfig.LoadProfile(server.URL)
	if err != nil {
		d.Logger.Warn().Err(err).Msg("Failed to read cached profile")
	}

	d.session = session.New(token, profile)
	return d.session
}

// resetSession drops the memoized session after login or logout
func (d *Deps) resetSession() {
	d.session = nil
}

// Client builds an API client for the selected server
func (d *Deps) Client() (*client.Client, error) {
	server, err := d.Server()
	if err != nil {
		return nil, err
	}

	return client.New(server.URL,
		client.WithHTTPClient(&http.Client{Timeout: d.Timeout}),
		client.WithTokenSource(auth.TokenSource(d.Tokens, server.URL)),
		client.WithLogger(d.Logger),
	), nil
}

// parseID parses a positive numeric identifier argument
func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}
