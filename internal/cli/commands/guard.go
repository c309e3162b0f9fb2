package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/labshare-dev/labshare/internal/metrics"
	"github.com/labshare-dev/labshare/internal/router"
)

// RouteAnnotation binds a command (and its subcommands) to a view path
const RouteAnnotation = "route"

// ErrRedirectedHome is returned after the guard turned a command away and showed the home view
var ErrRedirectedHome = errors.New("redirected to home")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	denyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// onRoute annotates cmd with the view it renders
func onRoute(cmd *cobra.Command, path string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[RouteAnnotation] = path
	return cmd
}

// routeOf finds the nearest route annotation walking up from cmd
func routeOf(cmd *cobra.Command) (string, bool) {
	for c := cmd; c != nil; c = c.Parent() {
		if path, ok := c.Annotations[RouteAnnotation]; ok {
			return path, true
		}
	}
	return "", false
}

// concretePath fills :params in pattern with positional args, in order
func concretePath(pattern string, args []string) string {
	parts := strings.Split(pattern, "/")
	next := 0
	for i, part := range parts {
		if strings.HasPrefix(part, ":") && next < len(args) {
			parts[i] = args[next]
			next++
		}
	}
	return strings.Join(parts, "/")
}

// Guard runs before every command. Commands bound to a view are checked against
// the session for the selected server; denied ones render home instead.
func (d *Deps) Guard(cmd *cobra.Command, args []string) error {
	pattern, ok := routeOf(cmd)
	if !ok {
		return nil
	}

	sess := d.Session()
	nav := router.Navigate(concretePath(pattern, args), sess.Flags())
	metrics.Get().ObserveNavigation(nav.Route.Name, nav.Decision.Allowed)

	if nav.Decision.Allowed {
		d.banner(nav.Title)
		return nil
	}

	d.Logger.Info().
		Str("route", nav.Route.Name).
		Str("reason", nav.Decision.Reason).
		Msg("Navigation denied")

	fmt.Fprintln(d.Err, denyStyle.Render(fmt.Sprintf("%s: %s", nav.Title, denialMessage(nav.Decision.Reason))))

	home := router.Navigate(nav.Decision.Redirect, sess.Flags())
	d.banner(home.Title)
	if err := d.renderHome(); err != nil {
		return err
	}
	return ErrRedirectedHome
}

func (d *Deps) banner(title string) {
	if d.human() {
		fmt.Fprintln(d.Out, titleStyle.Render(title))
		fmt.Fprintln(d.Out)
	}
}

func denialMessage(reason string) string {
	switch reason {
	case router.ReasonLoginRequired:
		return "please log in first (labshare login)"
	case router.ReasonAdminRequired:
		return "administrator privileges required"
	default:
		return "access denied"
	}
}
