package router

import (
	"github.com/labshare-dev/labshare/internal/session"
)

// Denial reasons
const (
	ReasonLoginRequired = "login_required"
	ReasonAdminRequired = "admin_required"
)

// Decision is the guard's verdict for one navigation attempt
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Guard decides whether route may be entered with the given session flags.
// Checks run in fixed order and the first failing one wins. Login and admin are
// checked independently: an admin-only route that does not require auth only
// looks at the admin flag.
func Guard(route Route, flags session.Flags) Decision {
	if route.RequiresAuth && !flags.LoggedIn {
		return Decision{Redirect: HomePath, Reason: ReasonLoginRequired}
	}
	if route.RequiresAdmin && !flags.Admin {
		return Decision{Redirect: HomePath, Reason: ReasonAdminRequired}
	}
	return Decision{Allowed: true}
}

// Title is the document title shown while route is active
func Title(route Route) string {
	if route.Title == "" {
		return AppName
	}
	return route.Title + " - " + AppName
}

// Navigation is the full outcome of navigating to a path
type Navigation struct {
	Route    Route    `json:"route"`
	Params   Params   `json:"params,omitempty"`
	Decision Decision `json:"decision"`
	Title    string   `json:"title"`
}

// Navigate resolves path, runs the guard and computes the title.
// The title always reflects the requested route, even when the guard redirects.
func Navigate(path string, flags session.Flags) Navigation {
	route, params := Match(path)
	return Navigation{
		Route:    route,
		Params:   params,
		Decision: Guard(route, flags),
		Title:    Title(route),
	}
}
