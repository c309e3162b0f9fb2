package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/labshare-dev/labshare/internal/metrics"
	"github.com/labshare-dev/labshare/internal/session"
)

const (
	contextRoute      = "route"
	contextNavigation = "navigation"
	contextSession    = "session"
)

// SessionFunc extracts the visitor's session from a request
type SessionFunc func(c *gin.Context) *session.Session

// Middleware gates a gin route with the guard. Denied requests are redirected to
// the home view with 302 rather than answered with 401/403, like a browser router.
func Middleware(route Route, sessionFn SessionFunc, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFn(c)
		flags := sess.Flags()

		params := Params{}
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		nav := Navigation{
			Route:    route,
			Params:   params,
			Decision: Guard(route, flags),
			Title:    Title(route),
		}
		metrics.Get().ObserveNavigation(route.Name, nav.Decision.Allowed)

		c.Set(contextRoute, route)
		c.Set(contextNavigation, nav)
		c.Set(contextSession, sess)

		if !nav.Decision.Allowed {
			log.Info().
				Str("route", route.Name).
				Str("path", c.Request.URL.Path).
				Str("reason", nav.Decision.Reason).
				Msg("Navigation denied, redirecting home")
			c.Redirect(http.StatusFound, nav.Decision.Redirect)
			c.Abort()
			return
		}

		c.Next()
	}
}

// NavigationFrom returns the navigation recorded by Middleware
func NavigationFrom(c *gin.Context) (Navigation, bool) {
	v, exists := c.Get(contextNavigation)
	if !exists {
		return Navigation{}, false
	}
	nav, ok := v.(Navigation)
	return nav, ok
}

// SessionFrom returns the session recorded by Middleware
func SessionFrom(c *gin.Context) *session.Session {
	v, exists := c.Get(contextSession)
	if !exists {
		return session.Anonymous()
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return session.Anonymous()
	}
	return sess
}

// GinPath converts a route pattern to gin syntax; the catch-all has no gin form
func GinPath(route Route) (string, bool) {
	if route.Name == RouteNotFound {
		return "", false
	}
	return route.Path, true
}
