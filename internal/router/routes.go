// Package router holds the view table shared by the CLI and the web console
// and the guard that gates navigation between views.
package router

import (
	"strings"

	"github.com/labshare-dev/labshare/internal/assert"
)

// AppName is the platform's display name and the fallback page title
const AppName = "高校大型仪器设备共享服务平台"

// HomePath is where denied navigation lands
const HomePath = "/"

// Route names
const (
	RouteHome            = "Home"
	RouteLaboratoryList  = "LaboratoryList"
	RouteEquipment       = "Equipment"
	RouteEquipmentDetail = "EquipmentDetail"
	RouteReservations    = "Reservations"
	RouteAuditLog        = "AuditLog"
	RouteHelp            = "Help"
	RouteNotFound        = "NotFound"
)

// Route describes one view. Routes are defined once at startup and never mutated.
type Route struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	Title         string `json:"title"`
	RequiresAuth  bool   `json:"requires_auth,omitempty"`
	RequiresAdmin bool   `json:"requires_admin,omitempty"`
}

// Params holds the values of :name path segments
type Params map[string]string

var routes = []Route{
	{Name: RouteHome, Path: "/", Title: "首页"},
	{Name: RouteLaboratoryList, Path: "/laboratories", Title: "实验室管理"},
	{Name: RouteEquipment, Path: "/equipment", Title: "设备列表", RequiresAuth: true},
	{Name: RouteEquipmentDetail, Path: "/equipment/:id", Title: "设备详情", RequiresAuth: true},
	{Name: RouteReservations, Path: "/reservations", Title: "预约管理"},
	{Name: RouteAuditLog, Path: "/audit-logs", Title: "审计日志", RequiresAuth: true, RequiresAdmin: true},
	{Name: RouteHelp, Path: "/help", Title: "帮助中心"},
}

var notFound = Route{Name: RouteNotFound, Path: "/*", Title: "404 - 页面未找到"}

func init() {
	names := make([]string, 0, len(routes)+1)
	paths := make([]string, 0, len(routes))
	for _, r := range routes {
		assert.That(strings.HasPrefix(r.Path, "/"), "route %s path %q must start with /", r.Name, r.Path)
		names = append(names, r.Name)
		paths = append(paths, r.Path)
	}
	assert.Unique("route name", append(names, notFound.Name))
	assert.Unique("route path", paths)
}

// Routes returns a copy of the route table, catch-all last
func Routes() []Route {
	out := make([]Route, 0, len(routes)+1)
	out = append(out, routes...)
	return append(out, notFound)
}

// ByName returns the route with the given name
func ByName(name string) (Route, bool) {
	for _, r := range Routes() {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Match resolves a concrete path to its route. Unknown paths resolve to the catch-all.
func Match(path string) (Route, Params) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = normalize(path)

	for _, r := range routes {
		if params, ok := matchPattern(r.Path, path); ok {
			return r, params
		}
	}
	return notFound, Params{"pathMatch": strings.TrimPrefix(path, "/")}
}

func matchPattern(pattern, path string) (Params, bool) {
	patternParts := split(pattern)
	pathParts := split(path)
	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := Params{}
	for i, part := range patternParts {
		if name, ok := strings.CutPrefix(part, ":"); ok {
			if pathParts[i] == "" {
				return nil, false
			}
			params[name] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
