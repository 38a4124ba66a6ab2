// Package navigation computes which dashboard screens a role may open and
// where a request for any client-side route should land.
package navigation

import (
	"strings"

	"food-delivery-dashboard/models"
)

// Destination is a navigable screen of the dashboard shell.
type Destination struct {
	Name         string            `json:"name"`
	Path         string            `json:"path"`
	AllowedRoles []models.UserRole `json:"allowed_roles"`
}

// Allows reports whether role may open the destination.
func (d Destination) Allows(role models.UserRole) bool {
	for _, r := range d.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

const (
	PathDashboard       = "/"
	PathOrders          = "/orders"
	PathDelivery        = "/delivery"
	PathFinance         = "/finance"
	PathStats           = "/stats"
	PathProjectSettings = "/project"
	PathAuth            = "/auth"
	PathProjectSetup    = "/project-setup"
	PathNotFound        = "*"
)

var allRoles = []models.UserRole{models.RoleMainAdmin, models.RoleAdmin, models.RoleUser}

var destinations = []Destination{
	{Name: "Dashboard", Path: PathDashboard, AllowedRoles: allRoles},
	{Name: "Orders", Path: PathOrders, AllowedRoles: allRoles},
	{Name: "Delivery", Path: PathDelivery, AllowedRoles: allRoles},
	{Name: "Finance", Path: PathFinance, AllowedRoles: []models.UserRole{models.RoleMainAdmin, models.RoleAdmin}},
	{Name: "Statistics", Path: PathStats, AllowedRoles: allRoles},
	{Name: "Project Settings", Path: PathProjectSettings, AllowedRoles: []models.UserRole{models.RoleMainAdmin}},
}

// Route is any client-side view, gated or not.
type Route struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Public bool   `json:"public"`
}

var publicRoutes = []Route{
	{Name: "Auth", Path: PathAuth, Public: true},
	{Name: "Project Setup", Path: PathProjectSetup, Public: true},
}

var notFound = Route{Name: "Not Found", Path: PathNotFound, Public: true}

// Destinations returns a copy of the full destination table.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// Routes lists every client-side route, gated destinations first.
func Routes() []Route {
	routes := make([]Route, 0, len(destinations)+len(publicRoutes)+1)
	for _, d := range destinations {
		routes = append(routes, Route{Name: d.Name, Path: d.Path})
	}
	routes = append(routes, publicRoutes...)
	return append(routes, notFound)
}

// Visible returns the destinations role may navigate to, in table order.
func Visible(role models.UserRole) []Destination {
	var visible []Destination
	for _, d := range destinations {
		if d.Allows(role) {
			visible = append(visible, d)
		}
	}
	return visible
}

// Lookup finds the destination registered for path.
func Lookup(path string) (Destination, bool) {
	path = normalize(path)
	for _, d := range destinations {
		if d.Path == path {
			return d, true
		}
	}
	return Destination{}, false
}

// Resolution is where the shell lands for a requested path.
type Resolution struct {
	Requested  string `json:"requested"`
	Route      Route  `json:"route"`
	Redirected bool   `json:"redirected"`
}

// Resolve maps a requested path to the route the shell renders for role.
// A destination outside the role's allow-list redirects to the first visible
// destination instead of rendering.
func Resolve(role models.UserRole, path string) Resolution {
	path = normalize(path)
	res := Resolution{Requested: path}

	for _, r := range publicRoutes {
		if r.Path == path {
			res.Route = r
			return res
		}
	}

	d, ok := Lookup(path)
	if !ok {
		res.Route = notFound
		return res
	}
	if d.Allows(role) {
		res.Route = Route{Name: d.Name, Path: d.Path}
		return res
	}

	res.Redirected = true
	if first, ok := FirstVisible(role); ok {
		res.Route = Route{Name: first.Name, Path: first.Path}
	} else {
		res.Route = publicRoutes[0]
	}
	return res
}

// FirstVisible is the landing destination for role.
func FirstVisible(role models.UserRole) (Destination, bool) {
	visible := Visible(role)
	if len(visible) == 0 {
		return Destination{}, false
	}
	return visible[0], true
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return PathDashboard
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = PathDashboard
		}
	}
	return path
}
