package guard

import "staffkeeper/internal/models"

// View names used across the console.
const (
	ViewLogin        = "login"
	ViewHome         = "home"
	ViewUsers        = "users"
	ViewProfile      = "profile"
	ViewUnauthorized = "unauthorized"
)

// routes is the console's navigation table. The users view is the
// only admin-gated one; everything else just needs a session.
var routes = map[string]Route{
	ViewLogin:        {Name: ViewLogin, GuestOnly: true},
	ViewHome:         {Name: ViewHome, RequiresAuth: true},
	ViewUsers:        {Name: ViewUsers, RequiresAuth: true, Roles: []models.Role{models.RoleAdmin}},
	ViewProfile:      {Name: ViewProfile, RequiresAuth: true},
	ViewUnauthorized: {Name: ViewUnauthorized},
}

// Lookup resolves a view name to its route declaration.
func Lookup(name string) (Route, bool) {
	r, ok := routes[name]
	return r, ok
}

// ViewNames lists the known views in display order.
func ViewNames() []string {
	return []string{ViewLogin, ViewHome, ViewUsers, ViewProfile, ViewUnauthorized}
}
