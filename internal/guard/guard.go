// Package guard decides, per navigation, whether a requested view is
// reachable given the current session. The decision depends only on
// the route's declared requirements and a session snapshot, never on
// ambient state.
package guard

import (
	"staffkeeper/internal/models"
	"staffkeeper/internal/session"
)

// Route declares who may enter a view.
type Route struct {
	Name string
	// RequiresAuth restricts the view to signed-in users.
	RequiresAuth bool
	// GuestOnly restricts the view to signed-out users (the login view).
	GuestOnly bool
	// Roles further restricts an authenticated view; empty means any
	// authenticated role may enter.
	Roles []models.Role
}

// Decision says what the console should do with a navigation attempt.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin sends the user to the login view first; ReturnTo
	// preserves where they were headed.
	RedirectLogin
	// RedirectHome bounces signed-in users away from guest-only views.
	RedirectHome
	// DenyUnauthorized is terminal: signed in, but the role does not
	// grant access.
	DenyUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case DenyUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of a guard check.
type Verdict struct {
	Decision Decision
	// ReturnTo is the view to come back to after login. Set only on
	// RedirectLogin.
	ReturnTo string
}

// Decide applies the rules in order: authentication first, then the
// guest-only bounce, then role checks. The order matters; an
// unauthenticated user headed to an admin view must land on login,
// not on unauthorized.
func Decide(route Route, sess session.Session) Verdict {
	if route.RequiresAuth && !sess.IsAuthenticated() {
		return Verdict{Decision: RedirectLogin, ReturnTo: route.Name}
	}

	if route.GuestOnly && sess.IsAuthenticated() {
		return Verdict{Decision: RedirectHome}
	}

	if len(route.Roles) > 0 {
		role := sess.User.Role
		for _, allowed := range route.Roles {
			if role == allowed {
				return Verdict{Decision: Allow}
			}
		}
		return Verdict{Decision: DenyUnauthorized}
	}

	return Verdict{Decision: Allow}
}
