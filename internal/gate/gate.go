// Package gate decides whether the current session may enter a
// role-restricted view.
package gate

import (
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Decision is the outcome of evaluating a guard against a session.
type Decision int

const (
	// Allow lets the view render.
	Allow Decision = iota
	// Wait means the session is still loading and no routing decision
	// can be made yet.
	Wait
	// RedirectLogin means the user is not authenticated.
	RedirectLogin
	// RedirectHome means the user is authenticated but lacks the role.
	RedirectHome
)

// Guard is an allow-list of roles for a view. An empty list means any
// authenticated user may enter.
type Guard struct {
	AllowedRoles []model.Role
}

// Authenticated guards a view that any signed-in user may enter.
func Authenticated() Guard {
	return Guard{}
}

// Roles guards a view to the given roles.
func Roles(roles ...model.Role) Guard {
	return Guard{AllowedRoles: roles}
}

// Evaluate decides what to do with the session for this guard.
// Evaluation is ordered: a loading session waits before anything else,
// an anonymous one is sent to login, and only then is role membership
// checked.
func (g Guard) Evaluate(s model.Session) Decision {
	if s.Loading {
		return Wait
	}
	if !s.IsAuthenticated || s.User == nil {
		return RedirectLogin
	}
	if len(g.AllowedRoles) == 0 {
		return Allow
	}
	for _, r := range g.AllowedRoles {
		if s.User.Role == r {
			return Allow
		}
	}
	return RedirectHome
}
