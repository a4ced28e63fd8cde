// Package guard decides whether session state may see a page. Decisions are pure
// functions of the state already established by bootstrap and never touch the
// network.
package guard

import (
	"slices"

	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/sessions"
)

const (
	LoginPath   = "/login"
	DefaultPath = "/"
)

// Decision is either Allow or a redirect target.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard is any of the decision functions below, bound to its arguments.
type Guard func(sessions.State) Decision

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(path string) Decision {
	return Decision{Redirect: path}
}

// RequireAuthenticated sends anonymous sessions to the login page.
func RequireAuthenticated(st sessions.State) Decision {
	if !st.IsAuthenticated || st.User == nil {
		return redirect(LoginPath)
	}
	return allow()
}

// RequireRole sends anonymous sessions to login and authenticated sessions whose
// role is not listed to the default page.
func RequireRole(st sessions.State, roles ...cinemamodel.Role) Decision {
	if d := RequireAuthenticated(st); !d.Allow {
		return d
	}
	if !slices.Contains(roles, st.User.Role) {
		return redirect(DefaultPath)
	}
	return allow()
}

// RedirectAuthenticated guards public-only pages such as login and register.
func RedirectAuthenticated(st sessions.State) Decision {
	if st.IsAuthenticated && st.User != nil {
		return redirect(DefaultPath)
	}
	return allow()
}

func Authenticated() Guard {
	return RequireAuthenticated
}

func Role(roles ...cinemamodel.Role) Guard {
	return func(st sessions.State) Decision {
		return RequireRole(st, roles...)
	}
}

func PublicOnly() Guard {
	return RedirectAuthenticated
}
