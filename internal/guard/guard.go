// Package guard decides whether navigation into a route is allowed.
package guard

import "nina-movie/internal/session"

const (
	LoginPath = "/auth/login"
	RootPath  = "/"
)

// Decision is the outcome of a guard check. RedirectTo is set when Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Guard is evaluated against the latest session snapshot.
type Guard interface {
	CanEnter(state session.State) Decision
}

// Func adapts a function to Guard.
type Func func(state session.State) Decision

func (f Func) CanEnter(state session.State) Decision { return f(state) }

// AuthGuard admits authenticated sessions and sends everyone else to login.
type AuthGuard struct{}

func (AuthGuard) CanEnter(state session.State) Decision {
	if state.Authenticated {
		return allow()
	}
	return redirect(LoginPath)
}

// AdminGuard admits admins and moderators and sends everyone else home.
type AdminGuard struct{}

func (AdminGuard) CanEnter(state session.State) Decision {
	if state.User.CanModerate() {
		return allow()
	}
	return redirect(RootPath)
}

// Chain runs guards in order and returns the first denial.
func Chain(guards ...Guard) Guard {
	return Func(func(state session.State) Decision {
		for _, g := range guards {
			if d := g.CanEnter(state); !d.Allow {
				return d
			}
		}
		return allow()
	})
}
