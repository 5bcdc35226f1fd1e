package guard

import (
	"testing"

	"nina-movie/internal/domain"
	"nina-movie/internal/session"
)

func TestAuthGuard(t *testing.T) {
	if d := (AuthGuard{}).CanEnter(session.State{Authenticated: true}); !d.Allow {
		t.Errorf("expected allow, got %+v", d)
	}
	d := (AuthGuard{}).CanEnter(session.State{})
	if d.Allow || d.RedirectTo != LoginPath {
		t.Errorf("expected redirect to login, got %+v", d)
	}
}

func TestAdminGuard(t *testing.T) {
	cases := []struct {
		name  string
		user  *domain.User
		allow bool
	}{
		{"no user", nil, false},
		{"viewer", &domain.User{Role: domain.UserRoleUser}, false},
		{"admin", &domain.User{Role: domain.UserRoleAdmin}, true},
		{"moderator", &domain.User{Role: domain.UserRoleModerator}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := (AdminGuard{}).CanEnter(session.State{User: tc.user, Authenticated: tc.user != nil})
			if d.Allow != tc.allow {
				t.Fatalf("expected allow=%v, got %+v", tc.allow, d)
			}
			if !d.Allow && d.RedirectTo != RootPath {
				t.Errorf("expected redirect to root, got %q", d.RedirectTo)
			}
		})
	}
}

func TestChainStopsAtFirstDenial(t *testing.T) {
	g := Chain(AuthGuard{}, AdminGuard{})

	if d := g.CanEnter(session.State{}); d.RedirectTo != LoginPath {
		t.Errorf("expected login redirect first, got %+v", d)
	}
	viewer := session.State{User: &domain.User{Role: domain.UserRoleUser}, Authenticated: true}
	if d := g.CanEnter(viewer); d.RedirectTo != RootPath {
		t.Errorf("expected root redirect, got %+v", d)
	}
	admin := session.State{User: &domain.User{Role: domain.UserRoleAdmin}, Authenticated: true}
	if d := g.CanEnter(admin); !d.Allow {
		t.Errorf("expected allow, got %+v", d)
	}
}
