// Package session holds the in-memory authentication state of the current user.
package session

import (
	"nina-movie/internal/domain"
	"nina-movie/internal/observable"
)

// State is a point-in-time view of the session.
type State struct {
	User          *domain.User
	Authenticated bool
}

// Store projects the authentication state. It never touches the network or
// token storage; the auth service is its only writer. User and flag live in
// one subject so every published State is consistent.
type Store struct {
	state *observable.Subject[State]
}

func NewStore() *Store {
	return &Store{state: observable.NewSubject(State{})}
}

func (s *Store) CurrentUser() *domain.User {
	return s.state.Value().User
}

func (s *Store) IsAuthenticated() bool {
	return s.state.Value().Authenticated
}

func (s *Store) Snapshot() State {
	return s.state.Value()
}

// Subscribe replays the current state and then the state after every
// mutation. Callbacks may mutate the store.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// SubscribeUser replays the current user and then every change of user.
func (s *Store) SubscribeUser(fn func(*domain.User)) (cancel func()) {
	return subscribeField(s, func(st State) *domain.User { return st.User }, fn)
}

// SubscribeAuthenticated replays the current flag and then every change.
func (s *Store) SubscribeAuthenticated(fn func(bool)) (cancel func()) {
	return subscribeField(s, func(st State) bool { return st.Authenticated }, fn)
}

// subscribeField forwards one field of State, skipping states where it did
// not change. The subject delivers serially, so last needs no lock.
func subscribeField[V comparable](s *Store, field func(State) V, fn func(V)) func() {
	var last V
	seen := false
	return s.state.Subscribe(func(st State) {
		v := field(st)
		if seen && v == last {
			return
		}
		seen, last = true, v
		fn(v)
	})
}

// SignIn replaces the user and marks the session authenticated.
func (s *Store) SignIn(user *domain.User) {
	s.state.Next(State{User: user, Authenticated: true})
}

// SetAuthenticated records the result of a token validity check.
func (s *Store) SetAuthenticated(ok bool) {
	s.state.Update(func(st State) State {
		st.Authenticated = ok
		return st
	})
}

// Reset empties the session.
func (s *Store) Reset() {
	s.state.Next(State{})
}
