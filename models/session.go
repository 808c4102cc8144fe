package models

// SessionState is either Unauthenticated or Authenticated.
type SessionState interface {
	sessionState()
}

type Unauthenticated struct{}

type Authenticated struct {
	Token string
	User  User
}

func (Unauthenticated) sessionState() {}
func (Authenticated) sessionState()   {}

// CurrentUser returns the authenticated session, if any.
func CurrentUser(s SessionState) (Authenticated, bool) {
	auth, ok := s.(Authenticated)
	return auth, ok
}
