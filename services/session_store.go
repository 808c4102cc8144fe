package services

import (
	"encoding/json"

	"complaint-portal/config"
	"complaint-portal/models"

	"github.com/gin-contrib/sessions"
)

const (
	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

// SessionStore persists the authenticated session between requests.
type SessionStore interface {
	Load() models.SessionState
	Save(auth models.Authenticated) error
	Clear() error
}

// HasSession reports whether session holds a token. It does not check the
// token itself.
func HasSession(session sessions.Session) bool {
	token, _ := session.Get(sessionTokenKey).(string)
	return token != ""
}

// CookieSessionStore keeps the token and the serialized user in the
// gin-contrib session cookie.
type CookieSessionStore struct {
	session sessions.Session
}

func NewCookieSessionStore(session sessions.Session) *CookieSessionStore {
	return &CookieSessionStore{session: session}
}

func (s *CookieSessionStore) Load() models.SessionState {
	token, _ := s.session.Get(sessionTokenKey).(string)
	raw, _ := s.session.Get(sessionUserKey).(string)
	if token == "" || raw == "" {
		return models.Unauthenticated{}
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		config.Log.WithError(err).Warn("discarding unreadable session user")
		return models.Unauthenticated{}
	}
	return models.Authenticated{Token: token, User: user}
}

func (s *CookieSessionStore) Save(auth models.Authenticated) error {
	raw, err := json.Marshal(auth.User)
	if err != nil {
		return err
	}
	s.session.Set(sessionTokenKey, auth.Token)
	s.session.Set(sessionUserKey, string(raw))
	return s.session.Save()
}

func (s *CookieSessionStore) Clear() error {
	s.session.Clear()
	return s.session.Save()
}
