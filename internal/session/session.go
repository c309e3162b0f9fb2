package session

import (
	"time"

	"github.com/labshare-dev/labshare/internal/api"
)

// Flags are the two booleans the route guard consumes
type Flags struct {
	LoggedIn bool `json:"logged_in" yaml:"logged_in"`
	Admin    bool `json:"is_admin" yaml:"is_admin"`
}

// Session is the client-held authentication state for one backend.
// It is built per call and handed to whoever needs it; nothing holds it globally.
type Session struct {
	Token   string       `json:"token,omitempty"`
	Profile *api.Profile `json:"profile,omitempty"`

	claims *Claims
	now    func() time.Time
}

// Anonymous is the session of a visitor who never logged in
func Anonymous() *Session {
	return &Session{}
}

// New builds a session from a stored token and the profile cached at login (may be nil).
// Claims in the token take precedence over the cached profile for id, role and lab.
func New(token string, cached *api.Profile) *Session {
	s := &Session{Token: token, Profile: cached}
	if token == "" {
		return s
	}

	claims, err := ParseClaims(token)
	if err != nil {
		// Opaque token: trust the cached profile.
		return s
	}
	s.claims = claims

	fromToken := claims.profile()
	if cached != nil {
		fromToken.Name = cached.Name
		fromToken.Dept = cached.Dept
		fromToken.TeacherID = cached.TeacherID
		if fromToken.UserType == "" {
			fromToken.UserType = cached.UserType
		}
		if fromToken.ID == "" {
			fromToken.ID = cached.ID
		}
	}
	s.Profile = fromToken
	return s
}

// IsLoggedIn reports whether the session holds a usable token
func (s *Session) IsLoggedIn() bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.claims != nil && s.claims.expired(s.clock()) {
		return false
	}
	return true
}

// IsAdmin reports whether the profile's role is admin.
// It does not imply IsLoggedIn; the guard checks both.
func (s *Session) IsAdmin() bool {
	if s == nil || s.Profile == nil {
		return false
	}
	return s.Profile.UserType == api.UserTypeAdmin
}

// Flags derives the guard input
func (s *Session) Flags() Flags {
	return Flags{LoggedIn: s.IsLoggedIn(), Admin: s.IsAdmin()}
}

// ExpiresAt returns the token expiry, if the token carries one
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s == nil || s.claims == nil || s.claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return s.claims.ExpiresAt.Time, true
}

func (s *Session) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
