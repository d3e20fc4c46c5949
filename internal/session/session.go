// Package session owns the authentication state of the console: an
// in-memory snapshot plus a sealed durable store that lets a session
// survive restarts.
package session

import (
	"staffkeeper/internal/models"
)

// Session is a snapshot of the authentication state. A session is
// authenticated only when both an access token and a user profile are
// present; a bare token (for example after a crash between OTP
// verification and the profile fetch) does not count.
type Session struct {
	Tokens models.TokenPair
	User   *models.UserProfile
}

// IsAuthenticated reports whether the session holds both an access
// token and a user profile.
func (s Session) IsAuthenticated() bool {
	return s.Tokens.AccessToken != "" && s.User != nil
}

// Empty reports whether the session holds no tokens and no user.
func (s Session) Empty() bool {
	return s.Tokens.Empty() && s.User == nil
}

// clone returns a deep copy so callers can hold a snapshot without
// observing later mutations.
func (s Session) clone() Session {
	out := Session{Tokens: s.Tokens}
	if s.User != nil {
		u := *s.User
		u.Departments = append([]string(nil), s.User.Departments...)
		out.User = &u
	}
	return out
}
