package domain

import "strings"

// Session is an authenticated login. It lives only in process memory and
// is handed explicitly to every request that needs the token.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Valid reports whether the session carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// NormalizeUsername trims surrounding whitespace from a username.
// An empty result means the username is not usable.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
