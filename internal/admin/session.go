// Package admin implements the admin console: the durable session token,
// login, and the reservation and working-hours dashboard.
package admin

import (
	"github.com/golang-jwt/jwt/v5"
)

// Session is the authoritative admin session for one visitor.
type Session struct {
	IsAuthenticated bool
	Token           string
}

// Subject returns the username claim of the backend token. The token is not
// verified; the value is only displayed.
func (s Session) Subject() string {
	if s.Token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return ""
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		return username
	}
	sub, _ := claims.GetSubject()
	return sub
}
