package admin

import "errors"

// Messages shown on the admin pages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgConnectionError    = "Connection error"
	MsgCancelFailed       = "Reservation could not be cancelled"
	MsgAddHoursFailed     = "Failed to add working hours"
)

var (
	// ErrTokenNotFound is returned by a TokenStore with nothing stored for a key.
	ErrTokenNotFound = errors.New("admin: token not found")
	// ErrNotAuthenticated is returned by dashboard operations without a token.
	ErrNotAuthenticated = errors.New("admin: not authenticated")
	ErrEmptyVisitor     = errors.New("admin: visitor id is required")
)
