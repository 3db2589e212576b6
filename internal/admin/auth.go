package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/wolfman30/elitecuts-web/internal/backend"
	"github.com/wolfman30/elitecuts-web/pkg/logging"
)

// LoginAPI is the backend login call.
type LoginAPI interface {
	Login(ctx context.Context, username, password string) (*backend.LoginResponse, error)
}

// LoginError carries the message shown on the login page.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }
func (e *LoginError) Unwrap() error { return e.Err }

// Authenticator exchanges credentials for a token and stores it.
type Authenticator struct {
	api      LoginAPI
	sessions *Sessions
	logger   *logging.Logger
}

func NewAuthenticator(api LoginAPI, sessions *Sessions, logger *logging.Logger) *Authenticator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Authenticator{api: api, sessions: sessions, logger: logger.Component("admin")}
}

// Login authenticates and persists the token for visitorID.
func (a *Authenticator) Login(ctx context.Context, visitorID, username, password string) (Session, error) {
	resp, err := a.api.Login(ctx, username, password)
	if err != nil {
		msg := MsgConnectionError
		if backend.IsAPIError(err) || errors.Is(err, backend.ErrEmptyAccessToken) {
			msg = MsgInvalidCredentials
		}
		a.logger.Warn("admin login failed", "username", username, "error", err)
		return Session{}, &LoginError{Message: msg, Err: err}
	}

	session, err := a.sessions.Save(ctx, visitorID, resp.AccessToken)
	if err != nil {
		a.logger.Error("failed to persist admin token", "error", err)
		return Session{}, &LoginError{Message: MsgConnectionError, Err: fmt.Errorf("save session: %w", err)}
	}
	a.logger.Info("admin logged in", "username", username)
	return session, nil
}

// Logout clears the durable token.
func (a *Authenticator) Logout(ctx context.Context, visitorID string) error {
	return a.sessions.Clear(ctx, visitorID)
}
