package admin

import (
	"context"
	"errors"
	"strings"
)

// Sessions loads, saves and clears admin sessions through a TokenStore.
type Sessions struct {
	store TokenStore
}

func NewSessions(store TokenStore) *Sessions {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	return &Sessions{store: store}
}

// Load returns the stored session. A missing token is an unauthenticated
// session, not an error.
func (s *Sessions) Load(ctx context.Context, visitorID string) (Session, error) {
	if strings.TrimSpace(visitorID) == "" {
		return Session{}, nil
	}
	token, err := s.store.Load(ctx, TokenKey(visitorID))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return Session{}, nil
		}
		return Session{}, err
	}
	if token == "" {
		return Session{}, nil
	}
	return Session{IsAuthenticated: true, Token: token}, nil
}

func (s *Sessions) Save(ctx context.Context, visitorID, token string) (Session, error) {
	if strings.TrimSpace(visitorID) == "" {
		return Session{}, ErrEmptyVisitor
	}
	if err := s.store.Save(ctx, TokenKey(visitorID), token); err != nil {
		return Session{}, err
	}
	return Session{IsAuthenticated: true, Token: token}, nil
}

func (s *Sessions) Clear(ctx context.Context, visitorID string) error {
	if strings.TrimSpace(visitorID) == "" {
		return nil
	}
	return s.store.Delete(ctx, TokenKey(visitorID))
}
