package service

import (
	"context"
	"strings"
)

// Session is the outcome of a login
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email"`
}

// SessionService signs users in. Any non-empty email and password pair is
// accepted; there is no credential store.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
}

type sessionServiceImpl struct {
	logger Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(logger Logger) SessionService {
	return &sessionServiceImpl{logger: logger}
}

func (s *sessionServiceImpl) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid("", "Please enter both email and password")
	}
	s.logger.Info("User signed in", "email", email)
	return &Session{Authenticated: true, Email: email}, nil
}
