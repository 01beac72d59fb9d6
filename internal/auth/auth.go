// Package auth wraps the external authentication collaborator. The tracker
// only reacts to session transitions; credential handling lives elsewhere.
package auth

import (
	"context"
	"errors"
)

// Session identifies an authenticated user. A nil *Session means
// unauthenticated.
type Session struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	AccessToken string `json:"-"`
}

// Authenticator is the external authentication collaborator.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	// Session returns the current session, nil when unauthenticated.
	Session() *Session
}

var (
	// ErrAuthDisabled indicates authentication is bypassed by configuration.
	ErrAuthDisabled = errors.New("authentication is disabled")
	// ErrInvalidCredentials indicates the collaborator rejected the sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
