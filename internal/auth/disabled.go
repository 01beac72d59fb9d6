package auth

import "context"

// Disabled is the Authenticator used when authentication is bypassed: every
// request is treated as authenticated with no owner scoping, and the
// sign-in/sign-up surface reports auth as disabled.
type Disabled struct{}

func (Disabled) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrAuthDisabled
}

func (Disabled) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrAuthDisabled
}

func (Disabled) SignOut(ctx context.Context) error {
	return nil
}

func (Disabled) Session() *Session {
	return nil
}
