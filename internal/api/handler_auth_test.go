package api_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"invotrack/internal/auth"
	"invotrack/internal/domain/tracker"
	"invotrack/internal/testserver"

	"github.com/stretchr/testify/require"
)

// fakeAuth accepts a single known credential pair.
type fakeAuth struct {
	mu      sync.Mutex
	current *auth.Session
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	if password != "correct" {
		return nil, auth.ErrInvalidCredentials
	}
	sess := &auth.Session{UserID: "user-1", Email: email, AccessToken: "tok"}
	f.mu.Lock()
	f.current = sess
	f.mu.Unlock()
	return sess, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	return f.SignIn(ctx, email, password)
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeAuth) Session() *auth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func TestSignIn_DisabledAuth(t *testing.T) {
	ts := testserver.New(t)

	status := ts.JSON(t, http.MethodPost, "/v1/auth/signin", map[string]string{
		"email": "a@b.c", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSignInSignOutFlow(t *testing.T) {
	ts := testserver.NewWith(t, &fakeAuth{}, nil)

	var resp struct {
		Authenticated bool          `json:"authenticated"`
		Session       *auth.Session `json:"session"`
		SyncState     string        `json:"syncState"`
	}
	status := ts.JSON(t, http.MethodPost, "/v1/auth/signin", map[string]string{
		"email": "a@b.c", "password": "correct",
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Authenticated)
	require.Equal(t, "user-1", resp.Session.UserID)
	ts.Service.Wait()

	// No mirror configured, so sync settles on local state.
	state, owner := ts.Service.State()
	require.Equal(t, tracker.SyncLocalFallback, state)
	require.Equal(t, "user-1", owner)

	status = ts.JSON(t, http.MethodPost, "/v1/auth/signout", nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	state, owner = ts.Service.State()
	require.Equal(t, tracker.SyncUnauthenticated, state)
	require.Empty(t, owner)
}

func TestSignIn_BadCredentials(t *testing.T) {
	ts := testserver.NewWith(t, &fakeAuth{}, nil)

	status := ts.JSON(t, http.MethodPost, "/v1/auth/signin", map[string]string{
		"email": "a@b.c", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestSessionEndpoint(t *testing.T) {
	ts := testserver.NewWith(t, &fakeAuth{}, nil)

	var resp struct {
		Authenticated bool   `json:"authenticated"`
		SyncState     string `json:"syncState"`
	}
	status := ts.JSON(t, http.MethodGet, "/v1/auth/session", nil, &resp)
	require.Equal(t, http.StatusOK, status)
	require.False(t, resp.Authenticated)
	require.Equal(t, string(tracker.SyncUnauthenticated), resp.SyncState)
}

func TestNotificationsEndpoint_ConsumesOnRead(t *testing.T) {
	ts := testserver.New(t)
	ts.Notices.Notify("something happened")

	var first []struct {
		Message string `json:"message"`
	}
	status := ts.JSON(t, http.MethodGet, "/v1/notifications", nil, &first)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, first, 1)
	require.Equal(t, "something happened", first[0].Message)

	var second []struct {
		Message string `json:"message"`
	}
	ts.JSON(t, http.MethodGet, "/v1/notifications", nil, &second)
	require.Empty(t, second)
}
