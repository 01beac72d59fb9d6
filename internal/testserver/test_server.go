// Package testserver spins up the full HTTP stack over an in-memory local
// store for functional tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invotrack/internal/api"
	"invotrack/internal/auth"
	"invotrack/internal/domain/tracker"
	"invotrack/internal/localstore"
	"invotrack/internal/notify"
	"invotrack/internal/repository"

	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	Service *tracker.Service
	Store   *localstore.Store
	Notices *notify.Buffer
}

// New builds a server with authentication disabled and no remote mirror.
func New(t *testing.T) *TestServer {
	return NewWith(t, auth.Disabled{}, nil)
}

// NewWith builds a server around the given authenticator and mirror.
func NewWith(t *testing.T, authn auth.Authenticator, mirror repository.RemoteMirror) *TestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	store, err := localstore.Open(dsn, logger)
	require.NoError(t, err)

	notices := notify.NewBuffer(16)
	svc := tracker.NewService(store, mirror, notices, logger)
	require.NoError(t, svc.LoadLocal(context.Background()))

	server := httptest.NewServer(api.NewServer(logger, svc, authn, notices))

	t.Cleanup(func() {
		server.Close()
		svc.Wait()
		_ = store.Close()
	})

	return &TestServer{
		Server:  server,
		Service: svc,
		Store:   store,
		Notices: notices,
	}
}

// JSON performs one request with an optional JSON body, decodes the response
// into out when out is non-nil, and returns the status code.
func (ts *TestServer) JSON(t *testing.T, method, path string, in, out any) int {
	t.Helper()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode
}
