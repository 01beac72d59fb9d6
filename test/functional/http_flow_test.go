package functional_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invotrack/internal/auth"
	"invotrack/internal/domain/client"
	"invotrack/internal/domain/invoice"
	"invotrack/internal/domain/snapshot"
	"invotrack/internal/repository/mocks"
	"invotrack/internal/testserver"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeGoTrue accepts any credentials and issues a fixed user.
func fakeGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","user":{"id":"owner-1","email":"a@b.c"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFullLifecycle(t *testing.T) {
	gotrue := fakeGoTrue(t)

	remote := snapshot.Default()
	remote.Clients = append(remote.Clients, client.Client{
		ID: "remote-1", Name: "Remote Co", Frequency: client.FrequencyQuarterly,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	})
	remote.Invoices[invoice.CellID("remote-1", 2025, 0)] =
		invoice.NewCell("remote-1", 2025, 0, time.Now().UTC())

	mirror := &mocks.RemoteMirror{}
	mirror.On("FetchAll", mock.Anything, "owner-1").Return(remote, nil).Once()
	mirror.On("UpsertClient", mock.Anything, "owner-1", mock.Anything).Return(nil)
	mirror.On("UpsertCell", mock.Anything, "owner-1", mock.Anything).Return(nil)

	ts := testserver.NewWith(t, auth.NewClient(gotrue.URL, "test-key"), mirror)

	// Work locally before signing in: no remote traffic.
	var local client.Client
	status := ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Local Co", "frequency": "Monthly",
	}, &local)
	require.Equal(t, http.StatusCreated, status)

	status = ts.JSON(t, http.MethodPut, "/v1/invoices/"+local.ID+"/2025/1/status",
		map[string]string{"status": "COMPLETED"}, nil)
	require.Equal(t, http.StatusOK, status)
	mirror.AssertNotCalled(t, "UpsertClient", mock.Anything, mock.Anything, mock.Anything)

	// Sign in: the remote snapshot replaces the local one wholesale.
	status = ts.JSON(t, http.MethodPost, "/v1/auth/signin", map[string]string{
		"email": "a@b.c", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	ts.Service.Wait()

	var listed []client.Client
	ts.JSON(t, http.MethodGet, "/v1/clients", nil, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, "remote-1", listed[0].ID)

	// Mutations while signed in mirror to the remote backend.
	var added client.Client
	status = ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Synced Co", "frequency": "Annually",
	}, &added)
	require.Equal(t, http.StatusCreated, status)
	ts.Service.Wait()
	mirror.AssertCalled(t, "UpsertClient", mock.Anything, "owner-1",
		mock.MatchedBy(func(got client.Client) bool { return got.ID == added.ID }))

	// Sign out stops remote sync; local state stands.
	status = ts.JSON(t, http.MethodPost, "/v1/auth/signout", nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	ts.JSON(t, http.MethodGet, "/v1/clients", nil, &listed)
	require.Len(t, listed, 2)
}

func TestRemoteFetchFailureFallsBackOverHTTP(t *testing.T) {
	gotrue := fakeGoTrue(t)

	mirror := &mocks.RemoteMirror{}
	mirror.On("FetchAll", mock.Anything, "owner-1").
		Return(nil, errors.New("fetch failed")).Once()

	ts := testserver.NewWith(t, auth.NewClient(gotrue.URL, "test-key"), mirror)

	var local client.Client
	ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Local Co", "frequency": "Monthly",
	}, &local)

	status := ts.JSON(t, http.MethodPost, "/v1/auth/signin", map[string]string{
		"email": "a@b.c", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	ts.Service.Wait()

	// Local data survives and the failure surfaces exactly once.
	var listed []client.Client
	ts.JSON(t, http.MethodGet, "/v1/clients", nil, &listed)
	require.Len(t, listed, 1)
	require.Equal(t, local.ID, listed[0].ID)

	var notices []struct {
		Message string `json:"message"`
	}
	ts.JSON(t, http.MethodGet, "/v1/notifications", nil, &notices)
	require.Len(t, notices, 1)
}
