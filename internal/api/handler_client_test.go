package api_test

import (
	"net/http"
	"testing"

	"invotrack/internal/domain/client"
	"invotrack/internal/testserver"

	"github.com/stretchr/testify/require"
)

func TestCreateAndListClients(t *testing.T) {
	ts := testserver.New(t)

	var created client.Client
	status := ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name":         "Acme Corp",
		"frequency":    "Monthly",
		"instructions": "net 30",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Acme Corp", created.Name)
	require.Equal(t, client.FrequencyMonthly, created.Frequency)

	var listed []client.Client
	status = ts.JSON(t, http.MethodGet, "/v1/clients", nil, &listed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)
}

func TestCreateClient_Validation(t *testing.T) {
	ts := testserver.New(t)

	status := ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Acme", "frequency": "Weekly",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	status = ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "   ", "frequency": "Monthly",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateClient(t *testing.T) {
	ts := testserver.New(t)

	var created client.Client
	ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Acme", "frequency": "Monthly",
	}, &created)

	var updated client.Client
	status := ts.JSON(t, http.MethodPut, "/v1/clients/"+created.ID, map[string]string{
		"name": "Acme Ltd", "frequency": "Quarterly",
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Acme Ltd", updated.Name)
	require.Equal(t, client.FrequencyQuarterly, updated.Frequency)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	status = ts.JSON(t, http.MethodPut, "/v1/clients/missing", map[string]string{
		"name": "Ghost", "frequency": "Monthly",
	}, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestDeleteClient(t *testing.T) {
	ts := testserver.New(t)

	var created client.Client
	ts.JSON(t, http.MethodPost, "/v1/clients", map[string]string{
		"name": "Acme", "frequency": "Monthly",
	}, &created)

	status := ts.JSON(t, http.MethodDelete, "/v1/clients/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	var listed []client.Client
	ts.JSON(t, http.MethodGet, "/v1/clients", nil, &listed)
	require.Empty(t, listed)

	// Deleting again is still a no-op success.
	status = ts.JSON(t, http.MethodDelete, "/v1/clients/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, status)
}
