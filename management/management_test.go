package management

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/supabase/create-project", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var params CreateProjectParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "Acme", params.Name)

		_ = json.NewEncoder(w).Encode(Credentials{ProjectRef: "ref1", APIKey: "key"})
	}))
	defer srv.Close()

	creds, err := NewClient(srv.URL+"/").CreateProject(context.Background(), "tok", CreateProjectParams{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "ref1", creds.ProjectRef)
	assert.Equal(t, "key", creds.APIKey)
}

func TestClient_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"quota exceeded"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).InitializeSchema(context.Background(), "tok", "ref1", "key")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestClient_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListOrganizations(context.Background(), "tok")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to fetch organizations", apiErr.Message)
}

func TestDemo_CreateProject(t *testing.T) {
	creds, err := Demo{}.CreateProject(context.Background(), "", CreateProjectParams{Name: "My  Kitchen"})
	require.NoError(t, err)
	assert.Equal(t, "https://mock-my-kitchen.supabase.co", creds.APIURL)
	assert.NotEmpty(t, creds.APIKey)

	_, err = Demo{}.CreateProject(context.Background(), "", CreateProjectParams{Name: "  "})
	assert.Error(t, err)
}
