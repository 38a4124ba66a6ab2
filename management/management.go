// Package management talks to the backing-database management API that
// provisions external projects for a tenant.
package management

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type CreateProjectParams struct {
	Name           string `json:"name" binding:"required"`
	OrganizationID string `json:"organizationId,omitempty"`
	DBPass         string `json:"dbPass,omitempty"`
	Region         string `json:"region,omitempty"`
}

// Credentials are returned by a successful project creation.
type Credentials struct {
	ProjectRef     string `json:"projectRef"`
	APIURL         string `json:"apiUrl"`
	APIKey         string `json:"apiKey"`
	AnonKey        string `json:"anonKey"`
	ServiceRoleKey string `json:"serviceRoleKey"`
	DatabaseURL    string `json:"databaseUrl"`
}

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provisioner creates and prepares external database projects.
type Provisioner interface {
	CreateProject(ctx context.Context, token string, params CreateProjectParams) (*Credentials, error)
	InitializeSchema(ctx context.Context, token, projectRef, apiKey string) error
	ListOrganizations(ctx context.Context, token string) ([]Organization, error)
}

// APIError carries the message field of an error payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("management: %s (status %d)", e.Message, e.Status)
}

// Client is the HTTP Provisioner.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CreateProject(ctx context.Context, token string, params CreateProjectParams) (*Credentials, error) {
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, "/api/supabase/create-project", token, params, &creds, "Failed to create project"); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Client) InitializeSchema(ctx context.Context, token, projectRef, apiKey string) error {
	body := map[string]string{"projectRef": projectRef, "apiKey": apiKey}
	return c.do(ctx, http.MethodPost, "/api/supabase/initialize-schema", token, body, nil, "Failed to initialize database schema")
}

func (c *Client) ListOrganizations(ctx context.Context, token string) ([]Organization, error) {
	var orgs []Organization
	if err := c.do(ctx, http.MethodGet, "/api/supabase/organizations", token, nil, &orgs, "Failed to fetch organizations"); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("management: marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("management: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("management: api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = fallback
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("management: decode response: %w", err)
	}
	return nil
}
