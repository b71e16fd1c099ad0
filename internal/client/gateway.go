// Package client is the session and data orchestration layer consumed by the
// app frontends: a thin API gateway client, a session store holding the
// authenticated principal and its collections, a role-scoped bootstrap
// loader, and the action handlers that mutate server state and reconcile the
// local copies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Identity headers attached to every call made on behalf of a principal.
const (
	headerUserID   = "x-user-id"
	headerUserRole = "x-user-role"
)

// APIError is a non-2xx response, carrying the server's message field when
// one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Gateway performs one-shot JSON calls against the API root. No retries, no
// caching; callers re-invoke on failure.
type Gateway struct {
	baseURL    string
	httpClient *http.Client

	// identity returns the current principal's id and role, or empty
	// strings when unauthenticated.
	identity func() (id, role string)
}

// NewGateway creates a gateway for the given API root, e.g.
// "http://localhost:8080/api".
func NewGateway(baseURL string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		identity:   func() (string, string) { return "", "" },
	}
}

// SetIdentitySource wires the principal lookup used to stamp the identity
// headers. The session store installs itself here.
func (g *Gateway) SetIdentitySource(fn func() (id, role string)) {
	g.identity = fn
}

// Call performs one request. payload, when non-nil, is sent as a JSON body;
// out, when non-nil, receives the decoded 2xx response body. A 204 leaves
// out untouched.
func (g *Gateway) Call(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, role := g.identity(); id != "" {
		req.Header.Set(headerUserID, id)
		req.Header.Set(headerUserRole, role)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.decodeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// decodeError extracts the server's message field, falling back to a generic
// status-based message.
func (g *Gateway) decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
