package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"fitcoach/coaching-app/internal/domain"
)

func TestGatewayAttachesIdentityHeaders(t *testing.T) {
	session, api := newTestSession(t)
	user := testUser(domain.RoleTrainer)

	var gotID, gotRole string
	api.handle("GET /get-users", func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("x-user-id")
		gotRole = r.Header.Get("x-user-role")
		writeJSON(w, http.StatusOK, map[string]any{"users": []any{}})
	})

	loginAs(t, session, api, user)
	if err := session.FetchUsers(context.Background()); err != nil {
		t.Fatalf("fetch users failed: %v", err)
	}

	if gotID != user.ID.Hex() {
		t.Errorf("x-user-id = %q, want %q", gotID, user.ID.Hex())
	}
	if gotRole != string(user.Role) {
		t.Errorf("x-user-role = %q, want %q", gotRole, user.Role)
	}
}

func TestGatewayOmitsHeadersWhenAnonymous(t *testing.T) {
	session, api := newTestSession(t)

	var sawIdentity bool
	api.handle("GET /get-plans", func(w http.ResponseWriter, r *http.Request) {
		sawIdentity = r.Header.Get("x-user-id") != "" || r.Header.Get("x-user-role") != ""
		writeJSON(w, http.StatusOK, map[string]any{"plans": []any{}})
	})

	if err := session.FetchPlans(context.Background()); err != nil {
		t.Fatalf("fetch plans failed: %v", err)
	}
	if sawIdentity {
		t.Errorf("identity headers sent on anonymous call")
	}
}

func TestGatewaySurfacesServerMessage(t *testing.T) {
	api := newTestAPI(t)
	gateway := NewGateway(api.server.URL, api.server.Client())

	api.handle("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "account is pending approval"})
	})

	err := gateway.Call(context.Background(), http.MethodPost, "/login", map[string]string{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
	if apiErr.Error() != "account is pending approval" {
		t.Errorf("message = %q, want server text", apiErr.Error())
	}
}

func TestGatewayGenericFallbackWithoutMessage(t *testing.T) {
	api := newTestAPI(t)
	gateway := NewGateway(api.server.URL, api.server.Client())

	api.handle("GET /ratings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := gateway.Call(context.Background(), http.MethodGet, "/ratings", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Error() != "request failed with status 502" {
		t.Errorf("message = %q, want generic fallback", apiErr.Error())
	}
}

func TestGatewayNoContentLeavesOutputUntouched(t *testing.T) {
	api := newTestAPI(t)
	gateway := NewGateway(api.server.URL, api.server.Client())

	api.handle("DELETE /training-videos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out := map[string]string{"sentinel": "untouched"}
	if err := gateway.Call(context.Background(), http.MethodDelete, "/training-videos", map[string]string{"videoId": "x"}, &out); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if out["sentinel"] != "untouched" {
		t.Errorf("out mutated on 204: %v", out)
	}
}
