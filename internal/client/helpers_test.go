package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testAPI is a scriptable stand-in for the server. Handlers are keyed by
// "METHOD /path"; unhandled GET collection endpoints fall back to an empty
// envelope so bootstrap always completes.
type testAPI struct {
	t  *testing.T
	mu sync.Mutex

	server   *httptest.Server
	handlers map[string]http.HandlerFunc
	calls    []string
}

var emptyEnvelopes = map[string]string{
	"/get-plans":          `{"plans":[]}`,
	"/get-users":          `{"users":[]}`,
	"/training-videos":    `{"videos":[]}`,
	"/nutrition-files":    `{"files":[]}`,
	"/trainee-schedules":  `{"schedule":[]}`,
	"/messages":           `{"messages":[]}`,
	"/notifications-crud": `{"notifications":[]}`,
	"/ratings":            `{"ratings":[]}`,
}

func newTestAPI(t *testing.T) *testAPI {
	api := &testAPI{t: t, handlers: make(map[string]http.HandlerFunc)}
	api.server = httptest.NewServer(api)
	t.Cleanup(api.server.Close)
	return api
}

func (a *testAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.calls = append(a.calls, r.Method+" "+r.URL.RequestURI())
	handler := a.handlers[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if handler != nil {
		handler(w, r)
		return
	}
	if r.Method == http.MethodGet {
		if body, ok := emptyEnvelopes[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
			return
		}
	}
	http.Error(w, `{"message":"no handler"}`, http.StatusNotFound)
}

// handle registers a handler under "METHOD /path".
func (a *testAPI) handle(key string, fn http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[key] = fn
}

// callsTo returns the recorded requests whose method and path match key.
func (a *testAPI) callsTo(key string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, call := range a.calls {
		if call == key || strings.HasPrefix(call, key+"?") {
			out = append(out, call)
		}
	}
	return out
}

// callOrder returns the paths of all recorded calls, query stripped.
func (a *testAPI) callOrder() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.calls))
	for i, call := range a.calls {
		if q := strings.IndexByte(call, '?'); q >= 0 {
			call = call[:q]
		}
		out[i] = call
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// newTestSession wires a session against the scripted server with an
// in-memory identity store.
func newTestSession(t *testing.T) (*Session, *testAPI) {
	api := newTestAPI(t)
	gateway := NewGateway(api.server.URL, api.server.Client())
	return NewSession(gateway, NewMemoryIdentityStore()), api
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:          primitive.NewObjectID(),
		PhoneNumber: "+201000000001",
		Country:     "EG",
		Role:        role,
		Status:      domain.StatusActive,
		CreatedAt:   time.Now(),
	}
}

// loginAs scripts /login to return the given user and performs a login.
func loginAs(t *testing.T, session *Session, api *testAPI, user *domain.User) {
	t.Helper()
	api.handle("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	})
	if _, err := session.Login(context.Background(), user.PhoneNumber, "secret123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}
