package client

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdminBootstrapFetchSet(t *testing.T) {
	session, api := newTestSession(t)
	loginAs(t, session, api, testUser(domain.RoleAdmin))

	want := []string{
		"POST /login",
		"GET /get-plans",
		"GET /notifications-crud",
		"GET /get-users",
		"GET /ratings",
		"GET /training-videos",
		"GET /nutrition-files",
	}
	if got := api.callOrder(); !reflect.DeepEqual(got, want) {
		t.Errorf("call order = %v, want %v", got, want)
	}
	if session.Loading() {
		t.Errorf("loading still true after bootstrap")
	}
}

func TestTrainerBootstrapScopesVideosToSelf(t *testing.T) {
	session, api := newTestSession(t)
	trainer := testUser(domain.RoleTrainer)
	loginAs(t, session, api, trainer)

	videoCalls := api.callsTo("GET /training-videos")
	if len(videoCalls) != 1 {
		t.Fatalf("video fetches = %v, want exactly one", videoCalls)
	}
	want := "GET /training-videos?uploadedBy=" + trainer.ID.Hex()
	if videoCalls[0] != want {
		t.Errorf("video fetch = %q, want %q", videoCalls[0], want)
	}
	if calls := api.callsTo("GET /ratings"); len(calls) != 0 {
		t.Errorf("trainer fetched ratings: %v", calls)
	}
}

func TestTraineeWithoutTrainerSkipsMessages(t *testing.T) {
	session, api := newTestSession(t)
	trainee := testUser(domain.RoleTrainee)
	loginAs(t, session, api, trainee)

	if calls := api.callsTo("GET /messages"); len(calls) != 0 {
		t.Errorf("trainee without trainer fetched messages: %v", calls)
	}
	scheduleCalls := api.callsTo("GET /trainee-schedules")
	want := "GET /trainee-schedules?traineeId=" + trainee.ID.Hex()
	if len(scheduleCalls) != 1 || scheduleCalls[0] != want {
		t.Errorf("schedule fetch = %v, want %q", scheduleCalls, want)
	}
}

func TestTraineeWithTrainerFetchesConversation(t *testing.T) {
	session, api := newTestSession(t)
	trainee := testUser(domain.RoleTrainee)
	trainer := testUser(domain.RoleTrainer)
	trainee.TrainerID = &trainer.ID
	loginAs(t, session, api, trainee)

	calls := api.callsTo("GET /messages")
	want := "GET /messages?partnerId=" + trainer.ID.Hex()
	if len(calls) != 1 || calls[0] != want {
		t.Errorf("message fetch = %v, want %q", calls, want)
	}
	videoCalls := api.callsTo("GET /training-videos")
	wantVideos := "GET /training-videos?uploadedBy=" + trainer.ID.Hex()
	if len(videoCalls) != 1 || videoCalls[0] != wantVideos {
		t.Errorf("video fetch = %v, want %q", videoCalls, wantVideos)
	}
}

func TestBootstrapSurvivesFailedFetch(t *testing.T) {
	session, api := newTestSession(t)
	api.handle("GET /get-users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "database down"})
	})

	loginAs(t, session, api, testUser(domain.RoleAdmin))

	if len(session.Users()) != 0 {
		t.Errorf("users populated despite failed fetch")
	}
	// Fetches after the failing one still ran.
	if calls := api.callsTo("GET /ratings"); len(calls) != 1 {
		t.Errorf("ratings fetch after failure = %v, want one call", calls)
	}
	if session.Loading() {
		t.Errorf("loading still true after bootstrap with failure")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	session, api := newTestSession(t)
	api.handle("GET /get-plans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"plans": []map[string]any{{"name": "Basic", "durationMonths": 1}},
		})
	})
	loginAs(t, session, api, testUser(domain.RoleAdmin))

	if len(session.Plans()) == 0 {
		t.Fatalf("expected plans before logout")
	}

	session.Logout()

	if session.Principal() != nil {
		t.Errorf("principal survives logout")
	}
	if len(session.Plans()) != 0 || len(session.Users()) != 0 || len(session.Notifications()) != 0 {
		t.Errorf("collections survive logout")
	}
	// Silent re-auth must now find nothing.
	ok, err := session.Start(context.Background())
	if err != nil {
		t.Fatalf("start after logout failed: %v", err)
	}
	if ok {
		t.Errorf("start re-authenticated after logout")
	}
}

func TestLoginRejectsEmptyEnvelope(t *testing.T) {
	session, api := newTestSession(t)
	api.handle("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	user, err := session.Login(context.Background(), "+201000000001", "secret123")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil", user)
	}
	if session.Principal() != nil {
		t.Errorf("principal established from an empty envelope")
	}
	if id, _ := session.identity.Load(); id != "" {
		t.Errorf("identity persisted from an empty envelope: %q", id)
	}
}

func TestLoginReplacesPreviousSessionState(t *testing.T) {
	session, api := newTestSession(t)
	api.handle("GET /ratings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ratings": []map[string]any{{"id": primitive.NewObjectID().Hex(), "stars": 4}},
		})
	})

	loginAs(t, session, api, testUser(domain.RoleAdmin))
	if len(session.Ratings()) != 1 {
		t.Fatalf("ratings = %d, want 1 after admin bootstrap", len(session.Ratings()))
	}

	// A second login without an intervening logout must not leak the previous
	// principal's collections into the new session.
	trainer := testUser(domain.RoleTrainer)
	loginAs(t, session, api, trainer)

	if got := session.Principal(); got == nil || got.ID != trainer.ID {
		t.Fatalf("principal = %+v, want the trainer", got)
	}
	if len(session.Ratings()) != 0 {
		t.Errorf("admin's ratings survived the trainer's login")
	}
	if len(session.Users()) != 0 {
		t.Errorf("admin's users survived the trainer's login")
	}
}

func TestStartSilentReauth(t *testing.T) {
	session, api := newTestSession(t)
	user := testUser(domain.RoleTrainer)
	loginAs(t, session, api, user)

	api.handle("GET /get-current-user", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != user.ID.Hex() {
			t.Errorf("userId param = %q, want %q", got, user.ID.Hex())
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	})

	// A fresh session sharing the identity store picks the principal back up.
	revived := NewSession(NewGateway(api.server.URL, api.server.Client()), session.identity)
	ok, err := revived.Start(context.Background())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !ok {
		t.Fatalf("silent re-auth did not establish a principal")
	}
	if got := revived.Principal(); got == nil || got.ID != user.ID {
		t.Errorf("principal = %+v, want %s", got, user.ID.Hex())
	}
}

func TestStartDiscardsRejectedIdentity(t *testing.T) {
	session, api := newTestSession(t)
	user := testUser(domain.RoleTrainee)
	loginAs(t, session, api, user)

	api.handle("GET /get-current-user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "account has been rejected"})
	})

	revived := NewSession(NewGateway(api.server.URL, api.server.Client()), session.identity)
	ok, err := revived.Start(context.Background())
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if ok {
		t.Errorf("rejected identity established a principal")
	}
	if id, _ := session.identity.Load(); id != "" {
		t.Errorf("persisted identity survived rejection: %q", id)
	}
}
