package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/pkg/logger"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collection names the session's cached server collections, used as keys for
// the per-collection fetch sequence counters.
type collection string

const (
	colUsers         collection = "users"
	colPlans         collection = "plans"
	colVideos        collection = "videos"
	colFiles         collection = "files"
	colSchedule      collection = "schedule"
	colMessages      collection = "messages"
	colNotifications collection = "notifications"
	colRatings       collection = "ratings"
)

// Session is the process-wide state holder: the authenticated principal plus
// in-memory copies of every collection the principal's role works with. The
// copies are caches of server state, refreshed wholesale on fetch; a stale
// response from a superseded fetch is discarded by a per-collection sequence
// check rather than overwriting newer data.
type Session struct {
	gateway  *Gateway
	identity IdentityStore
	log      zerolog.Logger

	mu        sync.Mutex
	principal *domain.User

	users         []domain.User
	plans         []domain.TrainingPlan
	videos        []domain.TrainingVideo
	files         []domain.NutritionFile
	schedule      []domain.TraineeScheduleItem
	scheduleOwner primitive.ObjectID
	messages      []domain.Message
	chatPartner   primitive.ObjectID
	notifications []domain.NotificationItem
	ratings       []domain.Rating

	seq map[collection]uint64

	loading       bool
	actionLoading bool
}

// NewSession wires a session store onto a gateway and an identity store. The
// session installs itself as the gateway's identity source.
func NewSession(gateway *Gateway, identity IdentityStore) *Session {
	s := &Session{
		gateway:  gateway,
		identity: identity,
		log:      logger.Get().With().Str("component", "session").Logger(),
		seq:      make(map[collection]uint64),
	}
	gateway.SetIdentitySource(s.identityHeaders)
	return s
}

func (s *Session) identityHeaders() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return "", ""
	}
	return s.principal.ID.Hex(), string(s.principal.Role)
}

// Start attempts silent re-authentication from the persisted identifier and,
// on success, runs the role-scoped bootstrap. It reports whether a principal
// was established; an absent or rejected identifier is not an error.
func (s *Session) Start(ctx context.Context) (bool, error) {
	userID, err := s.identity.Load()
	if err != nil {
		return false, err
	}
	if userID == "" {
		return false, nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var env userEnvelope
	err = s.gateway.Call(ctx, http.MethodGet, "/get-current-user?userId="+url.QueryEscape(userID), nil, &env)
	if err != nil || env.User == nil {
		s.log.Info().Str("userId", userID).Msg("silent re-authentication failed, discarding persisted identity")
		_ = s.identity.Clear()
		return false, nil
	}

	s.setPrincipal(env.User)
	s.bootstrap(ctx)
	return true, nil
}

// Login authenticates with phone-or-email plus password, persists the
// identifier, and runs the role-scoped bootstrap.
func (s *Session) Login(ctx context.Context, emailOrPhone, password string) (*domain.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	payload := map[string]string{"emailOrPhone": emailOrPhone, "password": password}
	var env userEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/login", payload, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, ErrMalformedResponse
	}

	// Drop whatever a previously authenticated principal left behind before
	// the new principal's bootstrap fills the caches.
	s.resetCollections()
	s.setPrincipal(env.User)
	if err := s.identity.Save(env.User.ID.Hex()); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist identity")
	}
	s.bootstrap(ctx)
	return env.User, nil
}

// SignupInput carries the registration fields. The selected plan is
// mandatory; the account starts pending and cannot log in yet.
type SignupInput struct {
	PhoneNumber    string `json:"phoneNumber"`
	Country        string `json:"country"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Password       string `json:"password"`
	SelectedPlanID string `json:"selectedPlanId"`
}

// Signup registers a new trainee. No session is established: the account is
// pending until an admin approves it.
func (s *Session) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	var env userEnvelope
	if err := s.gateway.Call(ctx, http.MethodPost, "/signup", input, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, ErrMalformedResponse
	}
	return env.User, nil
}

// Logout clears the principal, every collection, and the persisted
// identifier. There is no server-side invalidation to perform.
func (s *Session) Logout() {
	s.setPrincipal(nil)
	s.resetCollections()

	if err := s.identity.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted identity")
	}
}

// resetCollections empties every cached collection and restarts the fetch
// sequences, so in-flight fetches from before the reset are discarded.
func (s *Session) resetCollections() {
	s.mu.Lock()
	s.users = nil
	s.plans = nil
	s.videos = nil
	s.files = nil
	s.schedule = nil
	s.scheduleOwner = primitive.NilObjectID
	s.messages = nil
	s.chatPartner = primitive.NilObjectID
	s.notifications = nil
	s.ratings = nil
	s.seq = make(map[collection]uint64)
	s.mu.Unlock()
}

func (s *Session) setPrincipal(user *domain.User) {
	s.mu.Lock()
	s.principal = user
	s.mu.Unlock()
}

// Principal returns the authenticated user, or nil.
func (s *Session) Principal() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Loading reports whether bootstrap is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ActionLoading reports whether any action handler is in flight. The flag is
// coarse: one flag for all actions, not per entity.
func (s *Session) ActionLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actionLoading
}

func (s *Session) beginAction() {
	s.mu.Lock()
	s.actionLoading = true
	s.mu.Unlock()
}

func (s *Session) endAction() {
	s.mu.Lock()
	s.actionLoading = false
	s.mu.Unlock()
}

// beginFetch bumps and returns the collection's fetch sequence. A response
// is only applied while its sequence is still the latest, so a late response
// from a superseded fetch never overwrites newer data.
func (s *Session) beginFetch(col collection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[col]++
	return s.seq[col]
}

// commitFetch applies fn under the lock if seq is still current for the
// collection, and reports whether it ran.
func (s *Session) commitFetch(col collection, seq uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[col] != seq {
		return false
	}
	fn()
	return true
}

// --- Collection accessors. Each returns a copy; the session's own slices
// are only touched under the lock.

func (s *Session) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...)
}

func (s *Session) Plans() []domain.TrainingPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TrainingPlan(nil), s.plans...)
}

func (s *Session) Videos() []domain.TrainingVideo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TrainingVideo(nil), s.videos...)
}

func (s *Session) Files() []domain.NutritionFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NutritionFile(nil), s.files...)
}

// Schedule returns the cached schedule and the trainee it belongs to.
func (s *Session) Schedule() (primitive.ObjectID, []domain.TraineeScheduleItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleOwner, append([]domain.TraineeScheduleItem(nil), s.schedule...)
}

// Messages returns the cached conversation and the partner it is with.
func (s *Session) Messages() (primitive.ObjectID, []domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatPartner, append([]domain.Message(nil), s.messages...)
}

func (s *Session) Notifications() []domain.NotificationItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NotificationItem(nil), s.notifications...)
}

func (s *Session) Ratings() []domain.Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Rating(nil), s.ratings...)
}
