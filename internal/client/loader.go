package client

import (
	"context"
	"net/http"
	"net/url"

	"fitcoach/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bootstrap runs the role-scoped initial fetches, sequentially, in policy
// order. Every role fetches plans and its own notifications first. A failed
// fetch is logged and leaves its collection empty; it never aborts the rest,
// and bootstrap completes regardless.
func (s *Session) bootstrap(ctx context.Context) {
	principal := s.Principal()
	if principal == nil {
		return
	}

	for _, step := range s.fetchPlan(principal) {
		if err := step.run(ctx); err != nil {
			s.log.Warn().Err(err).Str("fetch", step.name).Msg("bootstrap fetch failed")
		}
	}
}

type fetchStep struct {
	name string
	run  func(ctx context.Context) error
}

// fetchPlan is the per-role policy table.
func (s *Session) fetchPlan(principal *domain.User) []fetchStep {
	steps := []fetchStep{
		{"plans", s.FetchPlans},
		{"notifications", s.FetchNotifications},
	}

	switch principal.Role {
	case domain.RoleAdmin:
		steps = append(steps,
			fetchStep{"users", s.FetchUsers},
			fetchStep{"ratings", s.FetchRatings},
			fetchStep{"videos", func(ctx context.Context) error { return s.FetchVideos(ctx, nil) }},
			fetchStep{"files", s.FetchFiles},
		)
	case domain.RoleTrainer:
		uploaderID := principal.ID
		steps = append(steps,
			fetchStep{"users", s.FetchUsers},
			fetchStep{"videos", func(ctx context.Context) error { return s.FetchVideos(ctx, &uploaderID) }},
			fetchStep{"files", s.FetchFiles},
		)
	case domain.RoleTrainee:
		steps = append(steps,
			fetchStep{"videos", func(ctx context.Context) error { return s.FetchVideos(ctx, principal.TrainerID) }},
			fetchStep{"files", s.FetchFiles},
			fetchStep{"schedule", func(ctx context.Context) error { return s.FetchSchedule(ctx, principal.ID) }},
		)
		if principal.TrainerID != nil {
			trainerID := *principal.TrainerID
			steps = append(steps,
				fetchStep{"messages", func(ctx context.Context) error { return s.FetchConversation(ctx, trainerID) }},
			)
		}
	}
	return steps
}

// FetchUsers refreshes the users collection.
func (s *Session) FetchUsers(ctx context.Context) error {
	seq := s.beginFetch(colUsers)
	var env usersEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, "/get-users", nil, &env); err != nil {
		return err
	}
	s.commitFetch(colUsers, seq, func() { s.users = env.Users })
	return nil
}

// FetchPlans refreshes the plans collection.
func (s *Session) FetchPlans(ctx context.Context) error {
	seq := s.beginFetch(colPlans)
	var env plansEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, "/get-plans", nil, &env); err != nil {
		return err
	}
	s.commitFetch(colPlans, seq, func() { s.plans = env.Plans })
	return nil
}

// FetchVideos refreshes the videos collection, optionally narrowed to one
// uploader.
func (s *Session) FetchVideos(ctx context.Context, uploadedBy *primitive.ObjectID) error {
	path := "/training-videos"
	if uploadedBy != nil {
		path += "?uploadedBy=" + url.QueryEscape(uploadedBy.Hex())
	}

	seq := s.beginFetch(colVideos)
	var env videosEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, path, nil, &env); err != nil {
		return err
	}
	s.commitFetch(colVideos, seq, func() { s.videos = env.Videos })
	return nil
}

// FetchFiles refreshes the nutrition files collection. The server scopes the
// result to the requesting principal.
func (s *Session) FetchFiles(ctx context.Context) error {
	seq := s.beginFetch(colFiles)
	var env filesEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, "/nutrition-files", nil, &env); err != nil {
		return err
	}
	s.commitFetch(colFiles, seq, func() { s.files = env.Files })
	return nil
}

// FetchSchedule refreshes the cached schedule for one trainee. A response
// that arrives after a newer schedule fetch started is discarded, so
// switching the selected trainee while a fetch is outstanding can never show
// the previous trainee's items.
func (s *Session) FetchSchedule(ctx context.Context, traineeID primitive.ObjectID) error {
	seq := s.beginFetch(colSchedule)
	var env scheduleEnvelope
	err := s.gateway.Call(ctx, http.MethodGet, "/trainee-schedules?traineeId="+url.QueryEscape(traineeID.Hex()), nil, &env)
	if err != nil {
		return err
	}
	s.commitFetch(colSchedule, seq, func() {
		s.schedule = env.Schedule
		s.scheduleOwner = traineeID
	})
	return nil
}

// FetchConversation refreshes the cached 1:1 conversation with a partner,
// oldest message first. Stale responses are discarded the same way as for
// schedules.
func (s *Session) FetchConversation(ctx context.Context, partnerID primitive.ObjectID) error {
	seq := s.beginFetch(colMessages)
	var env messagesEnvelope
	err := s.gateway.Call(ctx, http.MethodGet, "/messages?partnerId="+url.QueryEscape(partnerID.Hex()), nil, &env)
	if err != nil {
		return err
	}
	s.commitFetch(colMessages, seq, func() {
		s.messages = env.Messages
		s.chatPartner = partnerID
	})
	return nil
}

// FetchNotifications refreshes the principal's notifications.
func (s *Session) FetchNotifications(ctx context.Context) error {
	seq := s.beginFetch(colNotifications)
	var env notificationsEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, "/notifications-crud", nil, &env); err != nil {
		return err
	}
	s.commitFetch(colNotifications, seq, func() { s.notifications = env.Notifications })
	return nil
}

// FetchRatings refreshes the ratings collection. Admin only.
func (s *Session) FetchRatings(ctx context.Context) error {
	seq := s.beginFetch(colRatings)
	var env ratingsEnvelope
	if err := s.gateway.Call(ctx, http.MethodGet, "/ratings", nil, &env); err != nil {
		return err
	}
	s.commitFetch(colRatings, seq, func() { s.ratings = env.Ratings })
	return nil
}
