package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
	"github.com/ineludible/trazos-api/internal/core/trace"
)

// ResyncQueue abstracts the background retry queue used when a post-write
// resync fails. Enqueue must not block the request path.
type ResyncQueue interface {
	Enqueue(userID int64)
}

// ActivityService is the activity lifecycle manager: it validates input,
// computes the trace award, persists the activity, and resyncs the owner's
// aggregate statistics.
type ActivityService struct {
	activities ports.ActivityRepository
	users      ports.UserRepository
	stats      ports.StatsService
	calc       *trace.Calculator
	taxonomy   domain.Taxonomy
	queue      ResyncQueue // optional
	log        zerolog.Logger
}

func NewActivityService(
	activities ports.ActivityRepository,
	users ports.UserRepository,
	stats ports.StatsService,
	calc *trace.Calculator,
	taxonomy domain.Taxonomy,
	queue ResyncQueue,
	log zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		stats:      stats,
		calc:       calc,
		taxonomy:   taxonomy,
		queue:      queue,
		log:        log,
	}
}

// Create validates the submission, computes its traces, persists it, and
// resyncs the owner.
func (s *ActivityService) Create(ctx context.Context, ownerID int64, in ports.ActivityInput) (*ports.ActivityResult, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		Link:        in.Link,
		ImageURL:    in.ImageURL,
		Type:        in.Type,
		Arista:      in.Arista,
		Album:       in.Album,
		WordCount:   in.WordCount,
		Responses:   in.Responses,
		Traces:      s.score(in),
	}

	created, err := s.activities.Insert(ctx, activity)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", ownerID).Msg("failed to persist activity")
		return nil, err
	}

	s.log.Info().
		Int64("activity_id", created.ID).
		Int64("user_id", ownerID).
		Str("type", string(created.Type)).
		Int("traces", created.Traces).
		Msg("activity created")

	return &ports.ActivityResult{
		Activity: created,
		Owner:    s.resyncOwner(ctx, ownerID),
	}, nil
}

// Update recomputes the activity's traces from the new fields — a full
// recomputation, never a delta — and resyncs the owner. Only the owner may
// update; an admin bypass is a route-layer concern, not modelled here.
func (s *ActivityService) Update(ctx context.Context, activityID, requesterID int64, in ports.ActivityInput) (*ports.ActivityResult, error) {
	existing, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Description = in.Description
	existing.Date = in.Date
	existing.Link = in.Link
	existing.ImageURL = in.ImageURL
	existing.Type = in.Type
	existing.Arista = in.Arista
	existing.Album = in.Album
	existing.WordCount = in.WordCount
	existing.Responses = in.Responses
	existing.Traces = s.score(in)

	if err := s.activities.Update(ctx, existing); err != nil {
		s.log.Error().Err(err).Int64("activity_id", activityID).Msg("failed to update activity")
		return nil, err
	}

	s.log.Info().
		Int64("activity_id", activityID).
		Int("traces", existing.Traces).
		Msg("activity updated and rescored")

	return &ports.ActivityResult{
		Activity: existing,
		Owner:    s.resyncOwner(ctx, existing.UserID),
	}, nil
}

// Delete removes the activity and resyncs the former owner.
func (s *ActivityService) Delete(ctx context.Context, activityID, requesterID int64) error {
	existing, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if existing.UserID != requesterID {
		return domain.ErrForbidden
	}

	if err := s.activities.Delete(ctx, activityID); err != nil {
		s.log.Error().Err(err).Int64("activity_id", activityID).Msg("failed to delete activity")
		return err
	}

	s.log.Info().Int64("activity_id", activityID).Int64("user_id", existing.UserID).Msg("activity deleted")
	s.resyncOwner(ctx, existing.UserID)
	return nil
}

func (s *ActivityService) Get(ctx context.Context, activityID int64) (*domain.Activity, error) {
	return s.activities.FindByID(ctx, activityID)
}

func (s *ActivityService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Activity, error) {
	return s.activities.ListByOwner(ctx, ownerID)
}

// Preview exposes the calculator for the submission form's live point
// preview. No persistence, no side effects.
func (s *ActivityService) Preview(t domain.ActivityType, wordCount, responses int) int {
	return s.calc.ActivityTraces(t, wordCount, responses)
}

// resyncOwner triggers the owner's stats resync after a successful primary
// write. The primary write is never rolled back on resync failure: the job
// is handed to the retry queue and logged loudly so drift is discoverable.
// Returns the refreshed user, or nil when the resync was deferred.
func (s *ActivityService) resyncOwner(ctx context.Context, ownerID int64) *domain.User {
	if err := s.stats.Resync(ctx, ownerID); err != nil {
		s.log.Error().Err(err).Int64("user_id", ownerID).Msg("stats resync failed after activity write, queueing retry")
		if s.queue != nil {
			s.queue.Enqueue(ownerID)
		}
		return nil
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", ownerID).Msg("could not reload owner after resync")
		return nil
	}
	return owner
}

// score computes the trace award. Activities filed under the express arista
// are scored by their album tier; everything else goes through the per-type
// rules.
func (s *ActivityService) score(in ports.ActivityInput) int {
	if in.Arista == domain.AristaExpress {
		return s.calc.ExpressActivityTraces(expressTier(in.Album))
	}
	return s.calc.ActivityTraces(in.Type, in.WordCount, in.Responses)
}

// expressTier maps an express album key ("express-3") to its tier key
// ("tier3"). Unknown shapes pass through and score zero.
func expressTier(album string) string {
	n, ok := strings.CutPrefix(album, "express-")
	if !ok {
		return album
	}
	return "tier" + n
}

// validate enforces the lifecycle manager's input boundary. Every failing
// field is reported, not just the first.
func (s *ActivityService) validate(in ports.ActivityInput) error {
	verr := &domain.ValidationError{}

	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "is required")
	}
	if in.Date.IsZero() {
		verr.Add("date", "is required")
	}
	if in.WordCount <= 0 {
		verr.Add("word_count", "must be a positive integer")
	}
	if in.Responses < 0 {
		verr.Add("responses", "must not be negative")
	}
	if !domain.IsValidActivityType(in.Type) {
		verr.Add("type", fmt.Sprintf("unknown type %q", in.Type))
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		verr.Add("image_url", "is required")
	}
	if !s.taxonomy.HasArista(in.Arista) {
		verr.Add("arista", fmt.Sprintf("unknown arista %q", in.Arista))
	} else if !s.taxonomy.HasAlbum(in.Arista, in.Album) {
		verr.Add("album", fmt.Sprintf("unknown album %q for arista %q", in.Album, in.Arista))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}
