package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"marquee/internal/backing"
	"marquee/internal/logging"
	"marquee/internal/venues"
)

// ProfileResult reports the outcome of a profile save.
type ProfileResult struct {
	Profile venues.Profile
	// Unpersisted is set when the profile could not be stored centrally
	// and only a local record of it exists.
	Unpersisted bool
}

// SaveProfile validates and persists profile changes. A policy rejection by
// the central store and a missing anonymous identity both degrade to a
// local-only record flagged Unpersisted rather than failing the save.
func (s *Service) SaveProfile(ctx context.Context, profile venues.Profile) (*ProfileResult, error) {
	if err := venues.ValidateProfile(profile); err != nil {
		return nil, err
	}

	logger := s.requestLogger("save_profile")

	actor, ok := s.bootstrap.Establish(ctx)
	if !ok {
		logger.Warn("no anonymous identity, keeping profile locally",
			logging.String(logging.FieldEventType, "profile_unpersisted"),
			logging.String(logging.FieldImpact, "profile will not be visible to others"))
		return s.localProfile(profile, "local-"+uuid.NewString()), nil
	}
	profile.ActorID = actor.ID

	err := s.store.UpsertProfile(ctx, profile)
	switch {
	case err == nil:
		s.invalidateProfile(actor.ID)
		logger.Info("profile stored", logging.String(logging.FieldActorID, actor.ID))
		profile.UpdatedAt = time.Now().UTC()
		return &ProfileResult{Profile: profile}, nil

	case errors.Is(err, backing.ErrPolicy):
		logger.Warn("profile rejected by policy, keeping locally",
			logging.String(logging.FieldEventType, "profile_unpersisted"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "profile will not be visible to others"))
		return s.localProfile(profile, actor.ID), nil

	default:
		logger.Error("profile save failed", logging.Error(err))
		return nil, retrySafe(err)
	}
}

// localProfile records the profile under the given actor id in the profile
// cache family, reaching its durable layer when one is wired, so the local
// record survives the next read.
func (s *Service) localProfile(profile venues.Profile, actorID string) *ProfileResult {
	profile.ActorID = actorID
	profile.UpdatedAt = time.Now().UTC()
	if s.profiles != nil {
		s.profiles.Set(actorID, profile)
	}
	return &ProfileResult{Profile: profile, Unpersisted: true}
}
