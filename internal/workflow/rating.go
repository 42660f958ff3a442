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

// RatingResult reports the outcome of a rating submission.
type RatingResult struct {
	Rating venues.Rating
	// Duplicate is set when the store already held a rating for this
	// (actor, venue) pair; Rating is the pre-existing record.
	Duplicate bool
	// Unpersisted is set when the rating could not be stored centrally
	// and only a local record of the fact exists.
	Unpersisted bool
}

// SubmitRating validates and persists a rating with idempotent-create
// semantics: a uniqueness conflict is a signal that a prior rating exists,
// and the pre-existing record is fetched and returned as the result.
func (s *Service) SubmitRating(ctx context.Context, rating venues.Rating) (*RatingResult, error) {
	if err := venues.ValidateRating(rating); err != nil {
		return nil, err
	}

	logger := s.requestLogger("submit_rating").With(
		logging.String(logging.FieldVenueID, rating.VenueID))

	actor, ok := s.bootstrap.Establish(ctx)
	if !ok {
		logger.Warn("no anonymous identity, keeping rating locally",
			logging.String(logging.FieldEventType, "rating_unpersisted"),
			logging.String(logging.FieldImpact, "rating will not be visible to others"))
		return s.localRating(rating), nil
	}
	rating.ActorID = actor.ID

	created, err := s.store.CreateRating(ctx, rating)
	switch {
	case err == nil:
		s.invalidateRatings(rating.VenueID)
		logger.Info("rating created", logging.String(logging.FieldActorID, actor.ID))
		return &RatingResult{Rating: *created}, nil

	case errors.Is(err, backing.ErrDuplicate):
		existing, fetchErr := s.store.GetRatingByActor(ctx, rating.VenueID, actor.ID)
		if fetchErr != nil {
			logger.Warn("duplicate detected but prior rating fetch failed",
				logging.Error(fetchErr))
			return nil, retrySafe(fetchErr)
		}
		logger.Info("rating already existed, returning prior record",
			logging.String(logging.FieldActorID, actor.ID))
		return &RatingResult{Rating: *existing, Duplicate: true}, nil

	case errors.Is(err, backing.ErrPolicy):
		logger.Warn("rating rejected by policy, keeping locally",
			logging.String(logging.FieldEventType, "rating_unpersisted"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "rating will not be visible to others"))
		result := s.localRating(rating)
		result.Rating.ActorID = actor.ID
		return result, nil

	default:
		logger.Error("rating submission failed", logging.Error(err))
		return nil, retrySafe(err)
	}
}

func (s *Service) localRating(rating venues.Rating) *RatingResult {
	rating.ID = "local-" + uuid.NewString()
	rating.CreatedAt = time.Now().UTC()
	return &RatingResult{Rating: rating, Unpersisted: true}
}
