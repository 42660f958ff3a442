package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"marquee/internal/backing"
	"marquee/internal/directory"
	"marquee/internal/identity"
	"marquee/internal/logging"
	"marquee/internal/resourcecache"
	"marquee/internal/venues"
)

// ErrRetry is returned for unexpected failures; the operation is safe to
// repeat and nothing was left in a stuck state.
var ErrRetry = errors.New("operation failed, safe to retry")

// Store is the subset of the backing store the workflows use.
type Store interface {
	CreateRating(ctx context.Context, r venues.Rating) (*venues.Rating, error)
	GetRatingByActor(ctx context.Context, venueID, actorID string) (*venues.Rating, error)
	CreateVenue(ctx context.Context, v venues.Venue) (*venues.Venue, error)
	AttachVenuePhoto(ctx context.Context, venueID, photoURL string) error
	UpdateVenue(ctx context.Context, v venues.Venue) error
	UpsertProfile(ctx context.Context, p venues.Profile) error
}

// Enricher is the subset of the directory provider used by background
// enrichment.
type Enricher interface {
	GetDetails(ctx context.Context, externalRef string) (*directory.Candidate, error)
}

// Service runs the creation workflows.
type Service struct {
	store     Store
	enricher  Enricher
	bootstrap *identity.Bootstrap
	ratings   *resourcecache.Cache[[]venues.Rating]
	venueList *resourcecache.Cache[[]venues.Venue]
	profiles  *resourcecache.Cache[venues.Profile]
	logger    *slog.Logger

	// jobTimeout bounds each background job.
	jobTimeout time.Duration
	background sync.WaitGroup
}

// Options configures a Service.
type Options struct {
	Store     Store
	Enricher  Enricher
	Bootstrap *identity.Bootstrap
	// Ratings is the per-venue ratings cache family, invalidated after a
	// successful submission.
	Ratings *resourcecache.Cache[[]venues.Rating]
	// VenueList is the venue listing cache family, invalidated after a
	// venue is created.
	VenueList *resourcecache.Cache[[]venues.Venue]
	// Profiles is the per-actor profile cache family. Local-only profile
	// records are kept here (and in its durable layer) when the central
	// store refuses the write.
	Profiles *resourcecache.Cache[venues.Profile]
	Logger   *slog.Logger
	// JobTimeout bounds each background enrichment job. Defaults to 30s.
	JobTimeout time.Duration
}

// NewService wires a workflow service.
func NewService(opts Options) *Service {
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 30 * time.Second
	}
	return &Service{
		store:      opts.Store,
		enricher:   opts.Enricher,
		bootstrap:  opts.Bootstrap,
		ratings:    opts.Ratings,
		venueList:  opts.VenueList,
		profiles:   opts.Profiles,
		logger:     logging.NewComponentLogger(opts.Logger, "workflow"),
		jobTimeout: opts.JobTimeout,
	}
}

// Wait blocks until all scheduled background jobs settle. Shutdown and test
// hook; workflows themselves never wait on background work.
func (s *Service) Wait() {
	s.background.Wait()
}

func (s *Service) invalidateRatings(venueID string) {
	if s.ratings != nil {
		s.ratings.Invalidate(venueID)
	}
}

func (s *Service) invalidateVenues() {
	if s.venueList != nil {
		s.venueList.Clear()
	}
}

func (s *Service) invalidateProfile(actorID string) {
	if s.profiles != nil {
		s.profiles.Invalidate(actorID)
	}
}

// scheduleJob runs fn in the background with its own bounded context.
// Failures log and vanish; nothing downstream observes them.
func (s *Service) scheduleJob(logger *slog.Logger, name string, fn func(ctx context.Context) error) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("background job failed",
				logging.String(logging.FieldEventType, "background_job_failed"),
				logging.String("job", name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "record is intact, enrichment skipped"))
		}
	}()
}

// retrySafe wraps an unexpected error so the caller sees a generic,
// retry-safe message instead of internals. Validation errors pass through
// untouched; they are the caller's to fix.
func retrySafe(err error) error {
	if err == nil || errors.Is(err, venues.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRetry, err)
}

func (s *Service) requestLogger(operation string) *slog.Logger {
	return s.logger.With(
		logging.String("operation", operation),
		logging.String(logging.FieldCorrelationID, uuid.NewString()))
}

var _ Store = (*backing.Client)(nil)
