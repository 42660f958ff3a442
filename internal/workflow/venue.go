package workflow

import (
	"context"
	"strings"

	"marquee/internal/directory"
	"marquee/internal/logging"
	"marquee/internal/match"
	"marquee/internal/venues"
)

// VenueResult reports the outcome of adding a candidate.
type VenueResult struct {
	VenueID string
	// AlreadyKnown means the matcher resolved the candidate to an
	// existing local record and nothing was created.
	AlreadyKnown bool
}

// AddVenue creates a local record from an externally discovered candidate.
// Creation only proceeds when the matcher finds no existing record. Photo
// mirroring and provider enrichment run as fire-and-forget background jobs
// whose failure never affects the already-created record.
func (s *Service) AddVenue(ctx context.Context, candidate directory.Candidate, lookup match.Lookup) (*VenueResult, error) {
	logger := s.requestLogger("add_venue").With(
		logging.String("name", candidate.Name),
		logging.String("place", candidate.Place))

	if id, ok := lookup.Resolve(candidate); ok {
		logger.Info("candidate matches existing venue", logging.String(logging.FieldVenueID, id))
		return &VenueResult{VenueID: id, AlreadyKnown: true}, nil
	}

	venue := venues.Venue{
		Name:        strings.TrimSpace(candidate.Name),
		Place:       strings.TrimSpace(candidate.Place),
		Country:     strings.TrimSpace(candidate.Country),
		Address:     strings.TrimSpace(candidate.Address),
		ExternalRef: strings.TrimSpace(candidate.ExternalRef),
	}
	if err := venues.ValidateVenue(venue); err != nil {
		return nil, err
	}

	created, err := s.store.CreateVenue(ctx, venue)
	if err != nil {
		logger.Error("venue creation failed", logging.Error(err))
		return nil, retrySafe(err)
	}
	s.invalidateVenues()
	logger = logger.With(logging.String(logging.FieldVenueID, created.ID))
	logger.Info("venue created")

	switch {
	case candidate.ImageURL != "":
		s.scheduleJob(logger, "photo_mirror", func(jobCtx context.Context) error {
			return s.store.AttachVenuePhoto(jobCtx, created.ID, candidate.ImageURL)
		})
	case candidate.ExternalRef != "":
		s.scheduleJob(logger, "enrichment", func(jobCtx context.Context) error {
			return s.enrichVenue(jobCtx, *created)
		})
	}

	return &VenueResult{VenueID: created.ID}, nil
}

// enrichVenue pulls the full provider record and fills fields the search
// result lacked.
func (s *Service) enrichVenue(ctx context.Context, venue venues.Venue) error {
	if s.enricher == nil {
		return nil
	}
	details, err := s.enricher.GetDetails(ctx, venue.ExternalRef)
	if err != nil {
		return err
	}

	changed := false
	if venue.Address == "" && details.Address != "" {
		venue.Address = details.Address
		changed = true
	}
	if venue.Country == "" && details.Country != "" {
		venue.Country = details.Country
		changed = true
	}
	if venue.PhotoURL == "" && details.ImageURL != "" {
		venue.PhotoURL = details.ImageURL
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.store.UpdateVenue(ctx, venue); err != nil {
		return err
	}
	s.invalidateVenues()
	return nil
}
