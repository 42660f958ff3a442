package venues

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Venue is a record already known to the local system of record.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Place       string    `json:"place"`
	Country     string    `json:"country,omitempty"`
	Address     string    `json:"address,omitempty"`
	ExternalRef string    `json:"external_ref,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rating is one actor's multi-aspect score for one venue. Aspects map aspect
// name (sound, sightlines, drinks, staff, ...) to a 1-5 score.
type Rating struct {
	ID        string         `json:"id"`
	VenueID   string         `json:"venue_id"`
	ActorID   string         `json:"actor_id"`
	Aspects   map[string]int `json:"aspects"`
	Comment   string         `json:"comment,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Profile is the actor-facing record kept alongside the anonymous identity.
type Profile struct {
	ActorID     string    `json:"actor_id"`
	DisplayName string    `json:"display_name,omitempty"`
	HomePlace   string    `json:"home_place,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	// MinAspectScore and MaxAspectScore bound a single aspect score.
	MinAspectScore = 1
	MaxAspectScore = 5
)

// ErrValidation marks caller-input errors; these are the only errors that
// surface to the user as a hard stop.
var ErrValidation = errors.New("validation error")

// ValidateRating checks a rating before submission.
func ValidateRating(r Rating) error {
	if strings.TrimSpace(r.VenueID) == "" {
		return fmt.Errorf("%w: venue id is required", ErrValidation)
	}
	if len(r.Aspects) == 0 {
		return fmt.Errorf("%w: at least one aspect score is required", ErrValidation)
	}
	names := make([]string, 0, len(r.Aspects))
	for name := range r.Aspects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		score := r.Aspects[name]
		if score < MinAspectScore || score > MaxAspectScore {
			return fmt.Errorf("%w: aspect %q score %d out of range %d..%d",
				ErrValidation, name, score, MinAspectScore, MaxAspectScore)
		}
	}
	return nil
}

// ValidateVenue checks a venue record before creation.
func ValidateVenue(v Venue) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: venue name is required", ErrValidation)
	}
	if strings.TrimSpace(v.Place) == "" {
		return fmt.Errorf("%w: venue place is required", ErrValidation)
	}
	return nil
}

// ValidateProfile checks that a profile update carries something to store.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.DisplayName) == "" && strings.TrimSpace(p.HomePlace) == "" {
		return fmt.Errorf("%w: display name or home place is required", ErrValidation)
	}
	return nil
}

// AverageScore returns the mean aspect score, or 0 for an empty rating.
func (r Rating) AverageScore() float64 {
	if len(r.Aspects) == 0 {
		return 0
	}
	total := 0
	for _, score := range r.Aspects {
		total += score
	}
	return float64(total) / float64(len(r.Aspects))
}
