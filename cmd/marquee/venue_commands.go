package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/directory"
	"marquee/internal/match"
	"marquee/internal/venues"
)

func newVenueCommand(ctx *commandContext) *cobra.Command {
	venueCmd := &cobra.Command{
		Use:   "venue",
		Short: "Inspect and add venues",
	}

	venueCmd.AddCommand(newVenueListCommand(ctx))
	venueCmd.AddCommand(newVenueShowCommand(ctx))
	venueCmd.AddCommand(newVenueAddCommand(ctx))

	return venueCmd
}

func newVenueListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			var list []venues.Venue
			if refresh {
				list, err = app.allVenues.Refetch(cmd.Context())
			} else {
				list, err = app.allVenues.Get(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("list venues: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, list)
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No venues recorded yet")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Place", "Country"},
				venueRows(list),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached listing")
	return cmd
}

func newVenueShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show VENUE_ID",
		Short: "Show a single venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			venue, err := app.backing.GetVenue(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("fetch venue: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, venue)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", venue.Name)
			fmt.Fprintf(out, "Place:   %s\n", venue.Place)
			if venue.Country != "" {
				fmt.Fprintf(out, "Country: %s\n", venue.Country)
			}
			if venue.Address != "" {
				fmt.Fprintf(out, "Address: %s\n", venue.Address)
			}
			if venue.PhotoURL != "" {
				fmt.Fprintf(out, "Photo:   %s\n", venue.PhotoURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the venue as JSON")
	return cmd
}

func newVenueAddCommand(ctx *commandContext) *cobra.Command {
	var place string
	var country string
	var address string
	var externalRef string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a venue, creating it only when no existing record matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			candidate := directory.Candidate{
				Name:        strings.TrimSpace(args[0]),
				Place:       strings.TrimSpace(place),
				Country:     strings.TrimSpace(country),
				Address:     strings.TrimSpace(address),
				ExternalRef: strings.TrimSpace(externalRef),
			}

			// Pulling full provider details up front lets the matcher see
			// the same fields a search result would carry.
			if candidate.ExternalRef != "" && app.directory != nil {
				details, err := app.directory.GetDetails(cmd.Context(), candidate.ExternalRef)
				if err == nil {
					fillCandidate(&candidate, details)
				}
			}
			if candidate.Place == "" {
				return errors.New("--place is required (or resolvable via --ref)")
			}

			local, err := app.allVenues.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("list venues for matching: %w", err)
			}
			lookup := match.BuildLookup(local)

			result, err := app.workflows.AddVenue(cmd.Context(), candidate, lookup)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.AlreadyKnown {
				fmt.Fprintf(out, "Matched existing venue %s; nothing created\n", result.VenueID)
				return nil
			}
			fmt.Fprintf(out, "Created venue %s\n", result.VenueID)
			return nil
		},
	}

	cmd.Flags().StringVar(&place, "place", "", "City or neighborhood of the venue")
	cmd.Flags().StringVar(&country, "country", "", "Country code")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&externalRef, "ref", "", "Directory provider reference to import details from")
	return cmd
}

func venueRows(list []venues.Venue) [][]string {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{v.ID, v.Name, v.Place, v.Country})
	}
	return rows
}

func fillCandidate(candidate *directory.Candidate, details *directory.Candidate) {
	if details == nil {
		return
	}
	if candidate.Place == "" {
		candidate.Place = details.Place
	}
	if candidate.Country == "" {
		candidate.Country = details.Country
	}
	if candidate.Address == "" {
		candidate.Address = details.Address
	}
	if candidate.ImageURL == "" {
		candidate.ImageURL = details.ImageURL
	}
}
