package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/venues"
)

func newRateCommand(ctx *commandContext) *cobra.Command {
	var aspects []string
	var comment string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rate VENUE_ID",
		Short: "Submit a rating for a venue",
		Long: `Submit a rating for a venue. Each --aspect takes name=score with
scores from 1 to 5. Submitting twice for the same venue returns the
original rating instead of failing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			scores, err := parseAspects(aspects)
			if err != nil {
				return err
			}
			rating := venues.Rating{
				VenueID: strings.TrimSpace(args[0]),
				Aspects: scores,
				Comment: strings.TrimSpace(comment),
			}

			result, err := app.workflows.SubmitRating(cmd.Context(), rating)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			switch {
			case result.Duplicate:
				fmt.Fprintf(out, "You already rated this venue (%.1f average); keeping the original\n",
					result.Rating.AverageScore())
			case result.Unpersisted:
				fmt.Fprintln(out, "Rating recorded locally only; it will not be visible to others")
			default:
				fmt.Fprintf(out, "Rating %s submitted (%.1f average)\n",
					result.Rating.ID, result.Rating.AverageScore())
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&aspects, "aspect", nil, "Aspect score as name=score, repeatable")
	cmd.Flags().StringVar(&comment, "comment", "", "Free-form comment")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("aspect")
	return cmd
}

func newRatingsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var refresh bool

	cmd := &cobra.Command{
		Use:   "ratings VENUE_ID",
		Short: "List ratings for a venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			venueID := strings.TrimSpace(args[0])
			if refresh {
				app.ratings.Invalidate(venueID)
			}
			list, err := app.ratings.GetOrFetch(cmd.Context(), venueID, func(fetchCtx context.Context) ([]venues.Rating, error) {
				return app.backing.ListRatings(fetchCtx, venueID)
			})
			if err != nil {
				return fmt.Errorf("list ratings: %w", err)
			}
			if jsonOutput {
				return writeJSON(cmd, list)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No ratings yet")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, r := range list {
				rows = append(rows, []string{
					r.ActorID,
					fmt.Sprintf("%.1f", r.AverageScore()),
					r.Comment,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Actor", "Average", "Comment"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached listing")
	return cmd
}

func parseAspects(raw []string) (map[string]int, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --aspect name=score is required")
	}
	scores := make(map[string]int, len(raw))
	for _, entry := range raw {
		name, value, found := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid aspect %q: expected name=score", entry)
		}
		score, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid aspect %q: score must be a number", entry)
		}
		scores[name] = score
	}
	return scores, nil
}
