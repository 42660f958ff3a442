package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/directory"
	"marquee/internal/match"
)

type searchRow struct {
	Candidate directory.Candidate `json:"candidate"`
	VenueID   string              `json:"venue_id,omitempty"`
	Known     bool                `json:"known"`
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search the directory provider and match results against local venues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			if app.directory == nil {
				return errors.New("directory search requires directory.api_key in the configuration")
			}
			cfg, _ := ctx.ensureConfig()

			query := strings.TrimSpace(strings.Join(args, " "))
			kind := match.ClassifyQuery(query)

			response, err := app.directory.Search(cmd.Context(), match.ProviderQuery(query, kind), directory.SearchOptions{
				Country:    cfg.Directory.Country,
				MaxResults: cfg.Directory.MaxResults,
			})
			if err != nil {
				return fmt.Errorf("search directory: %w", err)
			}
			candidates := match.FilterResults(query, kind, response.Results)

			local, err := app.allVenues.Get(cmd.Context())
			if err != nil {
				app.logger.Warn("local venue list unavailable, matching skipped")
				local = nil
			}
			lookup := match.BuildLookup(local)

			results := make([]searchRow, 0, len(candidates))
			for _, candidate := range candidates {
				row := searchRow{Candidate: candidate}
				if id, ok := lookup.Resolve(candidate); ok {
					row.VenueID = id
					row.Known = true
				}
				results = append(results, row)
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No results for %q\n", query)
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Place", "Address", "Known"},
				searchRows(results),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

func searchRows(results []searchRow) [][]string {
	rows := make([][]string, 0, len(results))
	for _, row := range results {
		known := "no"
		if row.Known {
			known = "yes (" + row.VenueID + ")"
		}
		rows = append(rows, []string{
			row.Candidate.Name,
			row.Candidate.Place,
			row.Candidate.Address,
			known,
		})
	}
	return rows
}
