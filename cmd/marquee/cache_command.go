package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cached venue, rating, and profile data",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			app.venueList.Clear()
			app.ratings.Clear()
			app.profiles.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Caches cleared")
			return nil
		},
	})

	return cacheCmd
}
