package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/backing"
	"marquee/internal/venues"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and update the actor profile",
	}

	profileCmd.AddCommand(newProfileShowCommand(ctx))
	profileCmd.AddCommand(newProfileSetCommand(ctx))

	return profileCmd
}

func newProfileShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show [ACTOR_ID]",
		Short: "Show a profile, defaulting to your own",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			actorID := ""
			if len(args) == 1 {
				actorID = strings.TrimSpace(args[0])
			}
			if actorID == "" {
				identity, ok := app.bootstrap.Establish(cmd.Context())
				if !ok {
					return errors.New("no anonymous identity available; pass an actor id explicitly")
				}
				actorID = identity.ID
			}

			profile, err := app.profiles.GetOrFetch(cmd.Context(), actorID, func(fetchCtx context.Context) (venues.Profile, error) {
				p, err := app.backing.GetProfile(fetchCtx, actorID)
				if err != nil {
					return venues.Profile{}, err
				}
				return *p, nil
			})
			if err != nil {
				if errors.Is(err, backing.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No profile recorded for %s\n", actorID)
					return nil
				}
				return fmt.Errorf("fetch profile: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, profile)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Actor:  %s\n", profile.ActorID)
			if profile.DisplayName != "" {
				fmt.Fprintf(out, "Name:   %s\n", profile.DisplayName)
			}
			if profile.HomePlace != "" {
				fmt.Fprintf(out, "Place:  %s\n", profile.HomePlace)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the profile as JSON")
	return cmd
}

func newProfileSetCommand(ctx *commandContext) *cobra.Command {
	var displayName string
	var homePlace string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			profile := venues.Profile{
				DisplayName: strings.TrimSpace(displayName),
				HomePlace:   strings.TrimSpace(homePlace),
			}

			result, err := app.workflows.SaveProfile(cmd.Context(), profile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Unpersisted {
				fmt.Fprintln(out, "Profile kept locally only; it will not be visible to others")
				return nil
			}
			fmt.Fprintf(out, "Profile updated for %s\n", result.Profile.ActorID)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	cmd.Flags().StringVar(&homePlace, "place", "", "Home city or neighborhood")
	return cmd
}
