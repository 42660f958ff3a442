package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCommand(ctx *commandContext) *cobra.Command {
	var establish bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Show the anonymous identity state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp()
			if err != nil {
				return err
			}

			if establish {
				app.bootstrap.Establish(cmd.Context())
			}
			id, ok := app.bootstrap.Snapshot()
			state := app.bootstrap.State()

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"state":       string(state),
					"actor_id":    id.ID,
					"established": ok,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "State: %s\n", state)
			if ok {
				fmt.Fprintf(out, "Actor: %s\n", id.ID)
			} else if !establish {
				fmt.Fprintln(out, "Run with --establish to resolve an identity now")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&establish, "establish", false, "Resolve the identity instead of only reporting state")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the state as JSON")
	return cmd
}
