package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON renders v for the --json flag the read commands carry. The
// output shape follows the domain structs' json tags (venue_id, actor_id,
// aspects, external_ref), so scripts parsing marquee output get the same
// field names the backing store API uses.
func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
