package commands

import (
	"fmt"
	"worldbookmap/lib/telemetry"
	"worldbookmap/services/merge"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merges every downloaded boundary file into a single FeatureCollection.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := merge.Run(cmd.Context(), merge.Options{
			InputDir: config.GadmDir,
			Output:   config.MergedOutput,
			Reporter: telemetry.StdoutReporter(),
		})
		if err != nil {
			return fmt.Errorf("merge geometries: %w", err)
		}
		return nil
	},
}
