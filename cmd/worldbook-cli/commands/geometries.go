package commands

import (
	"fmt"
	"os"
	"worldbookmap/lib/gadm"
	"worldbookmap/lib/telemetry"
	"worldbookmap/services/geometries"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(geometriesCmd)
}

var geometriesCmd = &cobra.Command{
	Use:   "geometries",
	Short: "Downloads the GADM boundaries of every country with books, skipping files already on disk.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dump, err := dumpOutput("gadm")
		if err != nil {
			return fmt.Errorf("create resty dump directory: %w", err)
		}

		client := gadm.NewClient(gadm.ClientOptions{
			BaseUrl: config.Gadm.BaseUrl,
			Timeout: seconds(config.Gadm.TimeoutSeconds),
			Dump:    dump,
		})
		fetcher := geometries.NewFetcher(client, telemetry.StdoutReporter())

		summary, err := fetcher.Run(cmd.Context(), geometries.Options{
			BooksDir:     config.BooksDir,
			CountryCodes: config.CountryCodes,
			GadmDir:      config.GadmDir,
			Overrides:    config.Overrides,
			Enrichments:  config.Enrichments,
		})
		summary.Render(os.Stdout, "saved")
		if err != nil {
			return fmt.Errorf("fetch geometries: %w", err)
		}
		return nil
	},
}
