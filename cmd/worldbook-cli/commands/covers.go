package commands

import (
	"fmt"
	"os"
	"worldbookmap/lib/failurelog"
	"worldbookmap/lib/googlebooks"
	"worldbookmap/lib/telemetry"
	"worldbookmap/services/covers"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(coversCmd)
}

var coversCmd = &cobra.Command{
	Use:   "covers",
	Short: "Downloads a cover thumbnail for every book with an isbn, logging the ones that could not be found.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dump, err := dumpOutput("googlebooks")
		if err != nil {
			return fmt.Errorf("create resty dump directory: %w", err)
		}

		log := failurelog.Open(config.MissingLog)
		err = log.Touch()
		if err != nil {
			return fmt.Errorf("create failure log: %w", err)
		}

		client := googlebooks.NewClient(googlebooks.ClientOptions{
			BaseUrl: config.GoogleBooks.BaseUrl,
			Key:     config.GoogleBooks.Key,
			Timeout: seconds(config.GoogleBooks.TimeoutSeconds),
			Dump:    dump,
		})
		fetcher := covers.NewFetcher(client, log, telemetry.StdoutReporter())

		summary, err := fetcher.Run(cmd.Context(), covers.Options{
			BooksDir:  config.BooksDir,
			CoversDir: config.CoversDir,
		})
		summary.Render(os.Stdout, "downloaded")
		if err != nil {
			return fmt.Errorf("fetch covers: %w", err)
		}
		return nil
	},
}
