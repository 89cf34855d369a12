package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"worldbookmap/lib/configutil"
	"worldbookmap/lib/restyutil"
	"worldbookmap/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	restyDump  *string
)

// loaded before any subcommand runs
var config Config

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "worldbook.json5", "The config file, <name>.local.json5 is merged on top of it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
	restyDump = rootCmd.PersistentFlags().String("resty-dump", "", "Write every HTTP exchange to this directory.")
}

var rootCmd = &cobra.Command{
	Use:           "worldbook-cli",
	Short:         "worldbook-cli prepares the boundary and book cover assets of the world book map.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)

		cfg, err := configutil.ReadConfig(*configPath, DefaultConfig())
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		config = cfg
		return nil
	},
}

// dumpOutput is nil unless --resty-dump was given.
func dumpOutput(name string) (restyutil.InstrumentOutput, error) {
	if *restyDump == "" {
		return nil, nil
	}
	out, err := restyutil.NewFilesystemOutput(filepath.Join(*restyDump, name))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
