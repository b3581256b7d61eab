package internal

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

var verbose bool

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "geodev",
	Short: "geodev bundles the GEOS developer helpers",
	Long: `geodev bundles the helpers GEOS developers use on the shared clusters:
docmake wraps out-of-tree CMake builds, the rest are thin wrappers around
scheduler and analysis tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = logger.Level(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). When a wrapped tool
// fails, its exit code becomes the geodev exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Msg(err.Error())
		os.Exit(run.ExitCode(err))
	}
}
