package internal

import (
	"os"
	"os/user"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

var (
	sqAll    bool
	sqUser   string
	sqFormat string
	sqDryRun bool
)

var sqCmd = &cobra.Command{
	Use:   "sq",
	Short: "Show the queue, filtered to your own jobs",
	Args:  cobra.NoArgs,
	RunE:  runSq,
}

func init() {
	f := sqCmd.Flags()
	f.BoolVarP(&sqAll, "all", "a", false, "Show everyone's jobs")
	f.StringVarP(&sqUser, "user", "u", "", "Show jobs of this user (default: you)")
	f.StringVar(&sqFormat, "format", "%.10i %.9P %.16j %.8u %.2t %.10M %.6D %R", "squeue output format")
	f.BoolVarP(&sqDryRun, "dry-run", "n", false, "Print the command without running it")
	rootCmd.AddCommand(sqCmd)
}

func runSq(cmd *cobra.Command, args []string) error {
	squeueArgs, err := squeueArgs(sqAll, sqUser, sqFormat)
	if err != nil {
		return err
	}
	var runner run.Runner = &run.Exec{}
	if sqDryRun {
		runner = &run.DryRun{W: os.Stdout}
	}
	return runner.Run(cmd.Context(), "squeue", squeueArgs...)
}

func squeueArgs(all bool, username, format string) ([]string, error) {
	args := []string{"-o", format}
	if all {
		return args, nil
	}
	if username == "" {
		u, err := user.Current()
		if err != nil {
			return nil, eris.Wrap(err, "sq: resolve current user")
		}
		username = u.Username
	}
	return append(args, "-u", username), nil
}
