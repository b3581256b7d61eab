package internal

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

// Extensions GEOS source lives in; overridable with --ext.
var defaultRgiGlobs = []string{
	"*.F90", "*.f90", "*.F", "*.f",
	"*.c", "*.h", "*.cc", "*.cpp", "*.H",
	"*.py", "*.rc", "*.nml",
	"CMakeLists.txt", "*.cmake",
}

var (
	rgiGlobs  []string
	rgiDryRun bool
)

var rgiCmd = &cobra.Command{
	Use:   "rgi <pattern> [dir]",
	Short: "Recursive grep over GEOS source files",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRgi,
}

func init() {
	f := rgiCmd.Flags()
	f.StringSliceVar(&rgiGlobs, "ext", defaultRgiGlobs, "File globs to search")
	f.BoolVarP(&rgiDryRun, "dry-run", "n", false, "Print the command without running it")
	rootCmd.AddCommand(rgiCmd)
}

func runRgi(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 2 {
		dir = args[1]
	}
	var runner run.Runner = &run.Exec{}
	if rgiDryRun {
		runner = &run.DryRun{W: os.Stdout}
	}
	return runner.Run(cmd.Context(), "grep", grepArgs(args[0], dir, rgiGlobs)...)
}

func grepArgs(pattern, dir string, globs []string) []string {
	args := []string{"-rIn", "--color=auto"}
	for _, g := range globs {
		args = append(args, "--include="+g)
	}
	return append(args, pattern, dir)
}
