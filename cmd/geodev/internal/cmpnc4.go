package internal

import (
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

var (
	cmpnc4Tolerance float64
	cmpnc4DryRun    bool
)

var cmpnc4Cmd = &cobra.Command{
	Use:   "cmpnc4 <a.nc4> <b.nc4>",
	Short: "Compare two netCDF files with nccmp",
	Long: `Cmpnc4 compares data, metadata and global attributes of two netCDF
files via nccmp. A nonzero exit code means the files differ.`,
	Args: cobra.ExactArgs(2),
	RunE: runCmpnc4,
}

func init() {
	f := cmpnc4Cmd.Flags()
	f.Float64VarP(&cmpnc4Tolerance, "tolerance", "T", 0, "Absolute tolerance for data comparison")
	f.BoolVarP(&cmpnc4DryRun, "dry-run", "n", false, "Print the command without running it")
	rootCmd.AddCommand(cmpnc4Cmd)
}

func runCmpnc4(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return eris.Wrapf(err, "cmpnc4: %s", path)
		}
	}
	var runner run.Runner = &run.Exec{}
	if cmpnc4DryRun {
		runner = &run.DryRun{W: os.Stdout}
	}
	return runner.Run(cmd.Context(), "nccmp", nccmpArgs(cmpnc4Tolerance, args[0], args[1])...)
}

func nccmpArgs(tolerance float64, a, b string) []string {
	args := []string{"-dmgfs"}
	if tolerance > 0 {
		args = append(args, "-T", strconv.FormatFloat(tolerance, 'g', -1, 64))
	}
	return append(args, a, b)
}
