package internal

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/run"
)

var (
	makebenchCount    int
	makebenchClean    bool
	makebenchJobs     int
	makebenchBuildDir string
	makebenchDryRun   bool
)

var makebenchCmd = &cobra.Command{
	Use:   "makebench",
	Short: "Time repeated builds of an already configured build directory",
	Long: `Makebench runs the build step of an already configured build directory
several times and reports per-run and summary timings. With --clean the
clean target runs before each iteration, so every run rebuilds from
scratch.`,
	Args: cobra.NoArgs,
	RunE: runMakebench,
}

func init() {
	f := makebenchCmd.Flags()
	f.IntVarP(&makebenchCount, "count", "c", 3, "Number of timed build runs")
	f.BoolVar(&makebenchClean, "clean", false, "Run the clean target before each run")
	f.IntVarP(&makebenchJobs, "jobs", "j", 0, "Parallel build jobs")
	f.StringVar(&makebenchBuildDir, "build-dir", "build", "Build directory (the docmake symlink by default)")
	f.BoolVarP(&makebenchDryRun, "dry-run", "n", false, "Print the commands without running them")
	rootCmd.AddCommand(makebenchCmd)
}

func runMakebench(cmd *cobra.Command, args []string) error {
	if makebenchCount < 1 {
		return eris.New("makebench: --count must be at least 1")
	}
	if _, err := os.Stat(makebenchBuildDir); err != nil {
		return eris.Wrapf(err, "makebench: build dir %s (run docmake first?)", makebenchBuildDir)
	}

	buildArgs := []string{"--build", makebenchBuildDir}
	if makebenchJobs > 0 {
		buildArgs = append(buildArgs, "-j", strconv.Itoa(makebenchJobs))
	}
	cleanArgs := []string{"--build", makebenchBuildDir, "--target", "clean"}

	ctx := cmd.Context()
	if makebenchDryRun {
		dry := &run.DryRun{W: os.Stdout}
		if makebenchClean {
			dry.Run(ctx, "cmake", cleanArgs...)
		}
		return dry.Run(ctx, "cmake", buildArgs...)
	}

	durations := make([]time.Duration, 0, makebenchCount)
	bar := progressbar.Default(int64(makebenchCount), "building")
	for i := 0; i < makebenchCount; i++ {
		d, err := timedBuild(ctx, cleanArgs, buildArgs)
		if err != nil {
			return err
		}
		durations = append(durations, d)
		logger.Info().Int("run", i+1).Dur("elapsed", d).Msg("build finished")
		bar.Add(1)
	}

	min, mean := summarize(durations)
	fmt.Printf("runs: %d  min: %s  mean: %s\n", len(durations), min.Round(time.Millisecond), mean.Round(time.Millisecond))
	return nil
}

func timedBuild(ctx context.Context, cleanArgs, buildArgs []string) (time.Duration, error) {
	exec := &run.Exec{}
	if makebenchClean {
		if err := exec.Run(ctx, "cmake", cleanArgs...); err != nil {
			return 0, eris.Wrap(err, "makebench: clean step failed")
		}
	}
	start := time.Now()
	if err := exec.Run(ctx, "cmake", buildArgs...); err != nil {
		return 0, eris.Wrap(err, "makebench: build step failed")
	}
	return time.Since(start), nil
}

func summarize(durations []time.Duration) (min, mean time.Duration) {
	if len(durations) == 0 {
		return 0, 0
	}
	var total time.Duration
	min = durations[0]
	for _, d := range durations {
		total += d
		if d < min {
			min = d
		}
	}
	return min, total / time.Duration(len(durations))
}
