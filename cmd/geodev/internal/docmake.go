package internal

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gmao-si/geodev/internal/build"
	"github.com/gmao-si/geodev/internal/config"
	"github.com/gmao-si/geodev/internal/osrelease"
)

var (
	docmakeDebug      bool
	docmakeAggressive bool
	docmakeNinja      bool
	docmakeJobs       int
	docmakeBuildDir   string
	docmakeInstallDir string
	docmakeCustom     string
	docmakeNoOSTag    bool
	docmakeTest       bool
	docmakeDryRun     bool
)

var docmakeCmd = &cobra.Command{
	Use:   "docmake [flags] [-- extra cmake args]",
	Short: "Configure, build and install the checkout in the current directory",
	Long: `Docmake builds the CMake checkout in the current directory out of tree.
The build and install directories are composed under GEOS_BUILD_ROOT and
GEOS_INSTALL_ROOT from the checkout name, build type, generator and OS
release, and "build"/"install" symlinks in the checkout point at them.
Anything after -- is passed to the cmake configure step verbatim.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDocmake,
}

func init() {
	f := docmakeCmd.Flags()
	f.BoolVar(&docmakeDebug, "debug", false, "Build with CMAKE_BUILD_TYPE=Debug")
	f.BoolVar(&docmakeAggressive, "aggressive", false, "Build with CMAKE_BUILD_TYPE=Aggressive")
	f.BoolVar(&docmakeNinja, "ninja", false, "Use the Ninja generator instead of Unix Makefiles")
	f.IntVarP(&docmakeJobs, "jobs", "j", 0, "Parallel build jobs (default: all CPUs)")
	f.StringVar(&docmakeBuildDir, "build-dir", "", "Override the composed build directory")
	f.StringVar(&docmakeInstallDir, "install-dir", "", "Override the composed install directory")
	f.StringVar(&docmakeCustom, "custom", "", "Extra segment appended to the composed directory names")
	f.BoolVar(&docmakeNoOSTag, "no-os-tag", false, "Do not embed the OS release tag in directory names")
	f.BoolVar(&docmakeTest, "test", false, "Run ctest after installing")
	f.BoolVarP(&docmakeDryRun, "dry-run", "n", false, "Print the commands without running them")
	rootCmd.AddCommand(docmakeCmd)
}

func runDocmake(cmd *cobra.Command, args []string) error {
	opts, err := docmakeOptions(args)
	if err != nil {
		return err
	}
	return build.Run(cmd.Context(), *opts)
}

// docmakeOptions maps the parsed flags onto build options.
func docmakeOptions(passThrough []string) (*build.Options, error) {
	buildType, err := selectBuildType(docmakeDebug, docmakeAggressive)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, eris.Wrap(err, "docmake: getwd")
	}

	osTag := ""
	if !docmakeNoOSTag {
		osTag = osrelease.HostTag()
	}

	return &build.Options{
		Config:             cfg,
		SourceDir:          cwd,
		BuildType:          buildType,
		Ninja:              docmakeNinja,
		Jobs:               docmakeJobs,
		OSTag:              osTag,
		Custom:             docmakeCustom,
		BuildDirOverride:   docmakeBuildDir,
		InstallDirOverride: docmakeInstallDir,
		RunTests:           docmakeTest,
		DryRun:             docmakeDryRun,
		ConfigureArgs:      passThrough,
		Log:                logger,
	}, nil
}

func selectBuildType(debug, aggressive bool) (string, error) {
	if debug && aggressive {
		return "", eris.New("docmake: --debug and --aggressive are mutually exclusive")
	}
	switch {
	case debug:
		return "Debug", nil
	case aggressive:
		return "Aggressive", nil
	}
	return "Release", nil
}
