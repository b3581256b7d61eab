// Package build orchestrates one docmake run: validate the checkout
// and the configured roots, compose the out-of-tree directories, wire
// up the build/install symlinks, then drive cmake.
package build

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/gmao-si/geodev/internal/config"
	"github.com/gmao-si/geodev/internal/layout"
	"github.com/gmao-si/geodev/internal/links"
	"github.com/gmao-si/geodev/internal/run"
	"github.com/gmao-si/geodev/pkgs/buildsys/cmake"
)

// projectMarker is the file that makes a directory a recognizable
// CMake checkout.
const projectMarker = "CMakeLists.txt"

// Options collects everything the docmake command resolved from flags
// and environment.
type Options struct {
	Config    *config.Config
	SourceDir string // absolute path to the checkout

	BuildType string // Release, Debug, Aggressive
	Ninja     bool
	Jobs      int    // 0 means runtime.NumCPU()
	OSTag     string // "" omits the tag
	Custom    string // optional extra path segment

	// Wholesale overrides; when set they replace the composed paths.
	BuildDirOverride   string
	InstallDirOverride string

	RunTests      bool
	DryRun        bool
	ConfigureArgs []string // pass-through args for the configure step

	Log zerolog.Logger
}

// Plan is the resolved, side-effect-free description of a run.
type Plan struct {
	Project    string
	SourceDir  string
	BuildDir   string
	InstallDir string
	BuildType  string
	Generator  string
	Jobs       int
}

// NewPlan validates opts and composes the directories. It performs no
// writes, so it is safe to call under dry-run.
func NewPlan(opts Options) (*Plan, error) {
	if opts.Config == nil {
		return nil, eris.New("build: config not set")
	}
	if opts.SourceDir == "" {
		return nil, eris.New("build: source directory not set")
	}
	marker := filepath.Join(opts.SourceDir, projectMarker)
	if _, err := os.Stat(marker); err != nil {
		return nil, eris.Wrapf(err, "build: %s is not a CMake checkout (no %s)", opts.SourceDir, projectMarker)
	}
	if opts.BuildType != "" && !layout.ValidBuildType(opts.BuildType) {
		return nil, eris.Errorf("build: unknown build type %q", opts.BuildType)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{
		Project:   filepath.Base(opts.SourceDir),
		SourceDir: opts.SourceDir,
		BuildType: opts.BuildType,
		Generator: "Unix Makefiles",
		Jobs:      opts.Jobs,
	}
	if p.BuildType == "" {
		p.BuildType = "Release"
	}
	if opts.Ninja {
		p.Generator = "Ninja"
	}
	if p.Jobs <= 0 {
		p.Jobs = runtime.NumCPU()
	}

	dirs, err := layout.Compose(layout.Params{
		Project:     p.Project,
		BuildRoot:   opts.Config.BuildRoot,
		InstallRoot: opts.Config.InstallRoot,
		BuildType:   opts.BuildType,
		Ninja:       opts.Ninja,
		OSTag:       opts.OSTag,
		Custom:      layout.Sanitize(opts.Custom),
	})
	if err != nil {
		return nil, err
	}
	p.BuildDir = dirs.Build
	p.InstallDir = dirs.Install

	if opts.BuildDirOverride != "" {
		p.BuildDir = opts.BuildDirOverride
	}
	if opts.InstallDirOverride != "" {
		p.InstallDir = opts.InstallDirOverride
	}
	return p, nil
}

// Run plans and executes a docmake invocation. Under dry-run it prints
// the commands and symlinks a real run would produce and touches
// nothing.
func Run(ctx context.Context, opts Options) error {
	plan, err := NewPlan(opts)
	if err != nil {
		return err
	}
	log := opts.Log

	log.Debug().
		Str("project", plan.Project).
		Str("build", plan.BuildDir).
		Str("install", plan.InstallDir).
		Str("generator", plan.Generator).
		Int("jobs", plan.Jobs).
		Msg("resolved build plan")

	var runner run.Runner
	if opts.DryRun {
		runner = &run.DryRun{W: os.Stdout}
		printPlannedLinks(plan)
	} else {
		if err := prepareDirs(plan); err != nil {
			return err
		}
		runner = &run.Exec{}
	}

	cm := cmake.New(runner, plan.SourceDir, plan.BuildDir, plan.InstallDir)
	cm.BuildType(plan.BuildType)
	cm.Generator(plan.Generator)
	cm.Jobs(plan.Jobs)

	log.Info().Str("build", plan.BuildDir).Msg("configuring")
	if err := cm.Configure(ctx, opts.ConfigureArgs...); err != nil {
		return eris.Wrap(err, "build: configure step failed")
	}

	log.Info().Int("jobs", plan.Jobs).Msg("building and installing")
	if err := cm.Build(ctx); err != nil {
		return eris.Wrap(err, "build: build step failed")
	}

	if opts.RunTests {
		log.Info().Msg("running tests")
		if err := cm.Test(ctx); err != nil {
			return eris.Wrap(err, "build: test step failed")
		}
	}
	return nil
}

// prepareDirs creates the composed directories and the in-checkout
// symlinks pointing at them.
func prepareDirs(plan *Plan) error {
	for _, dir := range []string{plan.BuildDir, plan.InstallDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "build: mkdir %s", dir)
		}
	}
	if err := links.Ensure(filepath.Join(plan.SourceDir, "build"), plan.BuildDir); err != nil {
		return err
	}
	return links.Ensure(filepath.Join(plan.SourceDir, "install"), plan.InstallDir)
}

// printPlannedLinks mirrors prepareDirs for dry runs: one "ln -s" line
// per symlink that does not exist yet.
func printPlannedLinks(plan *Plan) {
	dry := &run.DryRun{W: os.Stdout}
	pairs := [][2]string{
		{filepath.Join(plan.SourceDir, "build"), plan.BuildDir},
		{filepath.Join(plan.SourceDir, "install"), plan.InstallDir},
	}
	for _, pair := range pairs {
		if _, exists := links.Check(pair[0]); !exists {
			dry.Run(context.Background(), "ln", "-s", pair[1], pair[0])
		}
	}
}
