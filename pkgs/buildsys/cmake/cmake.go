// Package cmake wraps the cmake configure/build/install workflow.
package cmake

import (
	"context"
	"sort"
	"strconv"

	"github.com/gmao-si/geodev/internal/run"
	"github.com/gmao-si/geodev/pkgs/buildsys"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds. All process invocations go through
// the configured Runner, so a dry run prints the exact command lines
// instead of executing them.
type CMake struct {
	sourceDir  string
	buildDir   string
	installDir string
	generator  string
	buildType  string
	jobs       int
	defines    map[string]defineValue
	env        map[string]string
	runner     run.Runner
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a ready-to-use CMake driving builds through r.
func New(r run.Runner, sourceDir, buildDir, installDir string) *CMake {
	return &CMake{
		sourceDir:  sourceDir,
		buildDir:   buildDir,
		installDir: installDir,
		defines:    make(map[string]defineValue),
		env:        make(map[string]string),
		runner:     r,
	}
}

// Source overrides the source directory.
func (c *CMake) Source(dir string) { c.sourceDir = dir }

// BuildDir overrides the build directory.
func (c *CMake) BuildDir(dir string) { c.buildDir = dir }

// InstallDir overrides the install prefix.
func (c *CMake) InstallDir(dir string) { c.installDir = dir }

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) { c.buildType = name }

// Jobs sets the parallelism passed to the build and test steps.
func (c *CMake) Jobs(n int) { c.jobs = n }

// Env sets an environment variable for spawned cmake processes.
func (c *CMake) Env(key, val string) { c.env[key] = val }

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// Configure runs "cmake -S <source> -B <build>" with all configured
// options. Extra args are appended at the end.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	if c.installDir != "" {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, "cmake", cmakeArgs)
}

// Build runs "cmake --build <build>" with optional extra arguments.
// The install target is requested here rather than as a separate
// "cmake --install" so a single invocation covers build+install.
func (c *CMake) Build(ctx context.Context, args ...string) error {
	cmakeArgs := []string{"--build", c.buildDir, "--target", "install"}
	if c.jobs > 0 {
		cmakeArgs = append(cmakeArgs, "-j", strconv.Itoa(c.jobs))
	}
	cmakeArgs = append(cmakeArgs, args...)
	return c.run(ctx, "cmake", cmakeArgs)
}

// Test runs "ctest --test-dir <build>" with optional extra arguments.
func (c *CMake) Test(ctx context.Context, args ...string) error {
	ctestArgs := []string{"--test-dir", c.buildDir, "--output-on-failure"}
	if c.jobs > 0 {
		ctestArgs = append(ctestArgs, "-j", strconv.Itoa(c.jobs))
	}
	ctestArgs = append(ctestArgs, args...)
	return c.run(ctx, "ctest", ctestArgs)
}

// OutputDir returns installDir if set, otherwise buildDir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) run(ctx context.Context, name string, args []string) error {
	if e, ok := c.runner.(*run.Exec); ok && len(c.env) > 0 {
		if e.Env == nil {
			e.Env = make(map[string]string, len(c.env))
		}
		for k, v := range c.env {
			e.Env[k] = v
		}
	}
	return c.runner.Run(ctx, name, args...)
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}
