// Package buildsys defines the shared surface of build-system drivers.
// CMake is the only generator GEOS uses today; the interface keeps the
// lifecycle narrow so a second driver stays cheap to add.
package buildsys

import "context"

// BuildSystem captures the configure/build/test lifecycle of an
// out-of-tree build.
type BuildSystem interface {
	// Basic paths.
	Source(dir string)
	BuildDir(dir string)
	InstallDir(dir string)

	// Environment helper.
	Env(key, val string)

	// Lifecycle. Extra args are appended to the underlying tool's
	// command line verbatim.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Test(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
