// Package layout composes the out-of-tree build and install directory
// paths for a source checkout. Composition is a pure function of its
// inputs so the same flags always land in the same directories.
package layout

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Params are the inputs to path composition.
type Params struct {
	Project     string // basename of the source checkout
	BuildRoot   string // high-capacity scratch root for build trees
	InstallRoot string // root for install prefixes
	BuildType   string // Release, Debug, Aggressive
	Ninja       bool   // Ninja generator instead of Unix Makefiles
	OSTag       string // OS release tag, empty to omit
	Custom      string // user-supplied extra segment, empty to omit
}

// Dirs is the composed result.
type Dirs struct {
	Build   string
	Install string
}

// Compose maps Params to the build and install directories:
//
//	<buildRoot>/<project>/build-<type>[-Ninja][-<osTag>][-<custom>]
//	<installRoot>/<project>/install-<type>[-Ninja][-<osTag>][-<custom>]
func Compose(p Params) (Dirs, error) {
	if p.Project == "" {
		return Dirs{}, eris.New("layout: empty project name")
	}
	if p.BuildRoot == "" || p.InstallRoot == "" {
		return Dirs{}, eris.New("layout: build and install roots must be set")
	}
	if p.BuildType == "" {
		p.BuildType = "Release"
	}

	suffix := p.BuildType
	if p.Ninja {
		suffix += "-Ninja"
	}
	if p.OSTag != "" {
		suffix += "-" + p.OSTag
	}
	if p.Custom != "" {
		suffix += "-" + p.Custom
	}

	return Dirs{
		Build:   filepath.Join(p.BuildRoot, p.Project, "build-"+suffix),
		Install: filepath.Join(p.InstallRoot, p.Project, "install-"+suffix),
	}, nil
}

// LeafName returns the basename of the build directory that Compose
// would produce, without touching the roots.
func LeafName(p Params) string {
	d, err := Compose(Params{
		Project:     "x",
		BuildRoot:   "r",
		InstallRoot: "r",
		BuildType:   p.BuildType,
		Ninja:       p.Ninja,
		OSTag:       p.OSTag,
		Custom:      p.Custom,
	})
	if err != nil {
		return ""
	}
	return filepath.Base(d.Build)
}

// ValidBuildType reports whether name is one of the recognized
// CMAKE_BUILD_TYPE values this tool composes paths for.
func ValidBuildType(name string) bool {
	switch name {
	case "Release", "Debug", "Aggressive":
		return true
	}
	return false
}

// Sanitize strips path separators and whitespace from a user-supplied
// directory segment so it cannot escape the composed location.
func Sanitize(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = strings.ReplaceAll(segment, string(filepath.Separator), "-")
	segment = strings.ReplaceAll(segment, "..", "")
	return segment
}
