package cmake

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gmao-si/geodev/internal/run"
)

func dryCMake(buf *bytes.Buffer, src, build, install string) *CMake {
	return New(&run.DryRun{W: buf}, src, build, install)
}

func TestConfigureCommandLine(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src/GEOSgcm", "/scratch/build", "/scratch/install")
	c.BuildType("Release")
	c.Generator("Ninja")

	if err := c.Configure(context.Background()); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	for _, want := range []string{
		"cmake -S /src/GEOSgcm -B /scratch/build",
		"-G Ninja",
		"-DCMAKE_BUILD_TYPE:STRING=Release",
		"-DCMAKE_INSTALL_PREFIX:STRING=/scratch/install",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("configure line missing %q:\n%s", want, got)
		}
	}
}

func TestConfigurePassThroughArgs(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "/i")

	if err := c.Configure(context.Background(), "-DUSE_F2PY:BOOL=OFF"); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := buf.String(); !strings.HasSuffix(strings.TrimSpace(got), "-DUSE_F2PY:BOOL=OFF") {
		t.Errorf("pass-through args not appended last: %q", got)
	}
}

func TestBuildCommandLine(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "/i")
	c.Jobs(8)

	if err := c.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "cmake --build /b --target install -j 8" {
		t.Errorf("build line = %q", got)
	}
}

func TestBuildNoJobs(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "/i")

	if err := c.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); strings.Contains(got, "-j") {
		t.Errorf("build line should omit -j when jobs unset: %q", got)
	}
}

func TestTestCommandLine(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "/i")
	c.Jobs(4)

	if err := c.Test(context.Background()); err != nil {
		t.Fatalf("Test: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "ctest --test-dir /b --output-on-failure -j 4" {
		t.Errorf("test line = %q", got)
	}
}

func TestDefinesSortedAndTyped(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "")
	c.Define("FOO", "BAR")
	c.DefineBool("ENABLE", true)
	c.DefineBool("DISABLE", false)

	args := c.definesArgs()
	want := []string{
		"-DDISABLE:BOOL=OFF",
		"-DENABLE:BOOL=ON",
		"-DFOO:STRING=BAR",
	}
	if len(args) != len(want) {
		t.Fatalf("definesArgs = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("definesArgs[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestDefinesArgsEmpty(t *testing.T) {
	c := dryCMake(&bytes.Buffer{}, "", "", "")
	if args := c.definesArgs(); args != nil {
		t.Errorf("definesArgs on empty = %v, want nil", args)
	}
}

func TestOutputDir(t *testing.T) {
	if got := dryCMake(&bytes.Buffer{}, "", "build", "").OutputDir(); got != "build" {
		t.Errorf("OutputDir = %q, want %q", got, "build")
	}
	if got := dryCMake(&bytes.Buffer{}, "", "build", "inst").OutputDir(); got != "inst" {
		t.Errorf("OutputDir = %q, want %q", got, "inst")
	}
}

func TestNoInstallPrefixWhenUnset(t *testing.T) {
	var buf bytes.Buffer
	c := dryCMake(&buf, "/src", "/b", "")

	if err := c.Configure(context.Background()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if strings.Contains(buf.String(), "CMAKE_INSTALL_PREFIX") {
		t.Errorf("install prefix should be omitted: %q", buf.String())
	}
}
