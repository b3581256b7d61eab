package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSelectBuildType(t *testing.T) {
	tests := []struct {
		debug, aggressive bool
		want              string
		wantErr           bool
	}{
		{false, false, "Release", false},
		{true, false, "Debug", false},
		{false, true, "Aggressive", false},
		{true, true, "", true},
	}
	for _, tt := range tests {
		got, err := selectBuildType(tt.debug, tt.aggressive)
		if tt.wantErr {
			if err == nil {
				t.Errorf("selectBuildType(%v, %v): want error", tt.debug, tt.aggressive)
			}
			continue
		}
		if err != nil {
			t.Errorf("selectBuildType(%v, %v): %v", tt.debug, tt.aggressive, err)
			continue
		}
		if got != tt.want {
			t.Errorf("selectBuildType(%v, %v) = %q, want %q", tt.debug, tt.aggressive, got, tt.want)
		}
	}
}

func TestDocmakeOptions(t *testing.T) {
	buildRoot := t.TempDir()
	installRoot := t.TempDir()
	t.Setenv("GEOS_BUILD_ROOT", buildRoot)
	t.Setenv("GEOS_INSTALL_ROOT", installRoot)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	checkout := filepath.Join(t.TempDir(), "GEOSgcm")
	if err := os.MkdirAll(checkout, 0o755); err != nil {
		t.Fatal(err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(checkout); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	docmakeNinja = true
	docmakeJobs = 4
	docmakeTest = true
	docmakeDryRun = true
	t.Cleanup(func() {
		docmakeNinja = false
		docmakeJobs = 0
		docmakeTest = false
		docmakeDryRun = false
	})

	opts, err := docmakeOptions([]string{"-DUSE_F2PY:BOOL=OFF"})
	if err != nil {
		t.Fatalf("docmakeOptions: %v", err)
	}

	if opts.Config.BuildRoot != buildRoot {
		t.Errorf("BuildRoot = %q, want %q", opts.Config.BuildRoot, buildRoot)
	}
	if filepath.Base(opts.SourceDir) != "GEOSgcm" {
		t.Errorf("SourceDir = %q, want basename GEOSgcm", opts.SourceDir)
	}
	if !opts.Ninja || opts.Jobs != 4 || !opts.RunTests || !opts.DryRun {
		t.Errorf("flags not mapped: %+v", opts)
	}
	if len(opts.ConfigureArgs) != 1 || opts.ConfigureArgs[0] != "-DUSE_F2PY:BOOL=OFF" {
		t.Errorf("ConfigureArgs = %v", opts.ConfigureArgs)
	}
}
