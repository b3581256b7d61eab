// Package osrelease derives a short OS release tag (e.g. "SLES15",
// "RHEL8") for embedding in build directory names, so trees built
// before and after an OS upgrade of the cluster do not collide.
package osrelease

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/mod/semver"
)

// Info holds the fields of /etc/os-release this package cares about.
type Info struct {
	ID        string // e.g. "sles", "rhel", "ubuntu"
	VersionID string // e.g. "15.4"
}

var releaseFiles = []string{"/etc/os-release", "/usr/lib/os-release"}

// Read loads the host os-release file.
func Read() (Info, error) {
	for _, path := range releaseFiles {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		return Parse(f)
	}
	return Info{}, eris.New("osrelease: no os-release file found")
}

// Parse reads os-release key/value lines from r.
func Parse(r io.Reader) (Info, error) {
	var info Info
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "ID":
			info.ID = value
		case "VERSION_ID":
			info.VersionID = value
		}
	}
	if err := sc.Err(); err != nil {
		return Info{}, eris.Wrap(err, "osrelease: scan")
	}
	return info, nil
}

// Tag returns the composed tag for info, e.g. {sles 15.4} -> "SLES15".
// An empty ID yields an empty tag.
func (info Info) Tag() string {
	if info.ID == "" {
		return ""
	}
	return strings.ToUpper(info.ID) + majorVersion(info.VersionID)
}

// HostTag derives the tag for the running host. It prefers os-release
// and falls back to the kernel release reported by uname. Returns ""
// when neither source is usable; callers treat that as "no tag".
func HostTag() string {
	if info, err := Read(); err == nil {
		if tag := info.Tag(); tag != "" {
			return tag
		}
	}
	if release := kernelRelease(); release != "" {
		return "LINUX" + majorVersion(release)
	}
	return ""
}

// majorVersion extracts the major component of a dotted version
// string. "15.4" -> "15", "8" -> "8", "" -> "".
func majorVersion(v string) string {
	if v == "" {
		return ""
	}
	if major := semver.Major("v" + v); major != "" {
		return strings.TrimPrefix(major, "v")
	}
	// Not a valid semver prefix (e.g. "12.4.0.1"): take everything up
	// to the first non-digit.
	for i, c := range v {
		if c < '0' || c > '9' {
			return v[:i]
		}
	}
	return v
}
