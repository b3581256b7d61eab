// Package links maintains the build/install symlinks inside a source
// checkout that point at the composed out-of-tree directories.
package links

import (
	"os"

	"github.com/rotisserie/eris"
)

// Ensure makes linkPath a symlink to target. It is a no-op when the
// link already exists and points at target. Anything else in the way
// is an error; nothing is overwritten.
func Ensure(linkPath, target string) error {
	info, err := os.Lstat(linkPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return eris.Wrapf(err, "links: stat %s", linkPath)
		}
		if err := os.Symlink(target, linkPath); err != nil {
			return eris.Wrapf(err, "links: symlink %s -> %s", linkPath, target)
		}
		return nil
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return eris.Errorf("links: %s exists and is not a symlink; move it aside first", linkPath)
	}
	dest, err := os.Readlink(linkPath)
	if err != nil {
		return eris.Wrapf(err, "links: readlink %s", linkPath)
	}
	if dest != target {
		return eris.Errorf("links: %s already points to %s, not %s; remove it to relink", linkPath, dest, target)
	}
	return nil
}

// Check reports where linkPath currently points, or "" when it does
// not exist. Used by dry runs, which must not create anything.
func Check(linkPath string) (string, bool) {
	dest, err := os.Readlink(linkPath)
	if err != nil {
		return "", false
	}
	return dest, true
}
