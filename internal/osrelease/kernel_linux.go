//go:build linux

package osrelease

import "golang.org/x/sys/unix"

// kernelRelease returns the uname release string, e.g. "5.14.21-default".
func kernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}
