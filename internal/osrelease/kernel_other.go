//go:build !linux

package osrelease

// OS tagging only matters on the Linux clusters this tool targets.
func kernelRelease() string { return "" }
