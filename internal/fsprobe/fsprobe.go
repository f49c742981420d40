// Package fsprobe provides the file system probes the search resolver
// uses to test stub candidates.
package fsprobe

import (
	"os"
)

// FileExists reports whether path names something that exists and is not
// a directory. Device files pass on purpose; a location may be remapped
// to one.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
