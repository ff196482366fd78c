// Package fileurl holds small filesystem path helpers.
package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist reports whether the path exists.
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath creates the parent directories of a file path.
func CreatePath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}
