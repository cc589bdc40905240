package fileutil

import (
	"os"
	"strings"

	"github.com/harness/ar-stats/util/common/errors"
)

// validatePath checks that an output path is usable.
// Returns an error if the path is empty or contains characters
// that are not allowed in file names on common platforms.
func validatePath(path string) error {
	if path == "" {
		return errors.NewValidationError("path", "path cannot be empty")
	}
	if strings.ContainsAny(path, "<>|?*\x00") {
		return errors.NewValidationError("path", "path contains invalid characters")
	}
	return nil
}

// validateWritePermissions checks if a directory is writable by
// creating and removing a uniquely named probe file.
func validateWritePermissions(dir string) error {
	f, err := os.CreateTemp(dir, ".write_test-*")
	if err != nil {
		return errors.NewFileError(dir, "write_permission", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return errors.NewFileError(name, "write_permission", err)
	}
	if err := os.Remove(name); err != nil {
		return errors.NewFileError(name, "write_permission", err)
	}
	return nil
}

// EnsureDir creates path and any parents if needed and verifies it is a
// writable directory.
func EnsureDir(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return errors.NewFileError(path, "create_dir", os.ErrExist)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.NewFileError(path, "create_dir", err)
	}
	return validateWritePermissions(path)
}

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
