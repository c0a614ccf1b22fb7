// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotWritable is returned when a directory rejects a probe file.
var ErrNotWritable = errors.New("directory is not writable")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Exists returns true if anything (file, directory, link target) is at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir resolves dir to an absolute path and creates it with parents.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("creating %q: %w", abs, err)
	}
	return abs, nil
}

// AppendString appends content to the file at path, creating it if needed.
func AppendString(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302,G304 -- user-selected output
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}

	if _, writeErr := f.WriteString(content); writeErr != nil {
		_ = f.Close()
		return fmt.Errorf("writing %q: %w", path, writeErr)
	}

	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("closing %q: %w", path, closeErr)
	}
	return nil
}

// CheckWritableDir verifies dir accepts new files by creating and removing a
// probe file. Permission bits alone lie on some filesystems.
func CheckWritableDir(dir string) error {
	probe, err := os.CreateTemp(dir, ".twempest-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

// IsReadableFile returns true if path is a regular file that can be opened.
func IsReadableFile(path string) bool {
	f, err := os.Open(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) or a file extension is a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./post.tmpl" -> true (relative path)
//   - "post.tmpl" -> true (extension)
//   - "/absolute/post.md" -> true (absolute)
//   - "my-template" -> false (hyphenated name)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || filepath.Ext(s) != ""
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
