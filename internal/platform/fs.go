package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// EnsureTrailingNewline returns content ending in exactly the newline it
// already has, or with one appended.
func EnsureTrailingNewline(content string) string {
	if strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// WriteFiles writes every path -> content pair, creating parent directories.
// Paths are written in sorted order so failures are reproducible.
func WriteFiles(files map[string]string) error {
	for _, path := range SortedKeys(files) {
		if err := WriteFile(path, files[path]); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WritePrivateFile writes content to path readable only by the owner.
// MCP configs can carry tokens in env and headers.
func WritePrivateFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restricting permissions on %s: %w", path, err)
	}
	return nil
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// ReadFileIfExists returns the content of path and whether it existed.
func ReadFileIfExists(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), true, nil
}

// Exists reports whether path exists, without following a final symlink.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether path is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FindFilesByExtension returns the regular files directly inside dir whose
// extension is ext (without the dot), sorted by path. A missing directory
// yields no files.
func FindFilesByExtension(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if filepath.Ext(entry.Name()) == "."+ext {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// RemoveIfExists removes path whether it is a file, symlink or directory tree.
// A missing path is not an error.
func RemoveIfExists(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing directory %s: %w", path, err)
		}
		return nil
	}
	if err := RemoveSymlink(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// RemoveDirIfEmpty deletes dir only when it has no entries left.
func RemoveDirIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("removing directory %s: %w", dir, err)
	}
	return nil
}

// RemoveMatching removes the entries directly inside dir whose name satisfies
// match. Entries that do not match are left alone.
func RemoveMatching(dir string, match func(name string) bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}
		if err := RemoveIfExists(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// DirExactMatch reports whether dir exists, holds exactly as many regular
// files as expected, and every expected file has the expected content.
func DirExactMatch(dir string, expected map[string]string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err == nil && info.Mode().IsRegular() {
			count++
		}
	}
	if count != len(expected) {
		return false, nil
	}
	return FilesMatch(expected)
}

// DirMatchingFilesMatch is the prefix-scoped variant of DirExactMatch: only
// entries whose name satisfies match take part in the comparison, so user
// files sharing the directory do not affect the result. A missing dir is in
// sync when nothing is expected.
func DirMatchingFilesMatch(dir string, expected map[string]string, match func(name string) bool) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return len(expected) == 0, nil
		}
		return false, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}
		if _, ok := expected[filepath.Join(dir, entry.Name())]; !ok {
			return false, nil
		}
	}
	return FilesMatch(expected)
}

// FilesMatch reports whether every path exists with exactly the given content.
func FilesMatch(expected map[string]string) (bool, error) {
	for path, want := range expected {
		got, ok, err := ReadFileIfExists(path)
		if err != nil {
			return false, err
		}
		if !ok || got != want {
			return false, nil
		}
	}
	return true, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
