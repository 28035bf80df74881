package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CreateSymlink creates a symbolic link from link pointing to target.
// On Windows it attempts os.Symlink first (requires developer mode), then
// falls back to copying the file and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyFileForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// The copy succeeded; a missing sidecar only degrades ReadSymlinkTarget.
	_ = os.WriteFile(link+".target", []byte(target), 0o644)
	return nil
}

// CreateRelativeSymlink creates link pointing at the relative target,
// creating parent directories and replacing whatever already sits at link.
func CreateRelativeSymlink(link, target string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", link, err)
	}
	if err := RemoveIfExists(link); err != nil {
		return err
	}
	if err := CreateSymlink(target, link); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", link, target, err)
	}
	return nil
}

// RelativeTarget returns the path that reaches target (relative to the
// project root) from a link located at linkPath (also relative to the
// project root): one "../" per directory level of linkPath.
func RelativeTarget(linkPath, target string) string {
	depth := strings.Count(filepath.ToSlash(linkPath), "/")
	return filepath.Join(strings.Repeat("../", depth), target)
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + ".target") // best-effort
	return err
}

// ReadSymlinkTarget returns the target of a symlink.
// On Windows, if os.Readlink fails because a copy fallback was used,
// it reads from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + ".target")
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path exists and is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return true
	}
	if runtime.GOOS == "windows" {
		_, err := os.Stat(path + ".target")
		return err == nil
	}
	return false
}

// PointsTo reports whether link is a symlink whose target, resolved against
// the link's directory, canonically equals expected. expected must exist.
func PointsTo(link, expected string) (bool, error) {
	if !IsSymlink(link) {
		return false, nil
	}
	want, err := filepath.EvalSymlinks(expected)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", expected, err)
	}

	target, err := ReadSymlinkTarget(link)
	if err != nil {
		return false, fmt.Errorf("reading symlink %s: %w", link, err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	got, err := filepath.EvalSymlinks(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("resolving %s: %w", target, err)
	}
	return got == want, nil
}

// IsSymlinkSupported returns true if the current platform supports native symlinks.
// On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".ai-rules-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}

// copyFileForSymlink copies src to dst. A relative src is resolved against
// the directory containing dst, the same way the OS resolves a symlink.
func copyFileForSymlink(src, dst string) error {
	resolvedSrc := src
	if !filepath.IsAbs(src) {
		resolvedSrc = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(resolvedSrc)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
