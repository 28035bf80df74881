package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// excludedDirs are never descended into during a project walk.
var excludedDirs = map[string]bool{
	"ai-rules":      true,
	"target":        true,
	"build":         true,
	"dist":          true,
	"out":           true,
	"bin":           true,
	"obj":           true,
	"node_modules":  true,
	"vendor":        true,
	"packages":      true,
	"__pycache__":   true,
	".pytest_cache": true,
	".cache":        true,
	".vscode":       true,
	".idea":         true,
	".vs":           true,
	"tmp":           true,
	"temp":          true,
	"logs":          true,
}

// ShouldTraverse reports whether a directory with the given name is walked.
func ShouldTraverse(name string) bool {
	return !strings.HasPrefix(name, ".") && !excludedDirs[name]
}

// WalkFunc is called once per visited directory with its depth below the root.
type WalkFunc func(dir string, depth int) error

// Walk calls fn for root and then, depth-first in name order, for every
// traversable subdirectory down to maxDepth levels below root. The first
// error returned by fn stops the walk.
func Walk(root string, maxDepth int, fn WalkFunc) error {
	return walk(root, maxDepth, 0, fn)
}

func walk(dir string, maxDepth, depth int, fn WalkFunc) error {
	if err := fn(dir, depth); err != nil {
		return err
	}
	if depth >= maxDepth {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !ShouldTraverse(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, path)
	}
	sort.Strings(dirs)

	for _, sub := range dirs {
		if err := walk(sub, maxDepth, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
