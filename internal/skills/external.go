package skills

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// External links every skill folder into an agent's skills directory as
// <Dir>/ai-rules-generated-<name>.
type External struct {
	Dir string
}

func (e External) targetDir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(e.Dir))
}

func (e External) linkRelPath(f Folder) string {
	return path.Join(e.Dir, rule.GeneratedPrefix+f.Name)
}

// Generate creates one relative symlink per skill folder.
func (e External) Generate(projectDir string) ([]string, error) {
	folders, err := Find(projectDir)
	if err != nil {
		return nil, err
	}

	var created []string
	for _, f := range folders {
		rel := e.linkRelPath(f)
		link := filepath.Join(projectDir, filepath.FromSlash(rel))
		if err := platform.CreateRelativeSymlink(link, platform.RelativeTarget(rel, f.RelPath)); err != nil {
			return nil, fmt.Errorf("linking skill %s: %w", f.Name, err)
		}
		created = append(created, link)
	}
	return created, nil
}

// Check reports whether every skill has a link resolving to its folder and
// no link remains for a skill that is gone.
func (e External) Check(projectDir string) (bool, error) {
	folders, err := Find(projectDir)
	if err != nil {
		return false, err
	}

	known := make(map[string]bool, len(folders))
	for _, f := range folders {
		known[f.Name] = true
		link := filepath.Join(projectDir, filepath.FromSlash(e.linkRelPath(f)))
		ok, err := platform.PointsTo(link, f.Path)
		if err != nil || !ok {
			return false, err
		}
	}

	links, err := e.generatedLinks(projectDir)
	if err != nil {
		return false, err
	}
	for _, name := range links {
		if !known[strings.TrimPrefix(name, rule.GeneratedPrefix)] {
			return false, nil
		}
	}
	return true, nil
}

// Clean removes the generated skill links. Generated skill folders written
// for optional rules share the prefix but are directories, not links, and
// are left alone.
func (e External) Clean(projectDir string) error {
	dir := e.targetDir(projectDir)
	return platform.RemoveMatching(dir, func(name string) bool {
		return strings.HasPrefix(name, rule.GeneratedPrefix) && platform.IsSymlink(filepath.Join(dir, name))
	})
}

// GitignorePatterns returns the project-relative pattern of the links.
func (e External) GitignorePatterns() []string {
	return []string{e.Dir + "/" + rule.GeneratedPrefix + "*"}
}

func (e External) generatedLinks(projectDir string) ([]string, error) {
	dir := e.targetDir(projectDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), rule.GeneratedPrefix) && platform.IsSymlink(filepath.Join(dir, entry.Name())) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
