package commands

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// Subdir is the tool-owned folder inside an agent's command directory.
const Subdir = rule.SourceDir

// Generator writes, checks and removes one agent's commands.
type Generator interface {
	Generate(projectDir string) ([]string, error)
	Check(projectDir string) (bool, error)
	Clean(projectDir string) error
	GitignorePatterns() []string
}

// Symlinks links every command as <Dir>/ai-rules/<name>.md. The ai-rules
// subfolder belongs to the tool as a whole.
type Symlinks struct {
	Dir string
}

func (s Symlinks) subdir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(s.Dir), Subdir)
}

func (s Symlinks) linkRelPath(c Command) string {
	return path.Join(s.Dir, Subdir, c.Name+"."+rule.Extension)
}

// Generate creates one relative symlink per command.
func (s Symlinks) Generate(projectDir string) ([]string, error) {
	cmds, err := Find(projectDir)
	if err != nil {
		return nil, err
	}

	var created []string
	for _, c := range cmds {
		rel := s.linkRelPath(c)
		link := filepath.Join(projectDir, filepath.FromSlash(rel))
		if err := platform.CreateRelativeSymlink(link, platform.RelativeTarget(rel, c.RelPath)); err != nil {
			return nil, fmt.Errorf("linking command %s: %w", c.Name, err)
		}
		created = append(created, link)
	}
	return created, nil
}

// Check reports whether the subfolder holds exactly one link per command,
// each resolving to its source. Without commands the subfolder must not
// exist.
func (s Symlinks) Check(projectDir string) (bool, error) {
	cmds, err := Find(projectDir)
	if err != nil {
		return false, err
	}

	dir := s.subdir(projectDir)
	if len(cmds) == 0 {
		return !platform.Exists(dir), nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	if len(entries) != len(cmds) {
		return false, nil
	}

	for _, c := range cmds {
		link := filepath.Join(projectDir, filepath.FromSlash(s.linkRelPath(c)))
		ok, err := platform.PointsTo(link, c.Path)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Clean removes the tool-owned subfolder.
func (s Symlinks) Clean(projectDir string) error {
	return platform.RemoveIfExists(s.subdir(projectDir))
}

// GitignorePatterns returns the project-relative pattern of the subfolder.
func (s Symlinks) GitignorePatterns() []string {
	return []string{path.Join(s.Dir, Subdir) + "/"}
}

// Copies writes every command body, frontmatter stripped, as
// <Dir>/ai-rules-generated-<name>.md next to the user's own commands.
type Copies struct {
	Dir string
}

func (c Copies) dir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(c.Dir))
}

func owned(name string) bool {
	return strings.HasPrefix(name, rule.GeneratedPrefix)
}

// Expected returns the command files keyed by absolute path.
func (c Copies) Expected(projectDir string) (map[string]string, error) {
	cmds, err := Find(projectDir)
	if err != nil {
		return nil, err
	}
	files := make(map[string]string, len(cmds))
	for _, cmd := range cmds {
		content, err := cmd.Body()
		if err != nil {
			return nil, fmt.Errorf("reading command %s: %w", cmd.Name, err)
		}
		files[filepath.Join(c.dir(projectDir), rule.GeneratedPrefix+cmd.Name+"."+rule.Extension)] = content
	}
	return files, nil
}

// Generate writes the stripped command files.
func (c Copies) Generate(projectDir string) ([]string, error) {
	files, err := c.Expected(projectDir)
	if err != nil {
		return nil, err
	}
	if err := platform.WriteFiles(files); err != nil {
		return nil, err
	}
	return platform.SortedKeys(files), nil
}

// Check compares the prefixed files with the expected set; user commands
// in the same directory are ignored.
func (c Copies) Check(projectDir string) (bool, error) {
	files, err := c.Expected(projectDir)
	if err != nil {
		return false, err
	}
	return platform.DirMatchingFilesMatch(c.dir(projectDir), files, owned)
}

// Clean removes the prefixed files, then Dir and its parent once empty.
func (c Copies) Clean(projectDir string) error {
	dir := c.dir(projectDir)
	if err := platform.RemoveMatching(dir, owned); err != nil {
		return err
	}
	if err := platform.RemoveDirIfEmpty(dir); err != nil {
		return err
	}
	if parent := filepath.Dir(dir); parent != filepath.Clean(projectDir) {
		return platform.RemoveDirIfEmpty(parent)
	}
	return nil
}

// GitignorePatterns returns the project-relative pattern of the copies.
func (c Copies) GitignorePatterns() []string {
	return []string{c.Dir + "/" + rule.GeneratedPrefix + "*." + rule.Extension}
}
