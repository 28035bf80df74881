package skills

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

const (
	// SourceDir is the skills directory inside the rule directory.
	SourceDir = "skills"
	// ManifestFile is the file every skill folder must contain.
	ManifestFile = "SKILL.md"
)

// Folder is one skill folder under ai-rules/skills.
type Folder struct {
	Name string
	// RelPath is the project-relative, slash-separated folder path.
	RelPath string
	Path    string
}

// Dir returns the skill source directory of a project directory.
func Dir(projectDir string) string {
	return filepath.Join(rule.Dir(projectDir), SourceDir)
}

// Find lists the skill folders of a project directory in name order.
// Entries that are not directories, and folders without a SKILL.md, are
// skipped with a warning.
func Find(projectDir string) ([]Folder, error) {
	dir := Dir(projectDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading skills directory %s: %w", dir, err)
	}

	var folders []Folder
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		info, err := os.Stat(full)
		if err != nil || !info.IsDir() {
			slog.Warn("skipping skills entry: not a directory", "name", entry.Name())
			continue
		}
		if _, err := os.Stat(filepath.Join(full, ManifestFile)); err != nil {
			slog.Warn("skipping skill folder: missing "+ManifestFile, "name", entry.Name())
			continue
		}
		folders = append(folders, Folder{
			Name:    entry.Name(),
			RelPath: path.Join(rule.SourceDir, SourceDir, entry.Name()),
			Path:    full,
		})
	}
	return folders, nil
}
