package rule

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
)

// Dir returns the rule source directory of a project directory.
func Dir(projectDir string) string {
	return filepath.Join(projectDir, SourceDir)
}

// SourceFiles lists the rule documents of a project directory in name order.
func SourceFiles(projectDir string) ([]string, error) {
	dir := Dir(projectDir)
	if !platform.IsDir(dir) {
		return nil, nil
	}
	return platform.FindFilesByExtension(dir, Extension)
}

// ReadDir parses every rule document of a project directory, in name order.
// The first document that fails to parse aborts the read.
func ReadDir(projectDir string) ([]*Rule, error) {
	files, err := SourceFiles(projectDir)
	if err != nil {
		return nil, err
	}

	rules := make([]*Rule, 0, len(files))
	for _, file := range files {
		r, err := ParseFile(file)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// IsSymlinkMode reports whether a project directory is in pass-through mode:
// its rule directory holds exactly one document, named AGENTS.md, without a
// frontmatter block. Every agent then links to that file instead of receiving
// generated output.
func IsSymlinkMode(projectDir string) bool {
	files, err := SourceFiles(projectDir)
	if err != nil || len(files) != 1 {
		return false
	}
	if filepath.Base(files[0]) != AgentsFile {
		return false
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		return false
	}
	return !strings.HasPrefix(strings.TrimLeftFunc(string(data), unicode.IsSpace), delimiter)
}

// SourceAgentsFile returns the path of the pass-through source document.
func SourceAgentsFile(projectDir string) string {
	return filepath.Join(Dir(projectDir), AgentsFile)
}
