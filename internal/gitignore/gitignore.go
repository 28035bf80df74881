// Package gitignore maintains the tool's section of a project .gitignore.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

const (
	sectionStart = "# AI Rules - Generated Files"
	sectionEnd   = "# End AI Rules"
)

// keepSource re-includes the pass-through source that a generic AGENTS.md
// pattern would otherwise hide.
var keepSource = "!**/" + rule.SourceDir + "/" + rule.AgentsFile

// Patterns anchors project-relative patterns: "/" at the root only, or
// "**/" when nested project directories are generated too. The result is
// sorted and free of duplicates.
func Patterns(relative []string, nestedDepth int) []string {
	anchor := "/"
	if nestedDepth > 0 {
		anchor = "**/"
	}

	seen := make(map[string]bool, len(relative))
	var out []string
	for _, p := range relative {
		anchored := anchor + strings.TrimPrefix(p, "/")
		if !seen[anchored] {
			seen[anchored] = true
			out = append(out, anchored)
		}
	}
	sort.Strings(out)
	return out
}

// Section renders the managed block for the given anchored patterns.
func Section(patterns []string) string {
	var b strings.Builder
	b.WriteString(sectionStart + "\n")
	for _, p := range patterns {
		b.WriteString(p + "\n")
	}
	b.WriteString(keepSource + "\n")
	b.WriteString(sectionEnd + "\n")
	return b.String()
}

// removeSection drops the managed block and any trailing whitespace it
// leaves behind. Content without a complete block is returned unchanged.
func removeSection(content string) string {
	start := strings.Index(content, sectionStart)
	if start < 0 {
		return content
	}
	end := strings.Index(content[start:], sectionEnd)
	if end < 0 {
		return content
	}
	end += start + len(sectionEnd)
	return strings.TrimRight(content[:start]+content[end:], " \t\r\n")
}

// Update replaces the managed block of dir/.gitignore with one listing
// patterns, creating the file when needed.
func Update(dir string, patterns []string) error {
	path := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	out := strings.TrimRight(removeSection(string(content)), " \t\r\n")
	if len(patterns) > 0 {
		if out != "" {
			out += "\n\n"
		}
		out += Section(patterns)
	} else if out != "" {
		out += "\n"
	}

	if out == string(content) {
		return nil
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// Remove deletes the managed block from dir/.gitignore. A missing file or
// block is a no-op.
func Remove(dir string) error {
	path := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading .gitignore: %w", err)
	}
	if !strings.Contains(string(content), sectionStart) {
		return nil
	}

	out := removeSection(string(content))
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
