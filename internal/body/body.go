package body

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// OptionalHeader opens every optional-rules index document.
const OptionalHeader = "# Optional Rules (use when relevant):\n\n"

// Dir returns the generated body directory of a project directory.
func Dir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(rule.GeneratedDir))
}

// Materialize returns one generated body file per rule, keyed by absolute
// path. Required and optional rules are both materialized.
func Materialize(projectDir string, rules []*rule.Rule) map[string]string {
	files := make(map[string]string, len(rules))
	for _, r := range rules {
		files[filepath.Join(Dir(projectDir), r.BodyFileName())] = platform.EnsureTrailingNewline(r.Body)
	}
	return files
}

// OptionalFileName returns the index file name for an agent or agent group.
func OptionalFileName(key string) string {
	return rule.GeneratedPrefix + "optional-" + key + "." + rule.Extension
}

// OptionalPath returns the project-relative, slash-separated index path.
func OptionalPath(key string) string {
	return path.Join(rule.GeneratedDir, OptionalFileName(key))
}

// OptionalIndex lists the optional rules in declaration order, one
// "<description>: <body path>" entry each followed by a blank line. It is
// empty when no rule is optional.
func OptionalIndex(rules []*rule.Rule) string {
	var entries strings.Builder
	for _, r := range rules {
		if r.AlwaysApply {
			continue
		}
		entries.WriteString(r.Description)
		entries.WriteString(": ")
		entries.WriteString(r.BodyPath())
		entries.WriteString("\n\n")
	}
	if entries.Len() == 0 {
		return ""
	}
	return OptionalHeader + entries.String()
}

// Expected returns the full content of the generated body directory: every
// body plus one optional index per key whose rule subset has optional rules.
// indexes maps an agent or group key to the rules visible to it.
func Expected(projectDir string, rules []*rule.Rule, indexes map[string][]*rule.Rule) map[string]string {
	files := Materialize(projectDir, rules)
	if len(files) == 0 {
		return files
	}
	for key, subset := range indexes {
		if content := OptionalIndex(subset); content != "" {
			files[filepath.Join(Dir(projectDir), OptionalFileName(key))] = content
		}
	}
	return files
}

// Write writes the expected body directory content.
func Write(files map[string]string) error {
	return platform.WriteFiles(files)
}

// Check reports whether the body directory matches expected exactly. With
// nothing expected, the directory must not exist.
func Check(projectDir string, expected map[string]string) (bool, error) {
	if len(expected) == 0 {
		return !platform.Exists(Dir(projectDir)), nil
	}
	return platform.DirExactMatch(Dir(projectDir), expected)
}

// Clean removes the generated body directory. The directory belongs to the
// tool as a whole, so nothing inside it is user content.
func Clean(projectDir string) error {
	return platform.RemoveIfExists(Dir(projectDir))
}
