package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

const maxNameLength = 64

var invalidNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// SanitizeName turns a rule description into a skill name: lowercase
// letters, digits and single hyphens, at most 64 characters.
func SanitizeName(name string) string {
	s := invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return strings.TrimRight(s, "-")
}

// OptionalRules writes one skill per optional rule into Dir, each a
// manifest that references the rule's generated body:
// <Dir>/ai-rules-generated-<base>/SKILL.md.
type OptionalRules struct {
	Dir string
}

// Manifest renders the SKILL.md of an optional rule. The description falls
// back to the rule's base name.
func Manifest(r *rule.Rule) string {
	description := r.Description
	if description == "" {
		description = r.BaseName
	}
	return "---\nname: " + SanitizeName(description) +
		"\ndescription: " + description +
		"\n---\n\n@" + r.BodyPath()
}

func (o OptionalRules) targetDir(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(o.Dir))
}

// Expected returns the skill manifests of the optional rules, keyed by
// absolute path.
func (o OptionalRules) Expected(projectDir string, rules []*rule.Rule) map[string]string {
	files := map[string]string{}
	for _, r := range rules {
		if r.AlwaysApply {
			continue
		}
		files[filepath.Join(o.targetDir(projectDir), rule.GeneratedPrefix+r.BaseName, ManifestFile)] = Manifest(r)
	}
	return files
}

// Generate writes the skill manifests.
func (o OptionalRules) Generate(projectDir string, rules []*rule.Rule) ([]string, error) {
	files := o.Expected(projectDir, rules)
	if err := platform.WriteFiles(files); err != nil {
		return nil, err
	}
	return platform.SortedKeys(files), nil
}

// Check reports whether exactly the expected generated skill folders exist
// with the expected manifests.
func (o OptionalRules) Check(projectDir string, rules []*rule.Rule) (bool, error) {
	expected := o.Expected(projectDir, rules)
	dirs, err := o.generatedDirs(projectDir)
	if err != nil {
		return false, err
	}
	if len(dirs) != len(expected) {
		return false, nil
	}
	return platform.FilesMatch(expected)
}

// Clean removes the generated skill folders. User skills and generated
// skill links are left alone.
func (o OptionalRules) Clean(projectDir string) error {
	dirs, err := o.generatedDirs(projectDir)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing skill %s: %w", dir, err)
		}
	}
	return nil
}

// GitignorePatterns returns the project-relative pattern of the folders.
func (o OptionalRules) GitignorePatterns() []string {
	return []string{o.Dir + "/" + rule.GeneratedPrefix + "*/"}
}

// generatedDirs lists the prefixed real directories in Dir.
func (o OptionalRules) generatedDirs(projectDir string) ([]string, error) {
	dir := o.targetDir(projectDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), rule.GeneratedPrefix) {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	return dirs, nil
}
