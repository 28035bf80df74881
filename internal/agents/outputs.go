package agents

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/compose"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

const cursorExtension = "mdc"

// Rules returns the rules visible to the agent. Group members see only the
// rules that apply to every member, since they share one document.
func (a *Agent) Rules(rules []*rule.Rule) []*rule.Rule {
	if a.Group != "" {
		members := GroupMembers(a.Group)
		var out []*rule.Rule
		for _, r := range rules {
			if r.AppliesToAll(members) {
				out = append(out, r)
			}
		}
		return out
	}
	return rule.ForAgent(rules, a.Name)
}

// OptionalKey names the optional-rules index the agent reads, or "" when
// the agent has none.
func (a *Agent) OptionalKey() string {
	switch a.Kind {
	case SingleFile:
		if a.Group != "" {
			return a.Group
		}
		return a.Name
	case ClaudeFile:
		if a.SkillsMode {
			return ""
		}
		return a.Name
	case FirebenderJSON:
		return a.Name
	default:
		return ""
	}
}

// OptionalIndexes returns, for each agent index key, the rules its index is
// built from. Group members share one key.
func OptionalIndexes(agents []*Agent, rules []*rule.Rule) map[string][]*rule.Rule {
	indexes := map[string][]*rule.Rule{}
	for _, a := range agents {
		key := a.OptionalKey()
		if key == "" {
			continue
		}
		if _, done := indexes[key]; done {
			continue
		}
		indexes[key] = a.Rules(rules)
	}
	return indexes
}

func (a *Agent) outputPath(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(a.Output))
}

// Files returns the agent's rule outputs keyed by absolute path. An agent
// with no visible rules gets no files.
func (a *Agent) Files(projectDir string, rules []*rule.Rule) (map[string]string, error) {
	visible := a.Rules(rules)
	files := map[string]string{}
	if len(visible) == 0 {
		return files, nil
	}

	switch a.Kind {
	case SingleFile:
		files[a.outputPath(projectDir)] = compose.Reference(visible, a.OptionalKey())
	case ClaudeFile:
		if a.SkillsMode {
			files[a.outputPath(projectDir)] = compose.Inline(visible)
		} else {
			files[a.outputPath(projectDir)] = compose.Reference(visible, a.OptionalKey())
		}
	case CursorRules:
		for _, r := range visible {
			name := rule.GeneratedPrefix + r.BaseName + "." + cursorExtension
			files[filepath.Join(a.outputPath(projectDir), name)] = CursorRule(r)
		}
	case MarkdownRules:
		for _, r := range visible {
			files[filepath.Join(a.outputPath(projectDir), r.BodyFileName())] = platform.EnsureTrailingNewline(r.Body)
		}
	case FirebenderJSON:
		content, err := FirebenderConfig(projectDir, visible)
		if err != nil {
			return nil, err
		}
		files[a.outputPath(projectDir)] = content
	}
	return files, nil
}

// Generate writes the agent's rule outputs, plus optional-rule skills in
// skills mode, and returns the written paths.
func (a *Agent) Generate(projectDir string, rules []*rule.Rule) ([]string, error) {
	files, err := a.Files(projectDir, rules)
	if err != nil {
		return nil, fmt.Errorf("rendering %s output: %w", a.Name, err)
	}
	if err := platform.WriteFiles(files); err != nil {
		return nil, err
	}
	written := platform.SortedKeys(files)

	if a.SkillsMode && a.OptionalSkills != nil {
		skillFiles, err := a.OptionalSkills.Generate(projectDir, a.Rules(rules))
		if err != nil {
			return nil, fmt.Errorf("writing %s skills: %w", a.Name, err)
		}
		written = append(written, skillFiles...)
	}
	return written, nil
}

// Check reports whether the agent's rule outputs on disk match rules.
func (a *Agent) Check(projectDir string, rules []*rule.Rule) (bool, error) {
	expected, err := a.Files(projectDir, rules)
	if err != nil {
		return false, err
	}

	switch a.Kind {
	case CursorRules, MarkdownRules:
		ok, err := platform.DirMatchingFilesMatch(a.outputPath(projectDir), expected, a.ownsRuleFile)
		if err != nil || !ok {
			return false, err
		}
	default:
		if len(expected) == 0 {
			if platform.Exists(a.outputPath(projectDir)) {
				return false, nil
			}
		} else {
			ok, err := platform.FilesMatch(expected)
			if err != nil || !ok {
				return false, err
			}
		}
	}

	if a.OptionalSkills != nil {
		var skillRules []*rule.Rule
		if a.SkillsMode {
			skillRules = a.Rules(rules)
		}
		return a.OptionalSkills.Check(projectDir, skillRules)
	}
	return true, nil
}

// Clean removes the agent's rule outputs. Directory kinds remove only the
// prefixed files and then the directories once empty.
func (a *Agent) Clean(projectDir string) error {
	switch a.Kind {
	case CursorRules, MarkdownRules:
		dir := a.outputPath(projectDir)
		if err := platform.RemoveMatching(dir, a.ownsRuleFile); err != nil {
			return err
		}
		if err := platform.RemoveDirIfEmpty(dir); err != nil {
			return err
		}
		if err := platform.RemoveDirIfEmpty(filepath.Dir(dir)); err != nil {
			return err
		}
		// Symlink mode leaves a root AGENTS.md link for these agents.
		link := filepath.Join(projectDir, rule.AgentsFile)
		owned, err := ownsAgentsLink(projectDir, link)
		if err != nil || !owned {
			return err
		}
		return platform.RemoveIfExists(link)
	default:
		if err := platform.RemoveIfExists(a.outputPath(projectDir)); err != nil {
			return err
		}
	}

	if a.OptionalSkills != nil {
		return a.OptionalSkills.Clean(projectDir)
	}
	return nil
}

func (a *Agent) ownsRuleFile(name string) bool {
	if !strings.HasPrefix(name, rule.GeneratedPrefix) {
		return false
	}
	if a.Kind == CursorRules {
		return strings.HasSuffix(name, "."+cursorExtension)
	}
	return strings.HasSuffix(name, "."+rule.Extension)
}

// GitignorePatterns returns the project-relative patterns of every file the
// agent can generate, its MCP, command and skill outputs included.
func (a *Agent) GitignorePatterns() []string {
	var patterns []string
	switch a.Kind {
	case CursorRules:
		patterns = append(patterns, path.Join(a.Output, rule.GeneratedPrefix+"*."+cursorExtension), rule.AgentsFile)
	case MarkdownRules:
		patterns = append(patterns, path.Join(a.Output, rule.GeneratedPrefix+"*."+rule.Extension), rule.AgentsFile)
	default:
		patterns = append(patterns, a.Output)
	}

	if a.MCP != nil {
		patterns = append(patterns, a.MCP.Path)
	}
	if a.Commands != nil {
		patterns = append(patterns, a.Commands.GitignorePatterns()...)
	}
	if a.Skills != nil {
		patterns = append(patterns, a.Skills.GitignorePatterns()...)
	}
	if a.SkillsMode && a.OptionalSkills != nil {
		patterns = append(patterns, a.OptionalSkills.GitignorePatterns()...)
	}
	return patterns
}

// CursorRule renders one rule as a Cursor .mdc document.
func CursorRule(r *rule.Rule) string {
	var b strings.Builder
	b.WriteString("---\ndescription: ")
	b.WriteString(r.Description)
	b.WriteString("\n")
	if len(r.FileMatching) > 0 {
		b.WriteString("globs: ")
		b.WriteString(strings.Join(r.FileMatching, ", "))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "alwaysApply: %t\n---\n\n", r.AlwaysApply)
	b.WriteString(r.Body)
	return platform.EnsureTrailingNewline(b.String())
}
