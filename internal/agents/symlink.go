package agents

import (
	"path"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// symlinkRelPath is where the agent links the pass-through document. The
// directory kinds have no single file of their own and use AGENTS.md.
func (a *Agent) symlinkRelPath() string {
	switch a.Kind {
	case CursorRules, MarkdownRules:
		return rule.AgentsFile
	default:
		return a.Output
	}
}

// GenerateSymlink points the agent at ai-rules/AGENTS.md. Firebender gets a
// config referencing the document instead of a link.
func (a *Agent) GenerateSymlink(projectDir string) ([]string, error) {
	source := rule.SourceAgentsFile(projectDir)
	if !platform.Exists(source) {
		return nil, nil
	}

	if a.Kind == FirebenderJSON {
		content, err := FirebenderSymlinkConfig(projectDir)
		if err != nil {
			return nil, err
		}
		out := a.outputPath(projectDir)
		if err := platform.WriteFile(out, content); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	rel := a.symlinkRelPath()
	link := filepath.Join(projectDir, filepath.FromSlash(rel))
	target := platform.RelativeTarget(rel, path.Join(rule.SourceDir, rule.AgentsFile))
	if err := platform.CreateRelativeSymlink(link, target); err != nil {
		return nil, err
	}
	return []string{link}, nil
}

// CheckSymlink reports whether the agent's link, or Firebender config,
// points at the pass-through document.
func (a *Agent) CheckSymlink(projectDir string) (bool, error) {
	source := rule.SourceAgentsFile(projectDir)
	if !platform.Exists(source) {
		return false, nil
	}

	if a.Kind == FirebenderJSON {
		want, err := FirebenderSymlinkConfig(projectDir)
		if err != nil {
			return false, err
		}
		return platform.FilesMatch(map[string]string{a.outputPath(projectDir): want})
	}

	link := filepath.Join(projectDir, filepath.FromSlash(a.symlinkRelPath()))
	return platform.PointsTo(link, source)
}

// ownsAgentsLink reports whether link is the AGENTS.md link symlink mode
// creates: it resolves to ai-rules/AGENTS.md, or still carries that target
// after the document was removed.
func ownsAgentsLink(projectDir, link string) (bool, error) {
	if !platform.IsSymlink(link) {
		return false, nil
	}
	ok, err := platform.PointsTo(link, rule.SourceAgentsFile(projectDir))
	if err != nil || ok {
		return ok, err
	}
	target, err := platform.ReadSymlinkTarget(link)
	if err != nil {
		return false, err
	}
	want := platform.RelativeTarget(rule.AgentsFile, path.Join(rule.SourceDir, rule.AgentsFile))
	return filepath.Clean(target) == filepath.Clean(filepath.FromSlash(want)), nil
}
