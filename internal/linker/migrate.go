package linker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/commands"
	"github.com/ai-rules-labs/ai-rules/internal/compose"
	"github.com/ai-rules-labs/ai-rules/internal/gitignore"
	"github.com/ai-rules-labs/ai-rules/internal/jsonmerge"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
	"github.com/ai-rules-labs/ai-rules/internal/skills"
)

// AgentsDir is the shared agent directory migrated sources move into.
const AgentsDir = ".agents"

// rootMCPFile receives the migrated MCP servers.
const rootMCPFile = ".mcp.json"

// MigrationResult describes what Migrate did, or would do, in one directory.
type MigrationResult struct {
	Dir     string
	Actions []string
}

// MigrationTargets lists the managed directories Migrate would convert.
func MigrationTargets(ctx context.Context, opts Options) ([]string, error) {
	var dirs []string
	err := walkManaged(ctx, opts, func(dir string) error {
		dirs = append(dirs, dir)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// Migrate converts one managed directory to a plain AGENTS.md project: the
// rules are inlined into a root AGENTS.md, skills, commands and other
// source folders move under .agents/, the MCP source moves to .mcp.json,
// generated files are cleaned and ai-rules/ is removed. With dryRun set
// nothing is touched and the actions describe what would happen.
func Migrate(dir string, dryRun bool) (*MigrationResult, error) {
	content, err := migratedAgentsContent(dir)
	if err != nil {
		return nil, err
	}
	if _, _, err := mcp.ReadSource(dir); err != nil {
		return nil, err
	}

	folders, err := migratedFolders(dir)
	if err != nil {
		return nil, err
	}
	hasMCP := platform.Exists(mcp.SourcePath(dir))

	result := &MigrationResult{Dir: dir}
	if dryRun {
		result.Actions = append(result.Actions, "would write AGENTS.md")
		for _, name := range folders {
			result.Actions = append(result.Actions, fmt.Sprintf("would move %s to %s/%s", name, AgentsDir, name))
		}
		if hasMCP {
			result.Actions = append(result.Actions, "would move mcp.json to "+rootMCPFile)
		}
		result.Actions = append(result.Actions, "would clean generated files and remove "+rule.SourceDir+"/")
		return result, nil
	}

	all := agents.NewRegistry(agents.Options{}).All()
	if err := cleanDir(dir, all, all); err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, "cleaned generated files")

	for _, name := range folders {
		src := filepath.Join(rule.Dir(dir), name)
		if err := platform.MoveDir(src, filepath.Join(dir, AgentsDir, name)); err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, fmt.Sprintf("moved %s to %s/%s", name, AgentsDir, name))
	}

	if hasMCP {
		if err := moveMCPSource(dir); err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, "moved mcp.json to "+rootMCPFile)
	}

	if err := os.RemoveAll(rule.Dir(dir)); err != nil {
		return nil, fmt.Errorf("removing %s: %w", rule.Dir(dir), err)
	}
	result.Actions = append(result.Actions, "removed "+rule.SourceDir+"/")

	// Written after the clean, which would remove it as a generated file.
	if err := platform.WriteFile(filepath.Join(dir, rule.AgentsFile), content); err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, "wrote AGENTS.md")

	if err := gitignore.Remove(dir); err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, "updated .gitignore")

	slog.Debug("migrated", "dir", dir, "actions", len(result.Actions))
	return result, nil
}

// migratedAgentsContent is the root AGENTS.md a directory migrates to: the
// pass-through document in symlink mode, every rule inlined otherwise.
func migratedAgentsContent(dir string) (string, error) {
	if rule.IsSymlinkMode(dir) {
		data, err := os.ReadFile(rule.SourceAgentsFile(dir))
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", rule.SourceAgentsFile(dir), err)
		}
		return string(data), nil
	}
	rules, err := rule.ReadDir(dir)
	if err != nil {
		return "", err
	}
	return compose.InlineAll(rules), nil
}

// migratedFolders lists the folders of the rule directory that move under
// .agents/: skills and commands first, then any other user folder. The
// generated body folder is dropped.
func migratedFolders(dir string) ([]string, error) {
	entries, err := os.ReadDir(rule.Dir(dir))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rule.Dir(dir), err)
	}

	var folders, others []string
	for _, name := range []string{skills.SourceDir, commands.SourceDir} {
		if platform.IsDir(filepath.Join(rule.Dir(dir), name)) {
			folders = append(folders, name)
		}
	}
	generated := filepath.Base(body.Dir(dir))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name == generated || name == skills.SourceDir || name == commands.SourceDir {
			continue
		}
		others = append(others, name)
	}
	return append(folders, others...), nil
}

// moveMCPSource merges the MCP source into the root .mcp.json, keeping any
// other keys and servers already there, and deletes the source.
func moveMCPSource(dir string) error {
	src := mcp.SourcePath(dir)
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	source, err := jsonmerge.DecodeObject(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", src, err)
	}

	dst := filepath.Join(dir, rootMCPFile)
	var merged any = source
	existing, found, err := platform.ReadFileIfExists(dst)
	if err != nil {
		return err
	}
	if found {
		doc, err := jsonmerge.DecodeObject([]byte(existing))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", dst, err)
		}
		merged = jsonmerge.Merge(doc, source)
	}

	out, err := jsonmerge.Encode(merged)
	if err != nil {
		return err
	}
	if err := platform.WritePrivateFile(dst, out); err != nil {
		return err
	}
	return platform.RemoveIfExists(src)
}
