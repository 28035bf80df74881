package linker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// legacyDirs held generated bodies before they moved under ai-rules/.
var legacyDirs = []string{".generated-ai-rules"}

// legacyFiles are rule files of agents that now read AGENTS.md.
var legacyFiles = []string{".goosehints"}

// legacyRuleDirs are per-agent rule directories replaced by AGENTS.md.
// Only prefixed files are removed from them.
var legacyRuleDirs = []string{".roo/rules", ".clinerules", ".kilocode/rules"}

// Clean removes every agent's generated artifacts from each traversed
// directory, managed or not. User files are left alone.
func Clean(ctx context.Context, opts Options) error {
	registry := agents.NewRegistry(agents.Options{ClaudeSkills: opts.ClaudeSkills})
	all := registry.All()

	return platform.Walk(opts.Root, opts.NestedDepth, func(dir string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cleanDir(dir, all, all); err != nil {
			return fmt.Errorf("cleaning %s: %w", relDir(opts.Root, dir), err)
		}
		return nil
	})
}

// cleanDir removes generated bodies, legacy outputs, and the outputs of
// selected. Commands are removed for commandOwners.
func cleanDir(dir string, selected, commandOwners []*agents.Agent) error {
	if err := body.Clean(dir); err != nil {
		return err
	}
	if err := cleanLegacy(dir); err != nil {
		return err
	}

	for _, a := range selected {
		if err := a.Clean(dir); err != nil {
			return fmt.Errorf("cleaning %s: %w", a.Name, err)
		}
	}
	for _, a := range selected {
		if a.MCP == nil {
			continue
		}
		if err := a.MCP.Clean(dir); err != nil {
			return fmt.Errorf("cleaning %s MCP config: %w", a.Name, err)
		}
	}
	for _, a := range commandOwners {
		if a.Commands == nil {
			continue
		}
		if err := a.Commands.Clean(dir); err != nil {
			return fmt.Errorf("cleaning %s commands: %w", a.Name, err)
		}
	}
	for _, a := range selected {
		if a.Skills == nil {
			continue
		}
		if err := a.Skills.Clean(dir); err != nil {
			return fmt.Errorf("cleaning %s skills: %w", a.Name, err)
		}
	}
	return nil
}

func cleanLegacy(dir string) error {
	for _, name := range legacyDirs {
		if err := platform.RemoveIfExists(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	for _, name := range legacyFiles {
		if err := platform.RemoveIfExists(filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	generated := func(name string) bool { return strings.HasPrefix(name, rule.GeneratedPrefix) }
	for _, rel := range legacyRuleDirs {
		rulesDir := filepath.Join(dir, filepath.FromSlash(rel))
		if !platform.IsDir(rulesDir) {
			continue
		}
		if err := platform.RemoveMatching(rulesDir, generated); err != nil {
			return err
		}
		if err := platform.RemoveDirIfEmpty(rulesDir); err != nil {
			return err
		}
		if parent := filepath.Dir(rulesDir); parent != filepath.Clean(dir) {
			if err := platform.RemoveDirIfEmpty(parent); err != nil {
				return err
			}
		}
	}
	return nil
}
