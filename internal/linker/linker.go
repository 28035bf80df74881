package linker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/config"
	"github.com/ai-rules-labs/ai-rules/internal/gitignore"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// Options selects what one run operates on.
type Options struct {
	// Root is the project root the walk starts at.
	Root string
	// Agents are the agents to act on. Empty means every agent.
	Agents []string
	// CommandAgents are the agents receiving commands. Nil means Agents;
	// an empty, non-nil slice means none.
	CommandAgents []string
	NestedDepth   int
	Gitignore     bool
	ClaudeSkills  bool
}

// OptionsFromConfig builds run options from a resolved configuration.
func OptionsFromConfig(root string, cfg *config.Config) Options {
	return Options{
		Root:          root,
		Agents:        cfg.Agents,
		CommandAgents: cfg.CommandAgents,
		NestedDepth:   cfg.NestedDepth,
		Gitignore:     cfg.Gitignore,
		ClaudeSkills:  cfg.UseClaudeSkills,
	}
}

// plan is the agent selection of one run.
type plan struct {
	registry      *agents.Registry
	agents        []*agents.Agent
	commandAgents []*agents.Agent
}

func newPlan(opts Options) (*plan, error) {
	registry := agents.NewRegistry(agents.Options{ClaudeSkills: opts.ClaudeSkills})
	selected, err := registry.Resolve(opts.Agents)
	if err != nil {
		return nil, err
	}

	p := &plan{registry: registry, agents: selected, commandAgents: selected}
	if opts.CommandAgents != nil {
		p.commandAgents = nil
		if len(opts.CommandAgents) > 0 {
			p.commandAgents, err = registry.Resolve(opts.CommandAgents)
			if err != nil {
				return nil, fmt.Errorf("command agents: %w", err)
			}
		}
	}
	return p, nil
}

// statusAgents is every agent the run reports on: the selected agents
// followed by command agents outside the selection.
func (p *plan) statusAgents() []*agents.Agent {
	out := append([]*agents.Agent(nil), p.agents...)
	for _, a := range p.commandAgents {
		if !p.selected(a) {
			out = append(out, a)
		}
	}
	return out
}

func (p *plan) selected(a *agents.Agent) bool {
	for _, s := range p.agents {
		if s == a {
			return true
		}
	}
	return false
}

// gitignorePatterns covers every agent of the table, not only the
// selected ones, so switching agents never exposes stale outputs.
func (p *plan) gitignorePatterns(nestedDepth int) []string {
	relative := []string{rule.GeneratedDir}
	for _, a := range p.registry.All() {
		relative = append(relative, a.GitignorePatterns()...)
	}
	return gitignore.Patterns(relative, nestedDepth)
}

// managed reports whether dir holds a rule directory.
func managed(dir string) bool {
	return platform.IsDir(rule.Dir(dir))
}

// walkManaged calls fn for every managed directory within the depth limit,
// stopping early when ctx is done.
func walkManaged(ctx context.Context, opts Options, fn func(dir string) error) error {
	return platform.Walk(opts.Root, opts.NestedDepth, func(dir string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !managed(dir) {
			return nil
		}
		return fn(dir)
	})
}

// Generate regenerates every selected agent's artifacts in each managed
// directory, then updates or removes the root .gitignore section.
func Generate(ctx context.Context, opts Options) (*GenerationResult, error) {
	p, err := newPlan(opts)
	if err != nil {
		return nil, err
	}

	if !platform.IsSymlinkSupported() {
		slog.Warn("native symlinks are unavailable; linked outputs are written as copies")
	}

	result := newGenerationResult(opts.Root)
	err = walkManaged(ctx, opts, func(dir string) error {
		if err := p.generateDir(dir, result); err != nil {
			return fmt.Errorf("generating in %s: %w", relDir(opts.Root, dir), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.Gitignore {
		if err := gitignore.Update(opts.Root, p.gitignorePatterns(opts.NestedDepth)); err != nil {
			return nil, err
		}
		result.GitignoreUpdated = true
	} else if err := gitignore.Remove(opts.Root); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *plan) generateDir(dir string, result *GenerationResult) error {
	slog.Debug("generating", "dir", dir)

	symlinkMode := rule.IsSymlinkMode(dir)
	var rules []*rule.Rule
	if !symlinkMode {
		var err error
		if rules, err = rule.ReadDir(dir); err != nil {
			return err
		}
	}
	servers, _, err := mcp.ReadSource(dir)
	if err != nil {
		return err
	}

	if err := cleanDir(dir, p.agents, p.statusAgents()); err != nil {
		return err
	}

	if symlinkMode {
		for _, a := range p.agents {
			paths, err := a.GenerateSymlink(dir)
			if err != nil {
				return fmt.Errorf("linking %s: %w", a.Name, err)
			}
			result.add(a.Name, paths...)
		}
	} else if len(rules) > 0 {
		if err := body.Write(body.Expected(dir, rules, agents.OptionalIndexes(p.agents, rules))); err != nil {
			return fmt.Errorf("writing rule bodies: %w", err)
		}
		for _, a := range p.agents {
			paths, err := a.Generate(dir, rules)
			if err != nil {
				return err
			}
			result.add(a.Name, paths...)
		}
	}

	for _, a := range p.agents {
		if a.MCP == nil {
			continue
		}
		paths, err := a.MCP.Generate(dir, servers)
		if err != nil {
			return fmt.Errorf("writing %s MCP config: %w", a.Name, err)
		}
		result.add(a.Name, paths...)
	}

	for _, a := range p.commandAgents {
		if a.Commands == nil {
			continue
		}
		paths, err := a.Commands.Generate(dir)
		if err != nil {
			return fmt.Errorf("writing %s commands: %w", a.Name, err)
		}
		result.add(a.Name, paths...)
	}

	for _, a := range p.agents {
		if a.Skills == nil {
			continue
		}
		paths, err := a.Skills.Generate(dir)
		if err != nil {
			return fmt.Errorf("linking %s skills: %w", a.Name, err)
		}
		result.add(a.Name, paths...)
	}
	return nil
}

// relDir renders dir relative to root for messages, "." for the root.
func relDir(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}
