package linker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// ErrBodyFilesOutOfSync is returned while checking a directory whose
// generated rule bodies differ from its rules. It marks every agent out of
// sync.
var ErrBodyFilesOutOfSync = errors.New("generated rule bodies are out of sync")

// ProjectStatus is the aggregated sync state of a project.
type ProjectStatus struct {
	BodyFilesOutOfSync bool
	// AgentStatuses maps each checked agent to whether all its artifacts
	// are in sync in every managed directory.
	AgentStatuses map[string]bool
	// HasRules is set when any managed directory holds rules.
	HasRules bool
}

// InSync reports whether bodies and every agent are in sync.
func (s *ProjectStatus) InSync() bool {
	if s.BodyFilesOutOfSync {
		return false
	}
	for _, ok := range s.AgentStatuses {
		if !ok {
			return false
		}
	}
	return true
}

// OutOfSync returns the agents that are out of sync, in name order.
func (s *ProjectStatus) OutOfSync() []string {
	var out []string
	for _, name := range platform.SortedKeys(s.AgentStatuses) {
		if !s.AgentStatuses[name] {
			out = append(out, name)
		}
	}
	return out
}

// Status checks, without writing anything, whether the artifacts on disk
// match what Generate would produce.
func Status(ctx context.Context, opts Options) (*ProjectStatus, error) {
	p, err := newPlan(opts)
	if err != nil {
		return nil, err
	}

	checked := p.statusAgents()
	status := &ProjectStatus{AgentStatuses: make(map[string]bool, len(checked))}
	for _, a := range checked {
		status.AgentStatuses[a.Name] = true
	}

	err = walkManaged(ctx, opts, func(dir string) error {
		return p.checkDir(dir, status)
	})
	switch {
	case errors.Is(err, ErrBodyFilesOutOfSync):
		status.BodyFilesOutOfSync = true
		for name := range status.AgentStatuses {
			status.AgentStatuses[name] = false
		}
	case err != nil:
		return nil, err
	}
	return status, nil
}

func (p *plan) checkDir(dir string, status *ProjectStatus) error {
	symlinkMode := rule.IsSymlinkMode(dir)
	var rules []*rule.Rule
	if symlinkMode {
		status.HasRules = true
	} else {
		var err error
		if rules, err = rule.ReadDir(dir); err != nil {
			return err
		}
		if len(rules) > 0 {
			status.HasRules = true
		}

		expected := map[string]string{}
		if len(rules) > 0 {
			expected = body.Expected(dir, rules, agents.OptionalIndexes(p.agents, rules))
		}
		ok, err := body.Check(dir, expected)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: %w", dir, ErrBodyFilesOutOfSync)
		}
	}

	servers, found, err := mcp.ReadSource(dir)
	if err != nil {
		return err
	}

	mark := func(a *agents.Agent, check func() (bool, error)) error {
		if !status.AgentStatuses[a.Name] {
			return nil
		}
		ok, err := check()
		if err != nil {
			return fmt.Errorf("checking %s: %w", a.Name, err)
		}
		if !ok {
			status.AgentStatuses[a.Name] = false
		}
		return nil
	}

	for _, a := range p.agents {
		err := mark(a, func() (bool, error) {
			if symlinkMode {
				return a.CheckSymlink(dir)
			}
			return a.Check(dir, rules)
		})
		if err != nil {
			return err
		}
	}
	for _, a := range p.agents {
		if a.MCP == nil {
			continue
		}
		if err := mark(a, func() (bool, error) { return a.MCP.Check(dir, servers, found) }); err != nil {
			return err
		}
	}
	for _, a := range p.commandAgents {
		if a.Commands == nil {
			continue
		}
		if err := mark(a, func() (bool, error) { return a.Commands.Check(dir) }); err != nil {
			return err
		}
	}
	for _, a := range p.agents {
		if a.Skills == nil {
			continue
		}
		if err := mark(a, func() (bool, error) { return a.Skills.Check(dir) }); err != nil {
			return err
		}
	}
	return nil
}
