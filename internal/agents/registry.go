package agents

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ai-rules-labs/ai-rules/internal/commands"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
	"github.com/ai-rules-labs/ai-rules/internal/skills"
)

// Supported agent names.
const (
	Amp        = "amp"
	Claude     = "claude"
	Cline      = "cline"
	Codex      = "codex"
	Copilot    = "copilot"
	Cursor     = "cursor"
	Firebender = "firebender"
	Gemini     = "gemini"
	Goose      = "goose"
	JetBrains  = "jetbrains"
	Kilocode   = "kilocode"
	Roo        = "roo"
)

// GroupAgentsMD names the agents that all read the shared AGENTS.md.
const GroupAgentsMD = "agents-md"

var agentsMDMembers = []string{Amp, Cline, Codex, Copilot, Goose, Kilocode, Roo}

// aliases maps alternate spellings accepted in configuration.
var aliases = map[string]string{
	"jetbrains-ai-assistant": JetBrains,
}

// Kind selects how an agent's rule output is rendered.
type Kind int

const (
	// SingleFile agents read one reference document.
	SingleFile Kind = iota
	// ClaudeFile is a single document that inlines required rules and moves
	// optional rules into skills when skills mode is on.
	ClaudeFile
	// CursorRules agents read one .mdc file per rule.
	CursorRules
	// MarkdownRules agents read one body file per rule from a directory.
	MarkdownRules
	// FirebenderJSON agents read a generated JSON config.
	FirebenderJSON
)

func (k Kind) String() string {
	switch k {
	case SingleFile:
		return "single-file"
	case ClaudeFile:
		return "claude"
	case CursorRules:
		return "cursor-rules"
	case MarkdownRules:
		return "markdown-rules"
	case FirebenderJSON:
		return "firebender-json"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Agent is one entry of the agent table.
type Agent struct {
	Name string
	Kind Kind
	// Output is the project-relative output file, or rules directory for
	// the directory kinds.
	Output string
	// Group is set for agents sharing AGENTS.md.
	Group string
	// SkillsMode turns optional rules into skills (Claude only).
	SkillsMode bool

	MCP            *mcp.Target
	Commands       commands.Generator
	Skills         *skills.External
	OptionalSkills *skills.OptionalRules
}

// Options configures the table.
type Options struct {
	ClaudeSkills bool
}

// Registry is the immutable agent table for one invocation.
type Registry struct {
	agents map[string]*Agent
}

// NewRegistry builds the agent table.
func NewRegistry(opts Options) *Registry {
	list := []*Agent{
		{
			Name: Amp, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD,
			Commands: commands.Copies{Dir: ".agents/commands"},
			Skills:   &skills.External{Dir: ".agents/skills"},
		},
		{
			Name: Claude, Kind: ClaudeFile, Output: "CLAUDE.md", SkillsMode: opts.ClaudeSkills,
			MCP:            &mcp.Target{Path: ".mcp.json"},
			Commands:       commands.Symlinks{Dir: ".claude/commands"},
			Skills:         &skills.External{Dir: ".claude/skills"},
			OptionalSkills: &skills.OptionalRules{Dir: ".claude/skills"},
		},
		{Name: Cline, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD},
		{
			Name: Codex, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD,
			Skills: &skills.External{Dir: ".codex/skills"},
		},
		{Name: Copilot, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD},
		{
			Name: Cursor, Kind: CursorRules, Output: ".cursor/rules",
			MCP:      &mcp.Target{Path: ".cursor/mcp.json"},
			Commands: commands.Symlinks{Dir: ".cursor/commands"},
			Skills:   &skills.External{Dir: ".cursor/skills"},
		},
		{
			Name: Firebender, Kind: FirebenderJSON, Output: "firebender.json",
			Skills: &skills.External{Dir: ".firebender/skills"},
		},
		{
			Name: Gemini, Kind: SingleFile, Output: "GEMINI.md",
			MCP: &mcp.Target{Path: ".gemini/settings.json", Transform: mcp.GeminiTransform, KeepFile: true},
		},
		{Name: Goose, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD},
		{Name: JetBrains, Kind: MarkdownRules, Output: ".aiassistant/rules"},
		{Name: Kilocode, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD},
		{
			Name: Roo, Kind: SingleFile, Output: rule.AgentsFile, Group: GroupAgentsMD,
			MCP: &mcp.Target{Path: ".roo/mcp.json"},
		},
	}

	r := &Registry{agents: make(map[string]*Agent, len(list))}
	for _, a := range list {
		r.agents[a.Name] = a
	}
	return r
}

// Get returns the named agent.
func (r *Registry) Get(name string) (*Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Names returns every agent name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every agent, sorted by name.
func (r *Registry) All() []*Agent {
	out := make([]*Agent, 0, len(r.agents))
	for _, name := range r.Names() {
		out = append(out, r.agents[name])
	}
	return out
}

// Resolve maps configured names to agents, sorted and without duplicates.
// No names selects every agent. Unknown names are an error listing the
// valid ones.
func (r *Registry) Resolve(names []string) ([]*Agent, error) {
	if len(names) == 0 {
		return r.All(), nil
	}

	seen := map[string]bool{}
	var unknown []string
	for _, raw := range names {
		name, ok := ParseName(raw)
		if !ok {
			unknown = append(unknown, strings.TrimSpace(raw))
			continue
		}
		seen[name] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown agent(s): %s (valid: %s)", strings.Join(unknown, ", "), strings.Join(r.Names(), ", "))
	}

	out := make([]*Agent, 0, len(seen))
	for _, name := range r.Names() {
		if seen[name] {
			out = append(out, r.agents[name])
		}
	}
	return out, nil
}

// ParseName normalizes a configured agent name, returning false if it is
// not a supported agent.
func ParseName(s string) (string, bool) {
	name := cases.Fold().String(strings.TrimSpace(s))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	switch name {
	case Amp, Claude, Cline, Codex, Copilot, Cursor, Firebender, Gemini, Goose, JetBrains, Kilocode, Roo:
		return name, true
	default:
		return "", false
	}
}

// GroupMembers returns the agents sharing a group's output.
func GroupMembers(group string) []string {
	if group == GroupAgentsMD {
		return agentsMDMembers
	}
	return nil
}

// Names returns the names of agents.
func Names(agents []*Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

// Capabilities lists what an agent receives besides its rules.
func (a *Agent) Capabilities() []string {
	var caps []string
	if a.MCP != nil || a.Kind == FirebenderJSON {
		caps = append(caps, "mcp")
	}
	if a.Commands != nil || a.Kind == FirebenderJSON {
		caps = append(caps, "commands")
	}
	if a.Skills != nil {
		caps = append(caps, "skills")
	}
	if a.SkillsMode {
		caps = append(caps, "optional-rule-skills")
	}
	return caps
}
