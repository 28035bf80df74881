package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the project configuration file inside the rule directory.
	FileName = "ai-rules-config.yaml"
	fileType = "yaml"
)

// Configuration keys, as written in the config file. The environment
// variable of a key is the upper-cased key behind the branding env prefix.
const (
	KeyAgents          = "agents"
	KeyCommandAgents   = "command_agents"
	KeyGitignore       = "gitignore"
	KeyNoGitignore     = "no_gitignore"
	KeyNestedDepth     = "nested_depth"
	KeyUseClaudeSkills = "use_claude_skills"
	KeyRequiredVersion = "required_version"
)

var keys = []string{
	KeyAgents, KeyCommandAgents, KeyGitignore, KeyNoGitignore,
	KeyNestedDepth, KeyUseClaudeSkills, KeyRequiredVersion,
}

// flagKeys maps command-line flag names to the keys they override.
var flagKeys = map[string]string{
	"agents":         KeyAgents,
	"command-agents": KeyCommandAgents,
	"gitignore":      KeyGitignore,
	"nested-depth":   KeyNestedDepth,
	"claude-skills":  KeyUseClaudeSkills,
}

// Config is the effective configuration of one invocation.
type Config struct {
	// Agents selects the agents to generate for. Empty means every agent.
	Agents []string `yaml:"agents,omitempty"`
	// CommandAgents selects the agents that receive commands. Nil means
	// the same set as Agents.
	CommandAgents   []string `yaml:"command_agents,omitempty"`
	Gitignore       bool     `yaml:"gitignore"`
	NestedDepth     int      `yaml:"nested_depth"`
	UseClaudeSkills bool     `yaml:"use_claude_skills"`
	RequiredVersion string   `yaml:"required_version,omitempty"`

	// File is the configuration file that was read, or "" if none exists.
	File string `yaml:"-"`
}

// FilePath returns the configuration file path of a project directory.
func FilePath(projectDir string) string {
	return filepath.Join(rule.Dir(projectDir), FileName)
}

// Load resolves the configuration of projectDir. Flags that were set on the
// command line win over environment variables, which win over the config
// file, which wins over the defaults. flags may be nil.
func Load(projectDir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyNestedDepth, 0)
	v.SetDefault(KeyUseClaudeSkills, false)

	cfg := &Config{}
	path := FilePath(projectDir)
	if platform.Exists(path) {
		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	for _, key := range keys {
		if err := v.BindEnv(key, branding.EnvVar(key)); err != nil {
			return nil, fmt.Errorf("binding environment for %s: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg.Agents = splitList(v.GetStringSlice(KeyAgents))
	if v.IsSet(KeyCommandAgents) {
		cfg.CommandAgents = splitList(v.GetStringSlice(KeyCommandAgents))
		if cfg.CommandAgents == nil {
			cfg.CommandAgents = []string{}
		}
	}
	cfg.Gitignore = resolveGitignore(v, flags)
	cfg.NestedDepth = v.GetInt(KeyNestedDepth)
	cfg.UseClaudeSkills = v.GetBool(KeyUseClaudeSkills)
	cfg.RequiredVersion = strings.TrimSpace(v.GetString(KeyRequiredVersion))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveGitignore applies, in order: --gitignore, --no-gitignore, the
// gitignore key, the deprecated no_gitignore key, and finally off.
func resolveGitignore(v *viper.Viper, flags *pflag.FlagSet) bool {
	if flags != nil && !flagChanged(flags, "gitignore") && flagChanged(flags, "no-gitignore") {
		off, err := flags.GetBool("no-gitignore")
		if err == nil && off {
			return false
		}
	}
	switch {
	case v.IsSet(KeyGitignore):
		return v.GetBool(KeyGitignore)
	case v.IsSet(KeyNoGitignore):
		return !v.GetBool(KeyNoGitignore)
	default:
		return false
	}
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	f := flags.Lookup(name)
	return f != nil && f.Changed
}

// splitList flattens comma-separated entries, so that both YAML lists and
// "a,b" strings from the environment work.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects unknown agent names and a negative nesting depth.
func (c *Config) Validate() error {
	if c.NestedDepth < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyNestedDepth, c.NestedDepth)
	}
	registry := agents.NewRegistry(agents.Options{})
	if _, err := registry.Resolve(c.Agents); err != nil {
		return fmt.Errorf("%s: %w", KeyAgents, err)
	}
	if _, err := registry.Resolve(c.CommandAgents); err != nil {
		return fmt.Errorf("%s: %w", KeyCommandAgents, err)
	}
	return nil
}
