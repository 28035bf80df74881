package cli

import (
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/config"
	"github.com/spf13/cobra"
)

// The flags below are read through config.Load, which binds them by name.

func addAgentFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("agents", nil, "Comma-separated agents to act on (default: all)")
	cmd.Flags().StringSlice("command-agents", nil, "Comma-separated agents that receive commands (default: --agents)")
}

func addDepthFlag(cmd *cobra.Command) {
	cmd.Flags().Int("nested-depth", 0, "Directory levels below the root to process")
}

func addSkillsFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("claude-skills", false, "Generate optional rules as Claude skills")
}

func addGitignoreFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("gitignore", false, "Add generated file patterns to .gitignore")
	cmd.Flags().Bool("no-gitignore", false, "Remove the generated section from .gitignore")
	_ = cmd.Flags().MarkDeprecated("no-gitignore", "it is the default; set gitignore: false in the config file instead")
	cmd.MarkFlagsMutuallyExclusive("gitignore", "no-gitignore")
}

// loadConfig resolves the configuration for cmd against the project root.
func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	root, err := projectRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(root, cmd.Flags())
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

func describeAgents(names []string) string {
	if len(names) == 0 {
		return "all"
	}
	return strings.Join(names, ",")
}
