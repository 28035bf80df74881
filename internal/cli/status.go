package cli

import (
	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/linker"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

// Exit codes of the status command.
const (
	exitOutOfSync = 1
	exitNoRules   = 2
)

func init() {
	addAgentFlags(statusCmd)
	addDepthFlag(statusCmd)
	addSkillsFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether generated files are in sync",
	Long: `Check, without writing anything, whether every agent's generated files
match the rules in ai-rules/.

Exits with status 1 when anything is out of sync and 2 when the project has
no rules.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		p.Header("AI Rules status for agents: %s, nested_depth: %d", describeAgents(cfg.Agents), cfg.NestedDepth)

		status, err := linker.Status(cmd.Context(), linker.OptionsFromConfig(root, cfg))
		if err != nil {
			return err
		}
		return reportStatus(p, status)
	},
}

func reportStatus(p *ui.Printer, status *linker.ProjectStatus) error {
	if !status.HasRules {
		p.Skip("No AI rules found in this project")
		p.Println("\nRun '%s init' to get started", branding.CLIName())
		return &exitError{code: exitNoRules}
	}

	if status.BodyFilesOutOfSync {
		p.Warn("Generated rule bodies are out of sync")
	}
	for _, agent := range platform.SortedKeys(status.AgentStatuses) {
		if status.AgentStatuses[agent] {
			p.OK("%s: in sync", agent)
		} else {
			p.Fail("%s: out of sync", agent)
		}
	}

	if !status.InSync() {
		p.Println("\nNext steps:")
		p.Println("    %s generate --help    # See examples and options to generate sync files", branding.CLIName())
		return &exitError{code: exitOutOfSync}
	}
	return nil
}
