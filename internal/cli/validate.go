package cli

import (
	"errors"

	"github.com/ai-rules-labs/ai-rules/internal/linker"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	addDepthFlag(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check rule files and the MCP source without generating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		report, err := linker.Validate(cmd.Context(), linker.OptionsFromConfig(root, cfg))
		if err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		p.Header("Validated %d directories: %d rules, %d MCP sources, %d commands, %d skills",
			report.Dirs, report.Rules, report.MCP, report.Commands, report.Skills)
		for _, problem := range report.Problems {
			var invalid *mcp.ValidationError
			if errors.As(problem.Err, &invalid) {
				p.Fail("%s", relPath(root, problem.Path))
				for _, issue := range invalid.Issues {
					p.Println("         %s: %s", issue.Path, issue.Message)
				}
				continue
			}
			p.Fail("%v", problem.Err)
		}

		if !report.OK() {
			return &exitError{code: 1}
		}
		p.OK("All sources are valid")
		return nil
	},
}
