package cli

import (
	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/scaffold"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initAgents      []string
	initGitignore   bool
	initNestedDepth int
	initForce       bool
)

func init() {
	initCmd.Flags().StringSliceVar(&initAgents, "agents", nil, "Agents to record in the config file (default: all)")
	initCmd.Flags().BoolVar(&initGitignore, "gitignore", false, "Record gitignore: true in the config file")
	initCmd.Flags().IntVar(&initNestedDepth, "nested-depth", 0, "Record a nested_depth in the config file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing starter files")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ai-rules/ with an example rule and a config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		if _, err := agents.NewRegistry(agents.Options{}).Resolve(initAgents); err != nil {
			return err
		}

		result, err := scaffold.Init(root, scaffold.NewData(initAgents, initGitignore, initNestedDepth), initForce)
		if err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		for _, f := range result.Files {
			p.OK("Created %s", f)
		}
		for _, f := range result.Skipped {
			p.Skip("%s already exists", f)
		}
		for _, w := range result.Warnings {
			p.Warn("%s", w)
		}
		p.Println("\nReview the files in ai-rules/, then run '%s generate'", branding.CLIName())
		return nil
	},
}
