package cli

import (
	"fmt"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/ai-rules-labs/ai-rules/internal/compose"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
	"github.com/spf13/cobra"
)

var printAgent string

func init() {
	printCmd.Flags().StringVar(&printAgent, "agent", agents.Claude, "Agent whose view of the rules to print")
	rootCmd.AddCommand(printCmd)
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the rules an agent sees as one document",
	Long: `Print the required rules visible to an agent inlined into one document,
followed by the optional-rules index. Nothing is written to disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}

		resolved, err := agents.NewRegistry(agents.Options{}).Resolve([]string{printAgent})
		if err != nil {
			return err
		}
		agent := resolved[0]

		rules, err := rule.ReadDir(root)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), compose.InlineWithOptional(agent.Rules(rules)))
		return nil
	},
}
