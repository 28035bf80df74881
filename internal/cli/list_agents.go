package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ai-rules-labs/ai-rules/internal/agents"
	"github.com/spf13/cobra"
)

var listAgentsSkills bool

func init() {
	listAgentsCmd.Flags().BoolVar(&listAgentsSkills, "claude-skills", false, "Show the table as generated in Claude skills mode")
	rootCmd.AddCommand(listAgentsCmd)
}

var listAgentsCmd = &cobra.Command{
	Use:   "list-agents",
	Short: "List all supported coding agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := agents.NewRegistry(agents.Options{ClaudeSkills: listAgentsSkills})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "AGENT\tKIND\tOUTPUT\tEXTRAS")
		for _, a := range registry.All() {
			extras := strings.Join(a.Capabilities(), ", ")
			if extras == "" {
				extras = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Name, a.Kind, a.Output, extras)
		}
		return w.Flush()
	},
}
