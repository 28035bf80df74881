package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	addAgentFlags(configCmd)
	addDepthFlag(configCmd)
	addSkillsFlag(configCmd)
	addGitignoreFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective project configuration",
	Long: `Print the configuration generate would use, after applying
ai-rules/ai-rules-config.yaml, AI_RULES_* environment variables and flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.File != "" {
			fmt.Fprintf(out, "# file: %s\n", relPath(root, cfg.File))
		} else {
			fmt.Fprintln(out, "# file: none (defaults)")
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}
