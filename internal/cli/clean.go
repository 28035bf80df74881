package cli

import (
	"github.com/ai-rules-labs/ai-rules/internal/linker"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	addDepthFlag(cleanCmd)
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every generated file",
	Long: `Remove the files generated for all agents, including outputs left by older
versions. Rules in ai-rules/ and files you wrote yourself are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		p.Header("Cleaning files for all agents, nested_depth: %d", cfg.NestedDepth)

		opts := linker.OptionsFromConfig(root, cfg)
		if err := linker.Clean(cmd.Context(), opts); err != nil {
			return err
		}
		p.OK("Removed generated files")
		return nil
	},
}
