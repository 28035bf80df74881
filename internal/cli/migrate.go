package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/linker"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

var (
	migrateDryRun bool
	migrateYes    bool
)

func init() {
	addDepthFlag(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show what would change without touching any file")
	migrateCmd.Flags().BoolVarP(&migrateYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert ai-rules/ projects to a plain AGENTS.md layout",
	Long: `Convert every ai-rules/ directory to the AGENTS.md standard and stop
using ` + branding.CLIName() + `.

For each directory the rules are inlined into a root AGENTS.md, skills,
commands and other folders move under .agents/, mcp.json moves to .mcp.json,
generated files are cleaned and ai-rules/ is removed. This cannot be undone.`,
	Example: `  ` + branding.CLIName() + ` migrate --dry-run
  ` + branding.CLIName() + ` migrate --nested-depth 2 --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := linker.OptionsFromConfig(root, cfg)
		dirs, err := linker.MigrationTargets(cmd.Context(), opts)
		if err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		if len(dirs) == 0 {
			p.Skip("No ai-rules/ directories found to migrate")
			return nil
		}

		if migrateDryRun {
			p.Header("Dry run: would migrate %d project(s) to the AGENTS.md standard", len(dirs))
		} else {
			p.Header("Migrating %d project(s) to the AGENTS.md standard", len(dirs))
		}
		for _, dir := range dirs {
			p.Println("    %s", relPath(root, dir))
		}

		if !migrateDryRun && !migrateYes {
			p.Println("\nai-rules/ directories will be removed. This cannot be undone.")
			if !confirm(cmd, "? Proceed with migration? (y/N) ") {
				p.Skip("Migration cancelled")
				return nil
			}
		}

		for _, dir := range dirs {
			result, err := linker.Migrate(dir, migrateDryRun)
			if err != nil {
				return err
			}
			p.OK("%s: %s", relPath(root, result.Dir), strings.Join(result.Actions, ", "))
		}
		return nil
	},
}

// confirm asks a yes/no question on the command's input. Anything but an
// explicit yes declines.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes"
}
