package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/linker"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	addAgentFlags(generateCmd)
	addDepthFlag(generateCmd)
	addSkillsFlag(generateCmd)
	addGitignoreFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate agent files from ai-rules/",
	Long: `Generate every configured agent's files from the rules in ai-rules/.

Previously generated files are removed first, so the output always reflects
the current rules. Files you wrote yourself are never touched.`,
	Example: `  ` + branding.CLIName() + ` generate
  ` + branding.CLIName() + ` generate --agents claude,cursor
  ` + branding.CLIName() + ` generate --nested-depth 2 --gitignore`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.CheckVersion(buildVersion); err != nil {
			return err
		}

		p := ui.New(cmd.OutOrStdout())
		p.Header("Generating rules for agents: %s, nested_depth: %d, gitignore: %t",
			describeAgents(cfg.Agents), cfg.NestedDepth, cfg.Gitignore)

		result, err := linker.Generate(cmd.Context(), linker.OptionsFromConfig(root, cfg))
		if err != nil {
			return err
		}

		printGeneration(p, result)
		if result.GitignoreUpdated {
			p.OK("Updated .gitignore with generated file patterns")
		}
		return nil
	},
}

func printGeneration(p *ui.Printer, result *linker.GenerationResult) {
	agents := result.Agents()
	if len(agents) == 0 {
		p.Skip("No files generated")
		return
	}

	fmt.Fprintln(p.Writer())
	for _, agent := range agents {
		var entries []ui.Entry
		for _, rel := range result.RelPaths(agent) {
			entries = append(entries, treeEntry(result.Root, rel))
		}
		p.Tree(agent, entries)
	}
	p.OK("Generated %d files", result.Count())
}

func treeEntry(root, rel string) ui.Entry {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if !platform.IsSymlink(full) {
		return ui.Entry{Path: rel}
	}
	target, err := os.Readlink(full)
	if err != nil {
		return ui.Entry{Path: rel, Target: "(broken symlink)"}
	}
	return ui.Entry{Path: rel, Target: filepath.ToSlash(target)}
}
