package agents

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/commands"
	"github.com/ai-rules-labs/ai-rules/internal/jsonmerge"
	"github.com/ai-rules-labs/ai-rules/internal/mcp"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// OverlayFile is deep-merged over the generated Firebender config.
const OverlayFile = "firebender-overlay.json"

// FirebenderConfig renders firebender.json for the visible rules. Required
// rules are always loaded; optional rules with file patterns load on a
// match; every optional rule is listed in the optional index.
func FirebenderConfig(projectDir string, rules []*rule.Rule) (string, error) {
	entries := []any{}
	for _, r := range rules {
		switch {
		case r.AlwaysApply:
			entries = append(entries, map[string]any{"rulesPaths": r.BodyPath()})
		case len(r.FileMatching) > 0:
			entries = append(entries, map[string]any{
				"filePathMatches": stringsToAny(r.FileMatching),
				"rulesPaths":      r.BodyPath(),
			})
		}
	}
	if rule.HasOptional(rules) {
		entries = append(entries, map[string]any{"rulesPaths": body.OptionalPath(Firebender)})
	}

	config := map[string]any{
		"rules":          entries,
		"useCursorRules": false,
	}

	cmds, err := commands.Find(projectDir)
	if err != nil {
		return "", err
	}
	if len(cmds) > 0 {
		list := make([]any, 0, len(cmds))
		for _, c := range cmds {
			list = append(list, map[string]any{"name": c.Name, "path": c.RelPath})
		}
		config["commands"] = list
	}

	return finalizeFirebender(projectDir, config)
}

// FirebenderSymlinkConfig renders firebender.json for pass-through mode.
func FirebenderSymlinkConfig(projectDir string) (string, error) {
	config := map[string]any{
		"rules": []any{
			map[string]any{"rulesPaths": path.Join(rule.SourceDir, rule.AgentsFile)},
		},
		"useCursorRules": false,
	}
	return finalizeFirebender(projectDir, config)
}

// finalizeFirebender embeds the MCP servers and applies the overlay.
func finalizeFirebender(projectDir string, config map[string]any) (string, error) {
	servers, found, err := mcp.ReadSource(projectDir)
	if err != nil {
		return "", err
	}
	if found {
		config[mcp.ServersKey] = map[string]any(servers)
	}

	var merged any = config
	overlayPath := filepath.Join(rule.Dir(projectDir), OverlayFile)
	content, ok, err := platform.ReadFileIfExists(overlayPath)
	if err != nil {
		return "", err
	}
	if ok {
		overlay, err := jsonmerge.Decode([]byte(content))
		if err != nil {
			return "", fmt.Errorf("invalid JSON in overlay file %s: %w", overlayPath, err)
		}
		merged = jsonmerge.Merge(config, overlay)
	}

	out, err := jsonmerge.Encode(merged)
	if err != nil {
		return "", fmt.Errorf("encoding firebender.json: %w", err)
	}
	return out, nil
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
