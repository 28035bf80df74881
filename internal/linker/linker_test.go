package linker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
)

const testRule = `---
description: Test rule
alwaysApply: true
fileMatching: "**/*.ts"
---
Test rule content`

const optionalRule = `---
description: Optional rule
alwaysApply: false
---
Optional content`

func createFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContent(t *testing.T, root, rel, want string) {
	t.Helper()
	if got := readFile(t, root, rel); got != want {
		t.Errorf("%s = %q, want %q", rel, got, want)
	}
}

func assertExists(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("%s should exist: %v", rel, err)
	}
}

func assertMissing(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Errorf("%s should not exist", rel)
	}
}

func requireSymlinks(t *testing.T) {
	t.Helper()
	if !platform.IsSymlinkSupported() {
		t.Skip("native symlinks required")
	}
}

func mustGenerate(t *testing.T, opts Options) *GenerationResult {
	t.Helper()
	result, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return result
}

func mustStatus(t *testing.T, opts Options) *ProjectStatus {
	t.Helper()
	status, err := Status(context.Background(), opts)
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	return status
}

func TestGenerate_EmptyProject(t *testing.T) {
	root := t.TempDir()

	result := mustGenerate(t, Options{Root: root, Gitignore: true})
	if result.Count() != 0 {
		t.Errorf("Count() = %d, want 0", result.Count())
	}

	assertExists(t, root, ".gitignore")
	assertMissing(t, root, "CLAUDE.md")
	assertMissing(t, root, "AGENTS.md")
	assertMissing(t, root, ".cursor/rules")
}

func TestGenerate_AllAgents(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)

	result := mustGenerate(t, Options{Root: root, Gitignore: true})

	assertContent(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-test.md", "Test rule content\n")
	assertContent(t, root, "CLAUDE.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-test.md\n")
	assertContent(t, root, "AGENTS.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-test.md\n")
	assertContent(t, root, "GEMINI.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-test.md\n")
	assertContent(t, root, ".cursor/rules/ai-rules-generated-test.mdc", `---
description: Test rule
globs: **/*.ts
alwaysApply: true
---

Test rule content
`)
	assertContent(t, root, ".aiassistant/rules/ai-rules-generated-test.md", "Test rule content\n")
	assertExists(t, root, "firebender.json")

	gi := readFile(t, root, ".gitignore")
	for _, want := range []string{"# AI Rules - Generated Files", "/CLAUDE.md", "/AGENTS.md", "/ai-rules/.generated-ai-rules", "!**/ai-rules/AGENTS.md"} {
		if !strings.Contains(gi, want) {
			t.Errorf(".gitignore missing %q:\n%s", want, gi)
		}
	}

	if got := result.RelPaths("claude"); len(got) != 1 || got[0] != "CLAUDE.md" {
		t.Errorf("RelPaths(claude) = %v, want [CLAUDE.md]", got)
	}
	if got := result.RelPaths("cursor"); len(got) != 1 || got[0] != ".cursor/rules/ai-rules-generated-test.mdc" {
		t.Errorf("RelPaths(cursor) = %v", got)
	}
	if !result.GitignoreUpdated {
		t.Error("GitignoreUpdated should be set")
	}
}

func TestGenerate_OptionalRules(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/a.md", testRule)
	createFile(t, root, "ai-rules/b.md", optionalRule)

	mustGenerate(t, Options{Root: root, Agents: []string{"claude"}})

	assertContent(t, root, "CLAUDE.md",
		"@ai-rules/.generated-ai-rules/ai-rules-generated-a.md\n\n@ai-rules/.generated-ai-rules/ai-rules-generated-optional-claude.md\n")
	assertContent(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-optional-claude.md",
		"# Optional Rules (use when relevant):\n\nOptional rule: ai-rules/.generated-ai-rules/ai-rules-generated-b.md\n\n")
	assertMissing(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-optional-agents-md.md")
}

func TestGenerate_DeletedRuleIsRemoved(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/a.md", testRule)
	createFile(t, root, "ai-rules/b.md", optionalRule)
	opts := Options{Root: root, Agents: []string{"claude", "codex", "cursor"}}

	mustGenerate(t, opts)
	bodyA := readFile(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-a.md")
	cursorA := readFile(t, root, ".cursor/rules/ai-rules-generated-a.mdc")
	assertExists(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-b.md")

	if err := os.Remove(filepath.Join(root, "ai-rules", "b.md")); err != nil {
		t.Fatal(err)
	}
	mustGenerate(t, opts)

	for _, rel := range []string{
		"ai-rules/.generated-ai-rules/ai-rules-generated-b.md",
		"ai-rules/.generated-ai-rules/ai-rules-generated-optional-claude.md",
		"ai-rules/.generated-ai-rules/ai-rules-generated-optional-agents-md.md",
		".cursor/rules/ai-rules-generated-b.mdc",
	} {
		assertMissing(t, root, rel)
	}
	assertContent(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-a.md", bodyA)
	assertContent(t, root, ".cursor/rules/ai-rules-generated-a.mdc", cursorA)
	assertContent(t, root, "CLAUDE.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-a.md\n")
	assertContent(t, root, "AGENTS.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-a.md\n")

	if status := mustStatus(t, opts); !status.InSync() {
		t.Errorf("status = %+v, want in sync", status)
	}
}

func TestGenerate_ClaudeSkillsMode(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/a.md", testRule)
	createFile(t, root, "ai-rules/b.md", optionalRule)

	opts := Options{Root: root, Agents: []string{"claude"}, ClaudeSkills: true}
	mustGenerate(t, opts)

	assertContent(t, root, "CLAUDE.md", "# Test rule\n\nTest rule content\n")
	assertContent(t, root, ".claude/skills/ai-rules-generated-b/SKILL.md",
		"---\nname: b\ndescription: Optional rule\n---\n\n@ai-rules/.generated-ai-rules/ai-rules-generated-b.md")

	status := mustStatus(t, opts)
	if !status.InSync() {
		t.Errorf("status after generate out of sync: %+v", status)
	}

	// Leaving skills mode makes the generated skill stale.
	status = mustStatus(t, Options{Root: root, Agents: []string{"claude"}})
	if status.AgentStatuses["claude"] {
		t.Error("claude should be out of sync once skills mode is off")
	}
}

func TestGenerate_SelectedAgents(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)

	result := mustGenerate(t, Options{Root: root, Agents: []string{"claude"}})

	assertExists(t, root, "CLAUDE.md")
	assertMissing(t, root, "AGENTS.md")
	assertMissing(t, root, ".cursor")
	assertMissing(t, root, "firebender.json")
	if got := result.Agents(); len(got) != 1 || got[0] != "claude" {
		t.Errorf("Agents() = %v, want [claude]", got)
	}
}

func TestGenerate_UnknownAgent(t *testing.T) {
	root := t.TempDir()
	_, err := Generate(context.Background(), Options{Root: root, Agents: []string{"vim"}})
	if err == nil || !strings.Contains(err.Error(), "vim") {
		t.Fatalf("Generate() error = %v, want unknown agent error", err)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/a.md", testRule)
	createFile(t, root, "ai-rules/b.md", optionalRule)
	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"fs":{"command":"npx","args":["fs"]}}}`)
	createFile(t, root, "ai-rules/commands/hello.md", "---\ndescription: hi\n---\nSay hello\n")
	createFile(t, root, "ai-rules/skills/lint/SKILL.md", "# Lint\n")

	opts := Options{Root: root, Gitignore: true}
	mustGenerate(t, opts)
	first := snapshot(t, root)
	mustGenerate(t, opts)
	second := snapshot(t, root)

	for path, content := range first {
		if second[path] != content {
			t.Errorf("%s changed between runs", path)
		}
	}
	if len(first) != len(second) {
		t.Errorf("file count changed: %d then %d", len(first), len(second))
	}

	status := mustStatus(t, opts)
	if !status.InSync() {
		t.Errorf("out of sync after generate: %v", status.OutOfSync())
	}
	if !status.HasRules {
		t.Error("HasRules should be set")
	}
}

// snapshot maps every regular file and symlink under root to its content
// or link target.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			files[rel] = "-> " + target
		case info.Mode().IsRegular():
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files[rel] = string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func TestGenerate_MCP(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"docs":{"type":"http","url":"https://example.com/mcp"}}}`)
	createFile(t, root, ".mcp.json", `{"mcpServers":{"mine":{"command":"local"}}}`)

	mustGenerate(t, Options{Root: root, Agents: []string{"claude", "gemini"}})

	claude := readFile(t, root, ".mcp.json")
	if !strings.Contains(claude, `"ai-rules-generated-docs"`) || !strings.Contains(claude, `"mine"`) {
		t.Errorf(".mcp.json = %s", claude)
	}
	gemini := readFile(t, root, ".gemini/settings.json")
	if !strings.Contains(gemini, `"httpUrl": "https://example.com/mcp"`) || strings.Contains(gemini, `"type"`) {
		t.Errorf(".gemini/settings.json = %s", gemini)
	}
}

func TestGenerate_InvalidMCPAborts(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"bad":{"args":["x"]}}}`)

	if _, err := Generate(context.Background(), Options{Root: root}); err == nil {
		t.Fatal("expected error for invalid MCP source")
	}
	assertMissing(t, root, "CLAUDE.md")
}

func TestGenerate_InvalidRuleKeepsOutputs(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	mustGenerate(t, Options{Root: root, Agents: []string{"claude"}})

	createFile(t, root, "ai-rules/broken.md", "---\ndescription: x\n---\nbody")
	if _, err := Generate(context.Background(), Options{Root: root, Agents: []string{"claude"}}); err == nil {
		t.Fatal("expected parse error")
	}
	assertExists(t, root, "CLAUDE.md")
}

func TestGenerate_CommandAgents(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, "ai-rules/commands/hello.md", "---\ndescription: hi\n---\nSay hello\n")

	mustGenerate(t, Options{Root: root, Agents: []string{"claude", "amp"}})
	assertExists(t, root, ".claude/commands/ai-rules/hello.md")
	assertContent(t, root, ".agents/commands/ai-rules-generated-hello.md", "Say hello\n")

	opts := Options{Root: root, Agents: []string{"claude", "amp"}, CommandAgents: []string{}}
	mustGenerate(t, opts)
	assertMissing(t, root, ".claude/commands/ai-rules")
	assertMissing(t, root, ".agents/commands")

	if !mustStatus(t, opts).InSync() {
		t.Error("status should be in sync without command agents")
	}
}

func TestGenerate_SymlinkMode(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/AGENTS.md", "# Plain instructions\n")

	opts := Options{Root: root, Agents: []string{"claude", "codex", "cursor"}}
	mustGenerate(t, opts)

	for _, rel := range []string{"CLAUDE.md", "AGENTS.md"} {
		target, err := os.Readlink(filepath.Join(root, rel))
		if err != nil {
			t.Fatalf("%s should be a symlink: %v", rel, err)
		}
		if target != "ai-rules/AGENTS.md" {
			t.Errorf("%s -> %q, want %q", rel, target, "ai-rules/AGENTS.md")
		}
	}
	assertMissing(t, root, "ai-rules/.generated-ai-rules")

	status := mustStatus(t, opts)
	if !status.InSync() || !status.HasRules {
		t.Errorf("status = %+v, want in sync with rules", status)
	}
}

func TestGenerate_SymlinkModeSwitch(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/AGENTS.md", "# Plain instructions\n")
	opts := Options{Root: root, Agents: []string{"claude", "codex", "cursor"}}

	mustGenerate(t, opts)
	for _, rel := range []string{"CLAUDE.md", "AGENTS.md"} {
		if !platform.IsSymlink(filepath.Join(root, rel)) {
			t.Fatalf("%s should be a symlink in symlink mode", rel)
		}
	}

	// A second rule leaves symlink mode: every output becomes a regular file.
	createFile(t, root, "ai-rules/style.md", testRule)
	mustGenerate(t, opts)
	for _, rel := range []string{"CLAUDE.md", "AGENTS.md"} {
		if platform.IsSymlink(filepath.Join(root, rel)) {
			t.Errorf("%s should be a regular file in standard mode", rel)
		}
		assertExists(t, root, rel)
	}
	assertExists(t, root, ".cursor/rules/ai-rules-generated-style.mdc")
	if status := mustStatus(t, opts); !status.InSync() {
		t.Errorf("standard mode status = %+v, want in sync", status)
	}

	// Removing it switches back and drops the generated outputs.
	if err := os.Remove(filepath.Join(root, "ai-rules", "style.md")); err != nil {
		t.Fatal(err)
	}
	mustGenerate(t, opts)
	for _, rel := range []string{"CLAUDE.md", "AGENTS.md"} {
		if !platform.IsSymlink(filepath.Join(root, rel)) {
			t.Errorf("%s should be a symlink again", rel)
		}
	}
	assertMissing(t, root, "ai-rules/.generated-ai-rules")
	assertMissing(t, root, ".cursor/rules")
	if status := mustStatus(t, opts); !status.InSync() {
		t.Errorf("symlink mode status = %+v, want in sync", status)
	}
}

func TestGenerate_Nested(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/root.md", testRule)
	createFile(t, root, "pkg/api/ai-rules/api.md", testRule)
	createFile(t, root, "node_modules/dep/ai-rules/dep.md", testRule)

	opts := Options{Root: root, Agents: []string{"claude"}, NestedDepth: 2, Gitignore: true}
	mustGenerate(t, opts)

	assertContent(t, root, "pkg/api/CLAUDE.md", "@ai-rules/.generated-ai-rules/ai-rules-generated-api.md\n")
	assertExists(t, root, "CLAUDE.md")
	assertMissing(t, root, "node_modules/dep/CLAUDE.md")
	if gi := readFile(t, root, ".gitignore"); !strings.Contains(gi, "**/CLAUDE.md") {
		t.Errorf(".gitignore should use nested patterns:\n%s", gi)
	}

	shallow := Options{Root: root, Agents: []string{"claude"}, NestedDepth: 1}
	if !mustStatus(t, shallow).InSync() {
		t.Error("depth 1 never reaches pkg/api and should be in sync")
	}
}

func TestGenerate_GitignoreRemoved(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, ".gitignore", "node_modules/\n")

	mustGenerate(t, Options{Root: root, Agents: []string{"claude"}, Gitignore: true})
	if !strings.Contains(readFile(t, root, ".gitignore"), "# End AI Rules") {
		t.Fatal("section not written")
	}

	mustGenerate(t, Options{Root: root, Agents: []string{"claude"}})
	assertContent(t, root, ".gitignore", "node_modules/\n")
}

func TestStatus_NoRules(t *testing.T) {
	root := t.TempDir()

	status := mustStatus(t, Options{Root: root})
	if status.HasRules {
		t.Error("HasRules should be false")
	}
	if !status.InSync() {
		t.Errorf("empty project should be in sync: %v", status.OutOfSync())
	}
	if len(status.AgentStatuses) != 12 {
		t.Errorf("AgentStatuses has %d agents, want 12", len(status.AgentStatuses))
	}
}

func TestStatus_NotGenerated(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)

	status := mustStatus(t, Options{Root: root, Agents: []string{"claude"}})
	if !status.BodyFilesOutOfSync {
		t.Error("BodyFilesOutOfSync should be set before the first generate")
	}
	if status.AgentStatuses["claude"] {
		t.Error("claude should be out of sync")
	}
}

func TestStatus_AgentDrift(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	opts := Options{Root: root, Agents: []string{"claude", "gemini"}}
	mustGenerate(t, opts)

	createFile(t, root, "CLAUDE.md", "edited by hand\n")

	status := mustStatus(t, opts)
	if status.BodyFilesOutOfSync {
		t.Error("bodies are untouched")
	}
	if status.AgentStatuses["claude"] {
		t.Error("claude should be out of sync")
	}
	if !status.AgentStatuses["gemini"] {
		t.Error("gemini should be in sync")
	}
	if got := status.OutOfSync(); len(got) != 1 || got[0] != "claude" {
		t.Errorf("OutOfSync() = %v, want [claude]", got)
	}
}

func TestStatus_BodyDrift(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	opts := Options{Root: root, Agents: []string{"claude", "gemini"}}
	mustGenerate(t, opts)

	createFile(t, root, "ai-rules/.generated-ai-rules/ai-rules-generated-test.md", "changed\n")

	status := mustStatus(t, opts)
	if !status.BodyFilesOutOfSync {
		t.Fatal("BodyFilesOutOfSync should be set")
	}
	for name, ok := range status.AgentStatuses {
		if ok {
			t.Errorf("%s should be marked out of sync", name)
		}
	}
}

func TestStatus_MCPDrift(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"fs":{"command":"npx"}}}`)
	opts := Options{Root: root, Agents: []string{"claude"}}
	mustGenerate(t, opts)

	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"fs":{"command":"node"}}}`)
	if mustStatus(t, opts).AgentStatuses["claude"] {
		t.Error("claude should be out of sync after the MCP source changed")
	}
}

func TestStatus_RuleErrorPropagates(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/broken.md", "")

	_, err := Status(context.Background(), Options{Root: root})
	if err == nil || errors.Is(err, ErrBodyFilesOutOfSync) {
		t.Fatalf("Status() error = %v, want parse error", err)
	}
}

func TestClean(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, "ai-rules/commands/hello.md", "Say hello\n")
	createFile(t, root, "src/main.ts", "console.log('test');")
	mustGenerate(t, Options{Root: root})

	createFile(t, root, ".cursor/rules/user-rule.mdc", "mine")
	createFile(t, root, ".goosehints", "legacy")
	createFile(t, root, ".generated-ai-rules/old.md", "legacy")
	createFile(t, root, ".roo/rules/ai-rules-generated-old.md", "legacy")
	createFile(t, root, ".clinerules/ai-rules-generated-old.md", "legacy")
	createFile(t, root, ".clinerules/custom.md", "mine")

	if err := Clean(context.Background(), Options{Root: root}); err != nil {
		t.Fatalf("Clean() error: %v", err)
	}

	for _, rel := range []string{
		"CLAUDE.md", "AGENTS.md", "GEMINI.md", "firebender.json",
		".cursor/rules/ai-rules-generated-test.mdc", ".aiassistant",
		"ai-rules/.generated-ai-rules", ".claude/commands/ai-rules",
		".goosehints", ".generated-ai-rules", ".roo",
		".clinerules/ai-rules-generated-old.md",
	} {
		assertMissing(t, root, rel)
	}
	for _, rel := range []string{
		"ai-rules/test.md", "ai-rules/commands/hello.md", "src/main.ts",
		".cursor/rules/user-rule.mdc", ".clinerules/custom.md",
	} {
		assertExists(t, root, rel)
	}
}

func TestClean_Nested(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)
	createFile(t, root, "sub/ai-rules/test.md", testRule)
	mustGenerate(t, Options{Root: root, Agents: []string{"claude"}, NestedDepth: 1})
	assertExists(t, root, "sub/CLAUDE.md")

	if err := Clean(context.Background(), Options{Root: root, NestedDepth: 1}); err != nil {
		t.Fatalf("Clean() error: %v", err)
	}
	assertMissing(t, root, "CLAUDE.md")
	assertMissing(t, root, "sub/CLAUDE.md")
	assertMissing(t, root, "sub/ai-rules/.generated-ai-rules")
}

func TestGenerate_Canceled(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/test.md", testRule)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, Options{Root: root}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate() error = %v, want context.Canceled", err)
	}
	if platform.Exists(filepath.Join(root, "CLAUDE.md")) {
		t.Error("canceled run should not write outputs")
	}
}

func TestValidate(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "ai-rules/good.md", testRule)
	createFile(t, root, "ai-rules/no-always.md", "---\ndescription: x\n---\nbody")
	createFile(t, root, "ai-rules/unclosed.md", "---\ndescription: x\nalwaysApply: true\n")
	createFile(t, root, "ai-rules/mcp.json", `{"mcpServers":{"bad":{"args":["x"]}}}`)
	createFile(t, root, "ai-rules/skills/lint/SKILL.md", "# Lint\n")

	report, err := Validate(context.Background(), Options{Root: root})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if report.OK() {
		t.Fatal("report should contain problems")
	}
	if report.Rules != 1 {
		t.Errorf("Rules = %d, want 1", report.Rules)
	}
	if len(report.Problems) != 3 {
		t.Errorf("Problems = %d, want 3: %+v", len(report.Problems), report.Problems)
	}
	if report.Skills != 1 {
		t.Errorf("Skills = %d, want 1", report.Skills)
	}
	assertMissing(t, root, "CLAUDE.md")
}
