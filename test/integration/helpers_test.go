//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ai-rules-labs/ai-rules/internal/config"
	"github.com/ai-rules-labs/ai-rules/internal/linker"
)

// setupProject creates an isolated project directory and clears any
// AI_RULES_* variables so the host environment cannot leak into the run.
func setupProject(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"AI_RULES_AGENTS", "AI_RULES_COMMAND_AGENTS", "AI_RULES_GITIGNORE",
		"AI_RULES_NO_GITIGNORE", "AI_RULES_NESTED_DEPTH", "AI_RULES_USE_CLAUDE_SKILLS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return t.TempDir()
}

// options loads the project configuration the way the CLI does, without flags.
func options(t *testing.T, root string) linker.Options {
	t.Helper()
	cfg, err := config.Load(root, nil)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return linker.OptionsFromConfig(root, cfg)
}

func generate(t *testing.T, root string) *linker.GenerationResult {
	t.Helper()
	result, err := linker.Generate(context.Background(), options(t, root))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return result
}

func status(t *testing.T, root string) *linker.ProjectStatus {
	t.Helper()
	st, err := linker.Status(context.Background(), options(t, root))
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	return st
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func assertFileExists(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("expected %s to exist: %v", rel, err)
	}
}

func assertFileNotExists(t *testing.T, root, rel string) {
	t.Helper()
	if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
		t.Errorf("expected %s to not exist", rel)
	}
}

func assertFileContains(t *testing.T, root, rel, substr string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q:\n%s", rel, substr, data)
	}
}
