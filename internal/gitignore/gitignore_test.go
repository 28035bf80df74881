package gitignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPatterns(t *testing.T) {
	got := Patterns([]string{"CLAUDE.md", "AGENTS.md", "CLAUDE.md", ".cursor/rules/ai-rules-generated-*.mdc"}, 0)
	want := []string{"/.cursor/rules/ai-rules-generated-*.mdc", "/AGENTS.md", "/CLAUDE.md"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Patterns(depth 0) = %v, want %v", got, want)
	}

	got = Patterns([]string{"AGENTS.md"}, 2)
	if len(got) != 1 || got[0] != "**/AGENTS.md" {
		t.Fatalf("Patterns(depth 2) = %v, want [**/AGENTS.md]", got)
	}
}

func TestUpdate_CreatesFile(t *testing.T) {
	dir := t.TempDir()

	if err := Update(dir, []string{"/AGENTS.md", "/CLAUDE.md"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# AI Rules - Generated Files\n/AGENTS.md\n/CLAUDE.md\n!**/ai-rules/AGENTS.md\n# End AI Rules\n"
	if string(content) != want {
		t.Fatalf(".gitignore = %q, want %q", content, want)
	}
}

func TestUpdate_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules/\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Update(dir, []string{"/AGENTS.md"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	content, _ := os.ReadFile(path)
	want := "node_modules/\n\n# AI Rules - Generated Files\n/AGENTS.md\n!**/ai-rules/AGENTS.md\n# End AI Rules\n"
	if string(content) != want {
		t.Fatalf(".gitignore = %q, want %q", content, want)
	}
}

func TestUpdate_ReplacesSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	initial := "node_modules/\n.env\n\n# AI Rules - Generated Files\n/OLD.md\n!**/ai-rules/AGENTS.md\n# End AI Rules\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Update(dir, []string{"/NEW.md"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "node_modules/\n.env\n\n# AI Rules - Generated Files\n/NEW.md\n!**/ai-rules/AGENTS.md\n# End AI Rules\n"
	if string(content) != want {
		t.Fatalf(".gitignore = %q, want %q", content, want)
	}

	// A second identical update leaves the file untouched.
	if err := Update(dir, []string{"/NEW.md"}); err != nil {
		t.Fatal(err)
	}
	again, _ := os.ReadFile(path)
	if string(again) != want {
		t.Fatalf(".gitignore after second update = %q, want %q", again, want)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	initial := "node_modules/\n\n# AI Rules - Generated Files\n/AGENTS.md\n!**/ai-rules/AGENTS.md\n# End AI Rules\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Remove(dir); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "node_modules/\n" {
		t.Fatalf(".gitignore = %q, want %q", content, "node_modules/\n")
	}
}

func TestRemove_NoFile(t *testing.T) {
	if err := Remove(t.TempDir()); err != nil {
		t.Fatalf("Remove() without .gitignore error = %v", err)
	}
}

func TestRemove_NoSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(path, []byte("bin/"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Remove(dir); err != nil {
		t.Fatal(err)
	}
	content, _ := os.ReadFile(path)
	if string(content) != "bin/" {
		t.Fatalf(".gitignore = %q, want it untouched", content)
	}
}
