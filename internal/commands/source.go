package commands

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// SourceDir is the command directory inside the rule directory.
const SourceDir = "commands"

// Command is one command document under ai-rules/commands.
type Command struct {
	// Name is the file stem; agents invoke the command by it.
	Name string
	// RelPath is the project-relative, slash-separated source path.
	RelPath string
	// Path is the absolute source path.
	Path string
}

// Dir returns the command source directory of a project directory.
func Dir(projectDir string) string {
	return filepath.Join(rule.Dir(projectDir), SourceDir)
}

// Find lists the command documents of a project directory in name order.
func Find(projectDir string) ([]Command, error) {
	files, err := platform.FindFilesByExtension(Dir(projectDir), rule.Extension)
	if err != nil {
		return nil, err
	}

	cmds := make([]Command, 0, len(files))
	for _, file := range files {
		base := filepath.Base(file)
		cmds = append(cmds, Command{
			Name:    strings.TrimSuffix(base, filepath.Ext(base)),
			RelPath: path.Join(rule.SourceDir, SourceDir, base),
			Path:    file,
		})
	}
	return cmds, nil
}

// Body returns the command content without its frontmatter block. Content
// without frontmatter, or with an unterminated block, is returned unchanged.
func (c Command) Body() (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", err
	}
	return StripFrontmatter(string(data)), nil
}

// StripFrontmatter drops a leading "---" delimited block and the whitespace
// that follows it.
func StripFrontmatter(content string) string {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "---") {
		return content
	}
	parts := strings.SplitN(trimmed, "---", 3)
	if len(parts) < 3 {
		return content
	}
	return strings.TrimLeftFunc(parts[2], unicode.IsSpace)
}
