package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/ai-rules-labs/ai-rules/internal/branding"
	"github.com/ai-rules-labs/ai-rules/internal/config"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const templatesDir = "templates"

// Data holds the template variables.
type Data struct {
	CLIName     string
	DisplayName string
	EnvPrefix   string
	Agents      []string
	Gitignore   bool
	NestedDepth int
}

// NewData returns template data filled from the branding.
func NewData(agents []string, gitignore bool, nestedDepth int) *Data {
	return &Data{
		CLIName:     branding.CLIName(),
		DisplayName: branding.DisplayName(),
		EnvPrefix:   branding.EnvPrefix(),
		Agents:      agents,
		Gitignore:   gitignore,
		NestedDepth: nestedDepth,
	}
}

// Result holds the outcome of Init.
type Result struct {
	Dir string
	// Files are the project-relative files written.
	Files []string
	// Skipped are the files that already existed and were kept.
	Skipped  []string
	Warnings []string
}

// Init writes the starter files into the rule directory of projectDir.
// Existing files are kept unless force is set. The example rule is only
// written when the directory holds no rules yet.
func Init(projectDir string, data *Data, force bool) (*Result, error) {
	existing, err := rule.SourceFiles(projectDir)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(templateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	result := &Result{Dir: rule.Dir(projectDir)}
	for _, entry := range entries {
		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		rel := filepath.ToSlash(filepath.Join(rule.SourceDir, outName))
		outPath := filepath.Join(result.Dir, outName)

		isRule := strings.HasSuffix(outName, "."+rule.Extension)
		if !force && (platform.Exists(outPath) || (isRule && len(existing) > 0)) {
			result.Skipped = append(result.Skipped, rel)
			continue
		}

		content, err := render(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		if err := platform.WriteFile(outPath, content); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, rel)
	}

	result.Warnings = validate(projectDir, result.Files)
	return result, nil
}

func render(name string, data *Data) (string, error) {
	tmplBytes, err := fs.ReadFile(templateFS, templatesDir+"/"+name)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// validate parses what was written so a broken template surfaces as a
// warning instead of a failing generate later.
func validate(projectDir string, written []string) []string {
	var warnings []string
	for _, rel := range written {
		path := filepath.Join(projectDir, filepath.FromSlash(rel))
		switch {
		case filepath.Base(path) == config.FileName:
			if _, err := config.Load(projectDir, nil); err != nil {
				warnings = append(warnings, fmt.Sprintf("Could not load %s: %v", rel, err))
			}
		case strings.HasSuffix(path, "."+rule.Extension):
			if _, err := rule.ParseFile(path); err != nil {
				warnings = append(warnings, err.Error())
			}
		}
	}
	return warnings
}
