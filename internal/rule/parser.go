package rule

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"
)

const delimiter = "---"

// frontmatter mirrors the YAML block at the top of a rule document.
// Pointer fields distinguish "absent" from "empty".
type frontmatter struct {
	Description   string      `yaml:"description"`
	AlwaysApply   *bool       `yaml:"alwaysApply"`
	FileMatching  patternList `yaml:"fileMatching"`
	AllowedAgents *[]string   `yaml:"allowedAgents"`
	BlockedAgents *[]string   `yaml:"blockedAgents"`
}

// patternList accepts either a comma-separated string or a YAML sequence.
type patternList []string

func (p *patternList) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	switch value.Kind {
	case yaml.ScalarNode:
		raw = strings.Split(value.Value, ",")
	case yaml.SequenceNode:
		if err := value.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: fileMatching must be a string or a list", value.Line)
	}

	var patterns []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			patterns = append(patterns, s)
		}
	}
	*p = patterns
	return nil
}

// Parse turns the raw text of a rule document into a Rule. path is used for
// the default description, the base name and error messages.
func Parse(content, path string) (*Rule, error) {
	stem := fileStem(path)
	content = strings.TrimLeftFunc(content, unicode.IsSpace)
	if content == "" {
		return nil, &ParseError{Path: path, Err: ErrEmptyRule}
	}

	if !strings.HasPrefix(content, delimiter) {
		description := stem
		if description == "" {
			description = "Rule"
		}
		return &Rule{
			Description: description,
			AlwaysApply: true,
			Body:        content,
			BaseName:    stem,
		}, nil
	}

	// An empty body segment is valid; only a missing one is not.
	sections := strings.SplitN(content, delimiter, 3)
	if len(sections) < 3 {
		return nil, &ParseError{
			Path:   path,
			Reason: "end the frontmatter with a '---' line before the body",
			Err:    ErrMissingClosingDelimiter,
		}
	}
	body := strings.TrimLeftFunc(sections[2], unicode.IsSpace)

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(sections[1]), &fm); err != nil {
		return nil, &ParseError{
			Path:   path,
			Reason: "ensure the YAML is valid and properly formatted",
			Err:    fmt.Errorf("%w: %w", ErrMalformedFrontmatter, err),
		}
	}
	if fm.AlwaysApply == nil {
		return nil, &ParseError{
			Path:   path,
			Reason: "add alwaysApply: true or alwaysApply: false",
			Err:    ErrMissingAlwaysApply,
		}
	}

	r := &Rule{
		Description:   fm.Description,
		AlwaysApply:   *fm.AlwaysApply,
		AllowedAgents: listOrNil(fm.AllowedAgents),
		BlockedAgents: listOrNil(fm.BlockedAgents),
		Body:          body,
		BaseName:      stem,
	}
	if len(fm.FileMatching) > 0 {
		r.FileMatching = fm.FileMatching
	}

	if r.AllowedAgents != nil && r.BlockedAgents != nil {
		slog.Warn("rule sets both allowedAgents and blockedAgents; allowedAgents takes precedence", "path", path)
	}
	return r, nil
}

// ParseFile reads and parses one rule document.
func ParseFile(path string) (*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule %s: %w", path, err)
	}
	return Parse(string(data), path)
}

// listOrNil dereferences a decoded list, keeping an explicit empty list
// distinct from an absent one.
func listOrNil(list *[]string) []string {
	if list == nil {
		return nil
	}
	if *list == nil {
		return []string{}
	}
	return *list
}

func fileStem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
