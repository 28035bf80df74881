package mcp

import (
	"fmt"
	"path/filepath"

	"github.com/ai-rules-labs/ai-rules/internal/jsonmerge"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

const (
	// SourceFile is the MCP source document inside the rule directory.
	SourceFile = "mcp.json"
	// ServersKey is the object holding servers, in the source and in every target.
	ServersKey = "mcpServers"
)

// Servers maps a server name to its JSON definition.
type Servers map[string]any

// SourcePath returns the MCP source path of a project directory.
func SourcePath(projectDir string) string {
	return filepath.Join(rule.Dir(projectDir), SourceFile)
}

// ReadSource reads and validates the MCP source of a project directory.
// found is false when the project has no source; that is not an error.
func ReadSource(projectDir string) (servers Servers, found bool, err error) {
	path := SourcePath(projectDir)
	content, ok, err := platform.ReadFileIfExists(path)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	servers, err = ParseSource(path, []byte(content))
	if err != nil {
		return nil, true, err
	}
	return servers, true, nil
}

// ParseSource validates data against the MCP schema and returns its servers.
// path is only used in error messages.
func ParseSource(path string, data []byte) (Servers, error) {
	issues, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &ValidationError{File: path, Issues: issues}
	}

	doc, err := jsonmerge.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	raw, _ := doc[ServersKey].(map[string]any)
	return Servers(raw), nil
}
