package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/ai-rules-labs/ai-rules/internal/jsonmerge"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
)

// Target is an agent's MCP configuration file. Generated servers are merged
// into it; every other key and every unprefixed server is preserved.
type Target struct {
	// Path is relative to the project directory.
	Path      string
	Transform Transform
	// KeepFile leaves the file in place when cleaning empties it. Set for
	// files that also hold unrelated agent settings.
	KeepFile bool
}

// File returns the absolute target path for a project directory.
func (t Target) File(projectDir string) string {
	return filepath.Join(projectDir, filepath.FromSlash(t.Path))
}

// Render returns the target content after merging servers into the existing
// file. ok is false when there is nothing to write.
func (t Target) Render(projectDir string, servers Servers) (content string, ok bool, err error) {
	if len(servers) == 0 {
		return "", false, nil
	}
	doc, err := t.read(projectDir)
	if err != nil {
		return "", false, err
	}

	current := userServers(doc)
	for name, server := range expectedServers(servers, t.Transform) {
		current[name] = server
	}
	doc[ServersKey] = current

	content, err = jsonmerge.Encode(doc)
	if err != nil {
		return "", false, fmt.Errorf("encoding %s: %w", t.Path, err)
	}
	return content, true, nil
}

// Generate merges servers into the target file. With no servers the
// generated entries are removed instead.
func (t Target) Generate(projectDir string, servers Servers) ([]string, error) {
	if len(servers) == 0 {
		return nil, t.Clean(projectDir)
	}
	content, _, err := t.Render(projectDir, servers)
	if err != nil {
		return nil, err
	}
	path := t.File(projectDir)
	if err := platform.WritePrivateFile(path, content); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Check reports whether the generated servers in the target equal servers.
// Without a source, no generated server may be present.
func (t Target) Check(projectDir string, servers Servers, found bool) (bool, error) {
	doc, err := t.read(projectDir)
	if err != nil {
		return false, err
	}
	generated := generatedServers(doc)
	if !found {
		return len(generated) == 0, nil
	}
	return reflect.DeepEqual(generated, expectedServers(servers, t.Transform)), nil
}

// Clean removes the generated servers. The file is deleted when nothing
// else is left in it, unless KeepFile is set.
func (t Target) Clean(projectDir string) error {
	path := t.File(projectDir)
	if !platform.Exists(path) {
		return nil
	}
	doc, err := t.read(projectDir)
	if err != nil {
		return err
	}
	if len(generatedServers(doc)) == 0 {
		return nil
	}

	remaining := userServers(doc)
	if len(remaining) == 0 {
		delete(doc, ServersKey)
	} else {
		doc[ServersKey] = remaining
	}

	if len(doc) == 0 && !t.KeepFile {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		return nil
	}
	content, err := jsonmerge.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", t.Path, err)
	}
	return platform.WritePrivateFile(path, content)
}

// read decodes the target file; a missing or empty file is an empty object.
func (t Target) read(projectDir string) (map[string]any, error) {
	path := t.File(projectDir)
	content, ok, err := platform.ReadFileIfExists(path)
	if err != nil {
		return nil, err
	}
	if !ok || len(content) == 0 {
		return map[string]any{}, nil
	}
	doc, err := jsonmerge.DecodeObject([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func userServers(doc map[string]any) map[string]any {
	out := map[string]any{}
	existing, _ := doc[ServersKey].(map[string]any)
	for name, server := range existing {
		if !IsGenerated(name) {
			out[name] = server
		}
	}
	return out
}

func generatedServers(doc map[string]any) map[string]any {
	out := map[string]any{}
	existing, _ := doc[ServersKey].(map[string]any)
	for name, server := range existing {
		if IsGenerated(name) {
			out[name] = server
		}
	}
	return out
}
