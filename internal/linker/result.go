package linker

import (
	"path/filepath"
	"sort"
)

// GenerationResult groups the paths written by a generate run per agent.
type GenerationResult struct {
	Root string
	// Files maps an agent name to the absolute paths written for it.
	Files map[string][]string
	// GitignoreUpdated is set when the .gitignore section was written.
	GitignoreUpdated bool
}

func newGenerationResult(root string) *GenerationResult {
	return &GenerationResult{Root: root, Files: map[string][]string{}}
}

func (r *GenerationResult) add(agent string, paths ...string) {
	if len(paths) == 0 {
		return
	}
	r.Files[agent] = append(r.Files[agent], paths...)
}

// Agents returns the agents that received files, sorted.
func (r *GenerationResult) Agents() []string {
	names := make([]string, 0, len(r.Files))
	for name, paths := range r.Files {
		if len(paths) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RelPaths returns an agent's paths relative to Root, slash-separated,
// sorted and without duplicates.
func (r *GenerationResult) RelPaths(agent string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range r.Files[agent] {
		rel, err := filepath.Rel(r.Root, p)
		if err != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)
		if !seen[rel] {
			seen[rel] = true
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// Count returns the number of distinct paths written.
func (r *GenerationResult) Count() int {
	seen := map[string]bool{}
	for _, paths := range r.Files {
		for _, p := range paths {
			seen[p] = true
		}
	}
	return len(seen)
}
