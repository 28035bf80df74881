package rule

import (
	"path"
)

const (
	// SourceDir is the directory, relative to a project directory, holding rule documents.
	SourceDir = "ai-rules"
	// GeneratedDir holds the materialized rule bodies, relative to a project directory.
	GeneratedDir = SourceDir + "/.generated-ai-rules"
	// GeneratedPrefix marks every file and directory the tool owns.
	GeneratedPrefix = "ai-rules-generated-"
	// AgentsFile is the shared single-file output name and the pass-through source name.
	AgentsFile = "AGENTS.md"
	// Extension is the rule document extension, without the dot.
	Extension = "md"
)

// Rule is one parsed rule document.
type Rule struct {
	Description string
	AlwaysApply bool
	// FileMatching holds advisory glob patterns; nil when none were given.
	FileMatching []string
	// AllowedAgents is an exclusive allow-list; nil when unset.
	AllowedAgents []string
	// BlockedAgents is a deny-list consulted only without an allow-list; nil when unset.
	BlockedAgents []string
	Body          string
	// BaseName is the source file stem. It names every artifact derived from the rule.
	BaseName string
}

// Required reports whether the rule is always applied.
func (r *Rule) Required() bool { return r.AlwaysApply }

// BodyFileName returns the generated body file name, e.g. ai-rules-generated-go-style.md.
func (r *Rule) BodyFileName() string {
	return GeneratedPrefix + r.BaseName + "." + Extension
}

// BodyPath returns the project-relative, slash-separated path of the generated body.
func (r *Rule) BodyPath() string {
	return path.Join(GeneratedDir, r.BodyFileName())
}

// Split partitions rules into required and optional, preserving order.
func Split(rules []*Rule) (required, optional []*Rule) {
	for _, r := range rules {
		if r.AlwaysApply {
			required = append(required, r)
		} else {
			optional = append(optional, r)
		}
	}
	return required, optional
}

// HasOptional reports whether any rule is optional.
func HasOptional(rules []*Rule) bool {
	for _, r := range rules {
		if !r.AlwaysApply {
			return true
		}
	}
	return false
}
