// Package rule parses rule documents from a project's ai-rules/ directory
// and decides which agents each rule applies to.
//
// A rule is a Markdown file with optional YAML frontmatter:
//
//	---
//	description: Go style
//	alwaysApply: false
//	fileMatching: "**/*.go, go.mod"
//	blockedAgents: [gemini]
//	---
//	Prefer table-driven tests.
//
// A file without frontmatter is a required rule described by its file stem.
package rule
