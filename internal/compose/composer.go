// Package compose renders the documents an agent reads its rules from:
// reference documents that point at the generated bodies, and inlined
// documents that carry the bodies themselves.
package compose

import (
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/body"
	"github.com/ai-rules-labs/ai-rules/internal/platform"
	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// Reference renders one "@<body path>" line per required rule in order.
// When any rule is optional, a blank line and a reference to the optional
// index named by optionalKey follow. No rules means no document.
func Reference(rules []*rule.Rule, optionalKey string) string {
	var b strings.Builder
	for _, r := range rules {
		if !r.AlwaysApply {
			continue
		}
		b.WriteString("@")
		b.WriteString(r.BodyPath())
		b.WriteString("\n")
	}

	if rule.HasOptional(rules) {
		b.WriteString("\n@")
		b.WriteString(body.OptionalPath(optionalKey))
		b.WriteString("\n")
	}
	return b.String()
}

// Inline concatenates the required rules, each under a "# <description>"
// heading when it has one, separated by a blank line. Optional rules are
// left to the agent's skills.
func Inline(rules []*rule.Rule) string {
	var sections []string
	for _, r := range rules {
		if !r.AlwaysApply {
			continue
		}
		sections = append(sections, inlineSection(r))
	}
	return strings.Join(sections, "\n")
}

// InlineWithOptional is Inline for agents without skills: the optional index
// is appended after the required rules.
func InlineWithOptional(rules []*rule.Rule) string {
	content := Inline(rules)
	optional := body.OptionalIndex(rules)
	if optional == "" {
		return content
	}
	if content == "" {
		return optional
	}
	return content + "\n" + optional
}

// InlineAll is Inline over every rule, optional ones included, for a
// document that has to stand alone without the generated bodies.
func InlineAll(rules []*rule.Rule) string {
	sections := make([]string, 0, len(rules))
	for _, r := range rules {
		sections = append(sections, inlineSection(r))
	}
	return strings.Join(sections, "\n")
}

func inlineSection(r *rule.Rule) string {
	var b strings.Builder
	if r.Description != "" {
		b.WriteString("# ")
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}
	b.WriteString(platform.EnsureTrailingNewline(r.Body))
	return b.String()
}
