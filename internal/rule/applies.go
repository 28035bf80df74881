package rule

import (
	"strings"

	"golang.org/x/text/cases"
)

// AppliesTo reports whether the rule applies to the named agent.
// Names compare case-insensitively after trimming.
func (r *Rule) AppliesTo(agent string) bool {
	agent = fold(agent)
	if r.AllowedAgents != nil {
		return containsFolded(r.AllowedAgents, agent)
	}
	if r.BlockedAgents != nil {
		return !containsFolded(r.BlockedAgents, agent)
	}
	return true
}

// AppliesToAll reports whether the rule applies to every named agent. It is
// used for outputs shared by a group of agents. An empty list matches.
func (r *Rule) AppliesToAll(agents []string) bool {
	for _, agent := range agents {
		if !r.AppliesTo(agent) {
			return false
		}
	}
	return true
}

// ForAgent returns the rules that apply to agent, in their original order.
func ForAgent(rules []*Rule, agent string) []*Rule {
	var out []*Rule
	for _, r := range rules {
		if r.AppliesTo(agent) {
			out = append(out, r)
		}
	}
	return out
}

// ForAgents returns the rules that apply to every agent in agents.
func ForAgents(rules []*Rule, agents []string) []*Rule {
	var out []*Rule
	for _, r := range rules {
		if r.AppliesToAll(agents) {
			out = append(out, r)
		}
	}
	return out
}

func containsFolded(list []string, folded string) bool {
	for _, name := range list {
		if fold(name) == folded {
			return true
		}
	}
	return false
}

func fold(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
