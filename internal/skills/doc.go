// Package skills links the skill folders kept in ai-rules/skills into each
// agent's skills directory, and turns optional rules into skill manifests
// for agents that load skills on demand.
package skills
