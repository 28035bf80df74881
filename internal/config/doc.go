// Package config resolves the project configuration of one invocation from
// ai-rules/ai-rules-config.yaml, AI_RULES_* environment variables and
// command-line flags, and checks the binary against the project's
// required_version constraint.
package config
