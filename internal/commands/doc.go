// Package commands projects the slash commands kept in ai-rules/commands
// into each agent's command directory, either as relative symlinks to the
// sources or as copies with their frontmatter stripped.
package commands
