// Package agents holds the table of supported coding agents and renders,
// checks and cleans each agent's rule outputs: single reference files,
// Cursor rule directories, plain Markdown rule directories and the
// Firebender JSON config. An agent's MCP, command and skill generators are
// attached to its table entry and driven by the linker.
package agents
