// Package mcp reads the project's MCP server source (ai-rules/mcp.json),
// validates it against an embedded JSON schema, and merges the servers
// into each agent's MCP configuration file.
//
// Generated servers are stored under names carrying the generated-file
// prefix so that servers a user added by hand survive every generate and
// clean.
package mcp
