// Package linker runs the project-wide operations: it walks the project
// directories holding an ai-rules/ folder and generates, checks, cleans or
// validates every configured agent's artifacts there, then keeps the root
// .gitignore section in step. Migrate converts those directories to a plain
// AGENTS.md layout for projects leaving the tool.
package linker
