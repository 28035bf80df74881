// Package cli defines the Cobra command tree for the ai-rules CLI. Each file
// in this package registers one top-level command (generate, status, clean,
// etc.) with the root command. Command implementations delegate to internal
// packages for the work and only handle flags, configuration and output.
package cli
