// Package body materializes rule bodies into ai-rules/.generated-ai-rules/
// and builds the optional-rules index documents that reference them.
package body
