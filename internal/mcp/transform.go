package mcp

import (
	"strings"

	"github.com/ai-rules-labs/ai-rules/internal/rule"
)

// Transform rewrites one server definition into a target's dialect. It
// receives a copy and may modify it.
type Transform func(server map[string]any) map[string]any

// GeminiTransform converts a server into the Gemini CLI settings dialect.
// Gemini infers the transport from the keys present, so "type" is dropped
// and streamable HTTP endpoints move from "url" to "httpUrl".
func GeminiTransform(server map[string]any) map[string]any {
	delete(server, "type")

	if _, ok := server["httpUrl"]; ok {
		delete(server, "command")
		delete(server, "url")
		return server
	}

	url, ok := server["url"]
	if !ok {
		return server
	}
	delete(server, "command")
	if s, isString := url.(string); isString && strings.HasSuffix(s, "/mcp") {
		server["httpUrl"] = s
		delete(server, "url")
	}
	return server
}

// PrefixedName returns the name a generated server is stored under.
func PrefixedName(name string) string {
	return rule.GeneratedPrefix + name
}

// IsGenerated reports whether a target server name belongs to the tool.
func IsGenerated(name string) bool {
	return strings.HasPrefix(name, rule.GeneratedPrefix)
}

// expectedServers returns the prefixed, transformed servers a target should
// contain.
func expectedServers(servers Servers, transform Transform) map[string]any {
	out := make(map[string]any, len(servers))
	for name, def := range servers {
		server := copyServer(def)
		if transform != nil {
			server = transform(server)
		}
		out[PrefixedName(name)] = server
	}
	return out
}

func copyServer(def any) map[string]any {
	src, _ := def.(map[string]any)
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
