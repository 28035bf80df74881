// Package ui prints status lines and generation trees, styled with lipgloss
// when stdout is a terminal.
package ui
