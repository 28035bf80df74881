// Package logging configures the process-wide slog logger used for
// warnings and debug traces. User-facing progress output does not go
// through here; see package ui.
package logging
