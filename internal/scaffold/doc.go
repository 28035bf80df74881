// Package scaffold creates a starter ai-rules/ directory from embedded
// templates: an example rule and a commented project configuration file. It
// powers the "init" command.
package scaffold
