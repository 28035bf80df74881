package rule

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRule is returned for a document with no content.
	ErrEmptyRule = errors.New("rule document is empty")
	// ErrMissingClosingDelimiter is returned when frontmatter is opened but
	// never closed, which leaves the document without a body segment.
	ErrMissingClosingDelimiter = errors.New("missing closing frontmatter delimiter '---'")
	// ErrMalformedFrontmatter wraps YAML decoding failures.
	ErrMalformedFrontmatter = errors.New("malformed YAML frontmatter")
	// ErrMissingAlwaysApply is returned when frontmatter omits alwaysApply.
	ErrMissingAlwaysApply = errors.New("frontmatter must set alwaysApply")
)

// ParseError reports why a rule document could not be parsed. Reason, when
// set, tells the author how to fix the document.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("parsing rule %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parsing rule %s: %v (%s)", e.Path, e.Err, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
