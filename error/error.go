// Package error decorates errors from the grammar-definition pipeline
// with their origin so the CLI can report them the way compilers do.
package error

import (
	"fmt"
	"os"
	"strings"
)

// DefError ties an error to the definition file and line it came from.
// Line 0 means no line is known; TOML decode errors carry one, semantic
// errors raised while lowering a definition usually do not.
type DefError struct {
	Cause error
	Path  string
	Line  int
}

func (e *DefError) Error() string {
	var b strings.Builder
	switch {
	case e.Path != "" && e.Line > 0:
		fmt.Fprintf(&b, "%v:%v: %v", e.Path, e.Line, e.Cause)
	case e.Path != "":
		fmt.Fprintf(&b, "%v: %v", e.Path, e.Cause)
	default:
		fmt.Fprintf(&b, "%v", e.Cause)
	}
	if snippet := sourceLine(e.Path, e.Line); snippet != "" {
		fmt.Fprintf(&b, "\n  > %v", snippet)
	}
	return b.String()
}

func (e *DefError) Unwrap() error {
	return e.Cause
}

// DefErrors collects every problem found in one definition file.
type DefErrors []*DefError

func (e DefErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// sourceLine fetches the offending line for the echo under the message.
func sourceLine(path string, line int) string {
	if path == "" || line <= 0 {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
