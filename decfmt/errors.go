// SPDX-License-Identifier: MIT

package decfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ErrVersion indicates a structured document whose version field does not
// match the supported version constant.
var ErrVersion = errors.New("decfmt: unsupported format version")

// ParseError is a structural input error: malformed syntax or a name the
// problem does not know, located in the source text.
type ParseError struct {
	Path string // source path, empty for streams
	Line int    // 1-based
	Col  int    // 1-based
	Src  string // offending source line, empty when unavailable
	Msg  string
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	return fmt.Sprintf("decfmt: %s:%d:%d: %s", where, e.Line, e.Col, e.Msg)
}

// Detail renders the error with the offending line and a caret marker
// under the error column.
func (e *ParseError) Detail() string {
	if e.Src == "" {
		return e.Error()
	}
	pad := e.Col - 1
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s\n%s\n%s^", e.Error(), e.Src, strings.Repeat(" ", pad))
}

// lineAt returns the 1-based line of src, or "" when out of range.
func lineAt(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// syntaxError converts a participle parse failure into a *ParseError.
// Errors that carry no position are passed through wrapped.
func syntaxError(path string, lines []string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return fmt.Errorf("decfmt: %w", err)
	}
	pos := perr.Position()
	return &ParseError{
		Path: path,
		Line: pos.Line,
		Col:  pos.Column,
		Src:  lineAt(lines, pos.Line),
		Msg:  perr.Message(),
	}
}
