package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a compilation failure.
type ErrorKind int

const (
	LexicalError  ErrorKind = iota // lexeme matched no category
	SyntaxError                    // wrong category, premature end, trailing tokens
	SemanticError                  // duplicate declaration or undeclared use
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical"
	case SyntaxError:
		return "syntax"
	case SemanticError:
		return "semantic"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the single fatal diagnostic produced by Check.
type Error struct {
	Kind ErrorKind
	Line int // 1-based; 0 when no token was available
	Msg  string
	Hint string

	// Incomplete is set when input ended inside a construct. More input
	// could still make the document valid.
	Incomplete bool
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	fmt.Fprintf(&sb, "%s error: %s", e.Kind, e.Msg)
	if e.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}

// IsIncomplete reports whether err is an *Error caused by premature end of input.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Incomplete
}

// KindOf returns the ErrorKind of err and whether err is an *Error at all.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// WrapErrorWithSource returns err with a numbered source snippet appended.
// The snippet shows the offending line with one line of context on either
// side. Errors that are not *Error are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	var e *Error
	if !errors.As(err, &e) || e.Line < 1 {
		return err
	}
	return &sourceError{err: e, snippet: snippet(src, e.Line)}
}

type sourceError struct {
	err     *Error
	snippet string
}

func (s *sourceError) Error() string {
	if s.snippet == "" {
		return s.err.Error()
	}
	return s.err.Error() + "\n\n" + s.snippet
}

func (s *sourceError) Unwrap() error { return s.err }

// snippet renders lines line-1..line+1 of src, marking the offending one.
func snippet(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	from := max(line-1, 1)
	to := min(line+1, len(lines))
	width := len(fmt.Sprint(to))

	var sb strings.Builder
	for n := from; n <= to; n++ {
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%*d | %s\n", marker, width, n, strings.TrimRight(lines[n-1], "\r"))
	}
	return strings.TrimRight(sb.String(), "\n")
}
