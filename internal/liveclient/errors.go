package liveclient

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Body)
}

// ContextLine is one line of the payload around a decode failure.
type ContextLine struct {
	Number int
	Text   string
	Marked bool // the line the error was reported on
}

// DecodeError reports a payload that could not be decoded into the expected
// type. Line and Column are 1-based; both are 0 when the decoder gave no
// position.
type DecodeError struct {
	Endpoint string
	Line     int
	Column   int
	Context  []ContextLine
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("decode %s: line %d, column %d: %v", e.Endpoint, e.Line, e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Snippet renders Context with line numbers, marking the failing line.
func (e *DecodeError) Snippet() string {
	var b strings.Builder
	for i, l := range e.Context {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := "    "
		if l.Marked {
			marker = ">>> "
		}
		fmt.Fprintf(&b, "%s%d: %s", marker, l.Number, l.Text)
	}
	return b.String()
}

// LogFields extracts the structured details of a transport or decode error.
func LogFields(err error) []zap.Field {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return []zap.Field{
			zap.String("endpoint", decErr.Endpoint),
			zap.Int("line", decErr.Line),
			zap.Int("column", decErr.Column),
			zap.String("context", decErr.Snippet()),
		}
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return []zap.Field{
			zap.String("endpoint", httpErr.Endpoint),
			zap.Int("status", httpErr.Status),
		}
	}
	return nil
}
