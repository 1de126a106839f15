package liveclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// contextRadius is how many lines before and after the failing line are kept.
const contextRadius = 2

// Decode unmarshals text into T. It fails with *DecodeError when the text is
// not valid JSON, a value has the wrong type, or a required field of T (a
// json tag without omitempty) is absent or null.
func Decode[T any](endpoint string, text []byte) (T, error) {
	var v T
	if err := json.Unmarshal(text, &v); err != nil {
		return v, newDecodeError(endpoint, text, errorOffset(err, len(text)), err)
	}
	if miss, ok := findMissing(&v, text); ok {
		return v, newDecodeError(endpoint, text, miss.offset, miss)
	}
	return v, nil
}

// errorOffset returns the byte index the decoder stopped at, or -1.
func errorOffset(err error, size int) int {
	var off int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		off = syntaxErr.Offset
	case errors.As(err, &typeErr):
		off = typeErr.Offset
	}
	if off < 0 {
		return -1
	}
	// Offset counts the bytes consumed, so the offending byte is the last one read.
	if off > 0 {
		off--
	}
	if int(off) >= size {
		off = int64(size) - 1
	}
	return int(off)
}

func newDecodeError(endpoint string, text []byte, offset int, err error) *DecodeError {
	decErr := &DecodeError{Endpoint: endpoint, Err: err}
	if offset < 0 || len(text) == 0 {
		return decErr
	}
	decErr.Line, decErr.Column = position(text, offset)
	decErr.Context = contextLines(text, decErr.Line)
	return decErr
}

// position converts a byte offset into a 1-based line and column.
func position(text []byte, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	head := text[:offset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	column = offset - bytes.LastIndexByte(head, '\n')
	return line, column
}

// contextLines returns line plus up to contextRadius lines either side,
// clipped to the document.
func contextLines(text []byte, line int) []ContextLine {
	lines := bytes.Split(bytes.TrimSuffix(text, []byte{'\n'}), []byte{'\n'})
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return nil
	}
	start := max(idx-contextRadius, 0)
	end := min(idx+contextRadius+1, len(lines))

	out := make([]ContextLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, ContextLine{
			Number: i + 1,
			Text:   string(bytes.TrimSuffix(lines[i], []byte{'\r'})),
			Marked: i == idx,
		})
	}
	return out
}

// missingFieldError names a required field that was absent or null.
type missingFieldError struct {
	path   string
	field  string
	null   bool
	offset int
}

func (e *missingFieldError) Error() string {
	where := e.path
	if where == "" {
		where = "document root"
	}
	if e.null {
		return fmt.Sprintf("field %q at %s is null", e.field, where)
	}
	return fmt.Sprintf("missing field %q at %s", e.field, where)
}
