package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeError reports a source that is not well-formed JSON or YAML.
type DecodeError struct {
	Filename string
	Format   Format

	// Line is 1-based, or 0 when the decoder did not report a position.
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: invalid %s: %v", e.Filename, e.Line, e.Format, e.Err)
	}
	return fmt.Sprintf("%s: invalid %s: %v", e.Filename, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newDecodeError(filename string, format Format, data []byte, err error) *DecodeError {
	de := &DecodeError{Filename: filename, Format: format, Err: err}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		de.Line = lineAt(data, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		de.Line = lineAt(data, typeErr.Offset)
	}
	return de
}

func lineAt(data []byte, offset int64) int {
	if offset < 0 {
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
