package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/refl/format"
)

var ErrParse = errors.New("parse error")

// Error reports malformed input. Offset is the byte offset at which the
// problem was detected, or -1 when the underlying parser does not say.
type Error struct {
	Format format.Format
	Offset int64
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s %s at offset %d: %s", e.Format, ErrParse, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Format, ErrParse, e.Msg)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
