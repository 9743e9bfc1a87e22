package gomap

import "fmt"

// DecodeError reports a document whose shape does not fit the target, or a
// value the target cannot hold.
type DecodeError struct {
	FieldPath string // e.g. "items[3].name"
	Expected  string
	Actual    string
	Message   string
	Err       error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("decode error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("decode error: %s", msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type EncodeError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *EncodeError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("encode error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("encode error: %s", e.Message)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func fieldPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func indexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
