package ir

import (
	"strconv"
	"strings"
)

// Path returns the location of y relative to its root, e.g. $.items[2].name.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		return y.Parent.Path() + FieldSegment(y.ParentField)
	case ArrayType:
		return y.Parent.Path() + IndexSegment(y.ParentIndex)
	default:
		panic("parent but not in container")
	}
}

// FieldSegment renders one object member step of a path. Names that would
// be ambiguous in a path are quoted.
func FieldSegment(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return "." + f
	}
	return ".'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// IndexSegment renders one array element step of a path.
func IndexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
