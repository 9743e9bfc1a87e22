package refl

import (
	"encoding"
	"reflect"
)

// Direction says whether a value is being read into (decoded) or written
// out (encoded). Text convertibility depends on it.
type Direction int

const (
	Read Direction = 1 << iota
	Write
	ReadWrite = Read | Write
)

func (d Direction) String() string {
	switch d {
	case Read:
		return "read"
	case Write:
		return "write"
	case ReadWrite:
		return "read-write"
	}
	return "direction(?)"
}

// Category is the outcome of classifying a type.
type Category int

const (
	Leaf Category = iota
	Optional
	Sequence
	KeyedMap
	Composite
)

func (c Category) String() string {
	switch c {
	case Leaf:
		return "leaf"
	case Optional:
		return "optional"
	case Sequence:
		return "sequence"
	case KeyedMap:
		return "keyed-map"
	case Composite:
		return "composite"
	}
	return "category(?)"
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Classify places t in exactly one category. The checks run in order:
// leaf, optional, keyed map, sequence, and composite for the rest.
func Classify(t reflect.Type, dir Direction) Category {
	switch {
	case IsLeaf(t, dir):
		return Leaf
	case IsOptional(t):
		return Optional
	case IsKeyedMap(t, dir):
		return KeyedMap
	case IsSequence(t):
		return Sequence
	}
	return Composite
}

// IsTextLike reports whether t converts to and from text in dir. Reading
// needs *T to implement encoding.TextUnmarshaler, writing needs T or *T to
// implement encoding.TextMarshaler. Pointer and interface types are never
// text like: their text form belongs to what they point to.
func IsTextLike(t reflect.Type, dir Direction) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	if dir&Read != 0 && !reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return false
	}
	if dir&Write != 0 && !t.Implements(textMarshalerType) && !reflect.PointerTo(t).Implements(textMarshalerType) {
		return false
	}
	return dir&ReadWrite != 0
}

func isBasicKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func IsLeaf(t reflect.Type, dir Direction) bool {
	return isBasicKind(t.Kind()) || IsTextLike(t, dir)
}

func IsOptional(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer
}

func IsSequence(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// IsKeyedMap reports whether t is a map whose keys are strings or text
// like in dir.
func IsKeyedMap(t reflect.Type, dir Direction) bool {
	if t.Kind() != reflect.Map {
		return false
	}
	k := t.Key()
	return k.Kind() == reflect.String || IsTextLike(k, dir)
}
