package gomap

import (
	"reflect"

	"github.com/signadot/refl/ir"
)

// IRFromer is implemented by types which decode themselves from a
// document node. gomap checks *T for it before classifying T.
type IRFromer interface {
	FromIR(*ir.Node) error
}

// IRToer is implemented by types which encode themselves as a document
// node.
type IRToer interface {
	ToIR() (*ir.Node, error)
}

var (
	irFromerType = reflect.TypeFor[IRFromer]()
	irToerType   = reflect.TypeFor[IRToer]()
)

// FromIR decodes node into v, which must be a non-nil pointer.
func FromIR(node *ir.Node, v any) error {
	if v == nil {
		return &DecodeError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &DecodeError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &DecodeError{Message: "destination pointer cannot be nil"}
	}
	return fromIR(node, val.Elem(), "")
}

// ToIR encodes v as a document node.
func ToIR(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[visitKey]string)
	return toIR(reflect.ValueOf(v), "", visited)
}
