package gomap

import (
	"fmt"
	"reflect"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON patch to the value v points to. The
// result is decoded into a fresh value which replaces *v only when every
// step succeeded.
func Patch(v any, patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("bad patch: %w", err)
	}
	return patchWith(v, func(doc []byte) ([]byte, error) {
		return p.Apply(doc)
	})
}

// MergePatch applies an RFC 7386 merge patch to the value v points to, with
// the same all or nothing behaviour as Patch.
func MergePatch(v any, patch []byte) error {
	return patchWith(v, func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patch)
	})
}

// CreateMergePatch returns the merge patch taking from to to.
func CreateMergePatch(from, to any) ([]byte, error) {
	a, err := ToBytes(from)
	if err != nil {
		return nil, err
	}
	b, err := ToBytes(to)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

func patchWith(v any, apply func([]byte) ([]byte, error)) error {
	val := reflect.ValueOf(v)
	if !val.IsValid() || val.Kind() != reflect.Pointer || val.IsNil() {
		return &DecodeError{Message: "patch target must be a non-nil pointer"}
	}
	doc, err := ToBytes(v)
	if err != nil {
		return err
	}
	res, err := apply(doc)
	if err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	tmp := reflect.New(val.Type().Elem())
	if err := FromBytes(res, tmp.Interface()); err != nil {
		return err
	}
	val.Elem().Set(tmp.Elem())
	return nil
}
