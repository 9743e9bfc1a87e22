package refl

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/signadot/refl/debug"
)

// SkipRest may be returned by a Processor to end enumeration early. The
// entry point then returns nil.
var SkipRest = errors.New("skip rest")

var ErrNil = errors.New("nil value")

// Field describes one enumerated struct field. Index is the path for
// reflect.Value.FieldByIndex from the outermost struct, so fields of a
// chained base carry the embedding field's index as a prefix.
type Field struct {
	Name  string
	Index []int
	Tag   reflect.StructTag
	Type  reflect.Type
}

// Processor receives each field in declaration order. In paired mode rhs is
// the same field of the second object; otherwise it is the zero Value.
type Processor interface {
	Field(f Field, lhs, rhs reflect.Value) error
}

// Paired marks a Processor as wanting both objects. Embed it.
type Paired struct{}

func (Paired) paired() {}

type pairedProcessor interface {
	paired()
}

// IsPaired reports whether p embeds Paired.
func IsPaired(p Processor) bool {
	_, ok := p.(pairedProcessor)
	return ok
}

type DeclarationError struct {
	Type    reflect.Type
	Message string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("bad declaration of %v: %s", e.Type, e.Message)
}

// Reflect enumerates the fields of obj, a struct or a pointer to one.
// Passing a pointer makes the values handed to p settable.
func Reflect(p Processor, obj any) error {
	return ReflectValue(p, reflect.ValueOf(obj), reflect.Value{})
}

// Reflect2 enumerates the fields of lhs and rhs together. Both must have
// the same type. Processors that do not embed Paired only see lhs.
func Reflect2(p Processor, lhs, rhs any) error {
	return ReflectValue(p, reflect.ValueOf(lhs), reflect.ValueOf(rhs))
}

func ReflectValue(p Processor, lhs, rhs reflect.Value) error {
	lhs, err := indirect(lhs)
	if err != nil {
		return err
	}
	paired := IsPaired(p)
	if paired {
		rhs, err = indirect(rhs)
		if err != nil {
			return err
		}
		if rhs.Type() != lhs.Type() {
			return fmt.Errorf("paired objects differ in type: %v and %v", lhs.Type(), rhs.Type())
		}
	} else {
		rhs = reflect.Value{}
	}
	fields, err := Fields(lhs.Type())
	if err != nil {
		return err
	}
	for i := range fields {
		f := fields[i]
		var r reflect.Value
		if paired {
			r = rhs.FieldByIndex(f.Index)
		}
		if err := p.Field(f, lhs.FieldByIndex(f.Index), r); err != nil {
			if errors.Is(err, SkipRest) {
				return nil
			}
			return err
		}
	}
	return nil
}

func indirect(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return v, fmt.Errorf("%w: no object", ErrNil)
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v, fmt.Errorf("%w: %v", ErrNil, v.Type())
		}
		v = v.Elem()
	}
	return v, nil
}

// Fields lists the fields of struct type t in enumeration order, with
// chained bases expanded in place. Field lists are derived on every call.
func Fields(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct {
		return nil, &DeclarationError{Type: t, Message: fmt.Sprintf("%s is not a struct", t.Kind())}
	}
	res, err := appendFields(nil, t, nil)
	if err != nil {
		return nil, err
	}
	if debug.Fields() {
		names := make([]string, len(res))
		for i := range res {
			names[i] = res[i].Name
		}
		debug.Log().Debug("fields", slog.String("type", t.String()), slog.Any("names", names))
	}
	return res, nil
}

func appendFields(dst []Field, t reflect.Type, prefix []int) ([]Field, error) {
	own := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		name, ok := fieldName(sf)
		if !ok {
			continue
		}
		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i
		if name == "" {
			var err error
			dst, err = appendFields(dst, sf.Type, index)
			if err != nil {
				return nil, err
			}
			continue
		}
		if own[name] {
			return nil, &DeclarationError{Type: t, Message: fmt.Sprintf("duplicate field name %q", name)}
		}
		own[name] = true
		dst = append(dst, Field{Name: name, Index: index, Tag: sf.Tag, Type: sf.Type})
	}
	return dst, nil
}

// fieldName returns the name of sf, "" for a chained base, or false when
// the field is skipped.
func fieldName(sf reflect.StructField) (string, bool) {
	tag, hasTag := sf.Tag.Lookup("refl")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
		return "", true
	}
	if !sf.IsExported() {
		return "", false
	}
	if !hasTag || name == "" {
		name = sf.Name
	}
	return name, true
}
