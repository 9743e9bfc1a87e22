package gomap

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/signadot/refl"
	"github.com/signadot/refl/debug"
	"github.com/signadot/refl/ir"
)

// toIR encodes val. visited holds the pointers, slices and maps on the
// current path so that cycles fail instead of recursing forever.
func toIR(val reflect.Value, path string, visited map[visitKey]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	if node, ok, err := callToIR(val, path); ok {
		return node, err
	}
	switch refl.Classify(typ, refl.Write) {
	case refl.Leaf:
		return toLeaf(val, path)
	case refl.Optional:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return visit(val, path, visited, func() (*ir.Node, error) {
			return toIR(val.Elem(), path, visited)
		})
	case refl.KeyedMap:
		if val.IsNil() {
			return ir.FromKeyVals(nil), nil
		}
		return visit(val, path, visited, func() (*ir.Node, error) {
			return toMap(val, path, visited)
		})
	case refl.Sequence:
		if typ.Kind() == reflect.Slice && !val.IsNil() && val.Len() > 0 {
			return visit(val, path, visited, func() (*ir.Node, error) {
				return toSeq(val, path, visited)
			})
		}
		return toSeq(val, path, visited)
	}
	if typ.Kind() == reflect.Interface {
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIR(val.Elem(), path, visited)
	}
	return toStruct(val, path, visited)
}

// callToIR uses the value's own IRToer, from either method set.
func callToIR(val reflect.Value, path string) (*ir.Node, bool, error) {
	typ := val.Type()
	var toer IRToer
	switch {
	case typ.Kind() == reflect.Pointer && val.IsNil():
		return nil, false, nil
	case typ.Kind() == reflect.Interface:
		return nil, false, nil
	case typ.Implements(irToerType):
		toer = val.Interface().(IRToer)
	case reflect.PointerTo(typ).Implements(irToerType):
		p := val
		if !p.CanAddr() {
			p = reflect.New(typ).Elem()
			p.Set(val)
		}
		toer = p.Addr().Interface().(IRToer)
	default:
		return nil, false, nil
	}
	node, err := toer.ToIR()
	if err != nil {
		return nil, true, &EncodeError{FieldPath: path, Message: err.Error(), Err: err}
	}
	if node == nil {
		node = ir.Null()
	}
	return node, true, nil
}

// visitKey identifies a container being encoded. Pointers and maps are
// keyed by type and address; slices also by length, since a slice and a
// pointer to its first element share an address.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func visit(val reflect.Value, path string, visited map[visitKey]string, f func() (*ir.Node, error)) (*ir.Node, error) {
	key := visitKey{typ: val.Type(), ptr: val.Pointer()}
	if val.Kind() == reflect.Slice {
		key.len = val.Len()
	}
	if prevPath, seen := visited[key]; seen {
		return nil, &EncodeError{
			FieldPath: path,
			Message:   fmt.Sprintf("circular reference: %s refers back to %q", showPath(path), prevPath),
		}
	}
	visited[key] = showPath(path)
	defer delete(visited, key)
	return f()
}

func showPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}

func toLeaf(val reflect.Value, path string) (*ir.Node, error) {
	typ := val.Type()
	if refl.IsTextLike(typ, refl.Write) {
		text, err := refl.MarshalText(val)
		if err != nil {
			return nil, &EncodeError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return ir.FromString(string(text)), nil
	}
	switch typ.Kind() {
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(val.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	}
	return nil, &EncodeError{FieldPath: path, Message: fmt.Sprintf("unsupported leaf type: %s", typ)}
}

func toSeq(val reflect.Value, path string, visited map[visitKey]string) (*ir.Node, error) {
	n := val.Len()
	elements := make([]*ir.Node, 0, n)
	for i := range n {
		elem, err := toIR(val.Index(i), indexPath(path, i), visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	return ir.FromSlice(elements), nil
}

func toMap(val reflect.Value, path string, visited map[visitKey]string) (*ir.Node, error) {
	keys, err := refl.SortedKeys(val)
	if err != nil {
		return nil, &EncodeError{FieldPath: path, Message: err.Error(), Err: err}
	}
	kvs := make([]ir.KeyVal, 0, len(keys))
	for _, key := range keys {
		name, err := keyText(key)
		if err != nil {
			return nil, &EncodeError{FieldPath: path, Message: "bad key: " + err.Error(), Err: err}
		}
		elem, err := toIR(val.MapIndex(key), fieldPath(path, name), visited)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: elem})
	}
	return ir.FromKeyVals(kvs), nil
}

func keyText(key reflect.Value) (string, error) {
	if refl.IsTextLike(key.Type(), refl.Write) {
		text, err := refl.MarshalText(key)
		return string(text), err
	}
	return key.String(), nil
}

type encodeProcessor struct {
	path    string
	visited map[visitKey]string
	kvs     []ir.KeyVal
}

func (e *encodeProcessor) Field(f refl.Field, lhs, _ reflect.Value) error {
	node, err := toIR(lhs, fieldPath(e.path, f.Name), e.visited)
	if err != nil {
		return err
	}
	e.kvs = append(e.kvs, ir.KeyVal{Key: ir.FromString(f.Name), Val: node})
	return nil
}

func toStruct(val reflect.Value, path string, visited map[visitKey]string) (*ir.Node, error) {
	if _, err := refl.Fields(val.Type()); err != nil {
		return nil, &EncodeError{FieldPath: path, Message: err.Error(), Err: err}
	}
	ep := &encodeProcessor{path: path, visited: visited}
	if err := refl.ReflectValue(ep, val, reflect.Value{}); err != nil {
		return nil, err
	}
	if debug.Encode() {
		debug.Log().Debug("encoded struct", slog.String("type", val.Type().String()),
			slog.String("path", showPath(path)), slog.Int("fields", len(ep.kvs)))
	}
	return ir.FromKeyVals(ep.kvs), nil
}
