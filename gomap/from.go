package gomap

import (
	"encoding"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/refl"
	"github.com/signadot/refl/debug"
	"github.com/signadot/refl/ir"
)

// fromIR decodes node into val, which must be settable.
func fromIR(node *ir.Node, val reflect.Value, path string) error {
	if node == nil {
		return &DecodeError{FieldPath: path, Message: "document node is nil"}
	}
	typ := val.Type()
	if typ.Kind() != reflect.Pointer && reflect.PointerTo(typ).Implements(irFromerType) {
		if err := val.Addr().Interface().(IRFromer).FromIR(node); err != nil {
			return &DecodeError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return nil
	}
	switch refl.Classify(typ, refl.Read) {
	case refl.Leaf:
		return fromLeaf(node, val, path)
	case refl.Optional:
		if node.Type == ir.NullType {
			val.SetZero()
			return nil
		}
		p := reflect.New(typ.Elem())
		if err := fromIR(node, p.Elem(), path); err != nil {
			return err
		}
		val.Set(p)
		return nil
	case refl.KeyedMap:
		return fromMap(node, val, path)
	case refl.Sequence:
		if typ.Kind() == reflect.Array {
			return fromArray(node, val, path)
		}
		return fromSlice(node, val, path)
	}
	if typ.Kind() == reflect.Interface {
		return fromInterface(node, val, path)
	}
	return fromStruct(node, val, path)
}

func shapeError(node *ir.Node, path string, expected ir.Type) error {
	return &DecodeError{FieldPath: path, Expected: expected.String(), Actual: node.Type.String()}
}

func fromLeaf(node *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	if refl.IsTextLike(typ, refl.Read) {
		if node.Type != ir.StringType {
			return shapeError(node, path, ir.StringType)
		}
		tu := val.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(node.String)); err != nil {
			return &DecodeError{FieldPath: path, Message: err.Error(), Err: err}
		}
		return nil
	}
	switch typ.Kind() {
	case reflect.String:
		if node.Type != ir.StringType {
			return shapeError(node, path, ir.StringType)
		}
		val.SetString(node.String)
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return shapeError(node, path, ir.BoolType)
		}
		val.SetBool(node.Bool)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Type != ir.NumberType {
			return shapeError(node, path, ir.NumberType)
		}
		n, err := nodeInt64(node)
		if err != nil || val.OverflowInt(n) {
			return &DecodeError{FieldPath: path, Message: fmt.Sprintf("number %s does not fit in %s", numberText(node), typ), Err: err}
		}
		val.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if node.Type != ir.NumberType {
			return shapeError(node, path, ir.NumberType)
		}
		n, err := nodeUint64(node)
		if err != nil || val.OverflowUint(n) {
			return &DecodeError{FieldPath: path, Message: fmt.Sprintf("number %s does not fit in %s", numberText(node), typ), Err: err}
		}
		val.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if node.Type != ir.NumberType {
			return shapeError(node, path, ir.NumberType)
		}
		f, err := nodeFloat64(node)
		if err != nil || val.OverflowFloat(f) {
			return &DecodeError{FieldPath: path, Message: fmt.Sprintf("number %s does not fit in %s", numberText(node), typ), Err: err}
		}
		val.SetFloat(f)
	default:
		return &DecodeError{FieldPath: path, Message: fmt.Sprintf("unsupported leaf type: %s", typ)}
	}
	return nil
}

func numberText(node *ir.Node) string {
	switch {
	case node.Number != "":
		return node.Number
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		return strconv.FormatFloat(*node.Float64, 'g', -1, 64)
	}
	return "?"
}

// nodeInt64 reads an integer. Floats are accepted only when integral.
func nodeInt64(node *ir.Node) (int64, error) {
	switch {
	case node.Int64 != nil:
		return *node.Int64, nil
	case node.Float64 != nil:
		f := *node.Float64
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an int64", f)
		}
		return int64(f), nil
	}
	return strconv.ParseInt(node.Number, 10, 64)
}

func nodeUint64(node *ir.Node) (uint64, error) {
	switch {
	case node.Int64 != nil:
		if *node.Int64 < 0 {
			return 0, fmt.Errorf("%d is negative", *node.Int64)
		}
		return uint64(*node.Int64), nil
	case node.Float64 != nil:
		f := *node.Float64
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%v is not a uint64", f)
		}
		return uint64(f), nil
	}
	return strconv.ParseUint(node.Number, 10, 64)
}

func nodeFloat64(node *ir.Node) (float64, error) {
	switch {
	case node.Float64 != nil:
		return *node.Float64, nil
	case node.Int64 != nil:
		return float64(*node.Int64), nil
	}
	return strconv.ParseFloat(node.Number, 64)
}

func fromMap(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.ObjectType {
		return shapeError(node, path, ir.ObjectType)
	}
	typ := val.Type()
	if val.IsNil() {
		val.Set(reflect.MakeMapWithSize(typ, len(node.Values)))
	}
	keyType := typ.Key()
	for i, v := range node.Values {
		name := node.Fields[i].String
		elemPath := fieldPath(path, name)
		key := reflect.New(keyType).Elem()
		if refl.IsTextLike(keyType, refl.Read) {
			tu := key.Addr().Interface().(encoding.TextUnmarshaler)
			if err := tu.UnmarshalText([]byte(name)); err != nil {
				return &DecodeError{FieldPath: elemPath, Message: "bad key: " + err.Error(), Err: err}
			}
		} else {
			key.SetString(name)
		}
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromIR(v, elem, elemPath); err != nil {
			return err
		}
		val.SetMapIndex(key, elem)
	}
	return nil
}

func fromSlice(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.ArrayType {
		return shapeError(node, path, ir.ArrayType)
	}
	typ := val.Type()
	res := val
	if res.IsNil() {
		res = reflect.MakeSlice(typ, 0, len(node.Values))
	}
	n := res.Len()
	for i, v := range node.Values {
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromIR(v, elem, indexPath(path, n+i)); err != nil {
			return err
		}
		res = reflect.Append(res, elem)
	}
	val.Set(res)
	return nil
}

func fromArray(node *ir.Node, val reflect.Value, path string) error {
	if node.Type != ir.ArrayType {
		return shapeError(node, path, ir.ArrayType)
	}
	if len(node.Values) > val.Len() {
		return &DecodeError{
			FieldPath: path,
			Message:   fmt.Sprintf("array of %d elements does not fit in %s", len(node.Values), val.Type()),
		}
	}
	for i := range val.Len() {
		elem := val.Index(i)
		if i >= len(node.Values) {
			elem.SetZero()
			continue
		}
		if err := fromIR(node.Values[i], elem, indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

type decodeProcessor struct {
	node *ir.Node
	path string
}

func (d *decodeProcessor) Field(f refl.Field, lhs, _ reflect.Value) error {
	member := ir.Get(d.node, f.Name)
	if member == nil {
		if debug.Decode() {
			debug.Log().Debug("absent member reset", slog.String("path", fieldPath(d.path, f.Name)))
		}
		lhs.SetZero()
		return nil
	}
	return fromIR(member, lhs, fieldPath(d.path, f.Name))
}

func fromStruct(node *ir.Node, val reflect.Value, path string) error {
	if _, err := refl.Fields(val.Type()); err != nil {
		return &DecodeError{FieldPath: path, Message: err.Error(), Err: err}
	}
	if node.Type != ir.ObjectType {
		return shapeError(node, path, ir.ObjectType)
	}
	return refl.ReflectValue(&decodeProcessor{node: node, path: path}, val, reflect.Value{})
}

// fromInterface decodes into an empty interface as generic values:
// map[string]any, []any, int64, uint64, float64, string, bool and nil.
func fromInterface(node *ir.Node, val reflect.Value, path string) error {
	if node.Type == ir.NullType {
		val.SetZero()
		return nil
	}
	if val.Type().NumMethod() != 0 {
		return &DecodeError{FieldPath: path, Message: fmt.Sprintf("cannot decode into non-empty interface %s", val.Type())}
	}
	v, err := toGeneric(node, path)
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(&v).Elem())
	return nil
}

func toGeneric(node *ir.Node, path string) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		}
		if u, err := strconv.ParseUint(node.Number, 10, 64); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return nil, &DecodeError{FieldPath: path, Message: "bad number " + node.Number, Err: err}
		}
		return f, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toGeneric(v, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.ObjectType:
		res := make(map[string]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toGeneric(v, fieldPath(path, node.Fields[i].String))
			if err != nil {
				return nil, err
			}
			res[node.Fields[i].String] = x
		}
		return res, nil
	}
	return nil, &DecodeError{FieldPath: path, Message: fmt.Sprintf("unknown node type %d", node.Type)}
}
