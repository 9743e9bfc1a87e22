package parse

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"math/big"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &Error{Format: format.YAMLFormat, Offset: -1, Msg: yaml.FormatError(err, false, false), Err: err}
	}
	res, err := fromAny(v)
	if err != nil {
		return nil, &Error{Format: format.YAMLFormat, Offset: -1, Msg: err.Error(), Err: err}
	}
	return res, nil
}

var errUnsupported = errors.New("unsupported value")

// fromAny converts the generic values produced by the YAML and CBOR
// decoders into a document tree.
func fromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case []byte:
		return ir.FromString(string(x)), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromUint(x), nil
	case uint:
		return ir.FromUint(uint64(x)), nil
	case *big.Int:
		return ir.FromNumber(x.String())
	case big.Int:
		return ir.FromNumber(x.String())
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339Nano)), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			val, err := fromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(keyString(item.Key)), Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		return fromSortedMap(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[keyString(k)] = v
		}
		return fromSortedMap(m)
	case []any:
		vals := make([]*ir.Node, 0, len(x))
		for _, elt := range x {
			val, err := fromAny(elt)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return ir.FromSlice(vals), nil
	}
	return nil, fmt.Errorf("%w of type %T", errUnsupported, v)
}

func fromFloat(f float64) (*ir.Node, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite number %v", errUnsupported, f)
	}
	return ir.FromFloat(f), nil
}

func fromSortedMap(m map[string]any) (*ir.Node, error) {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]ir.KeyVal, 0, len(keys))
	for _, k := range keys {
		val, err := fromAny(m[k])
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(k), Val: val})
	}
	return ir.FromKeyVals(kvs), nil
}

func keyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(k)
}
