package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/signadot/refl/ir"

	"github.com/goccy/go-yaml"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := toAny(node, true)
	if err != nil {
		return err
	}
	opts := []yaml.EncodeOption{yaml.Indent(es.indent)}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// toAny converts a document tree to generic values. With ordered set,
// objects become yaml.MapSlice so member order survives.
func toAny(node *ir.Node, ordered bool) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		return numberValue(node)
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toAny(v, ordered)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.ObjectType:
		if ordered {
			res := make(yaml.MapSlice, len(node.Values))
			for i, v := range node.Values {
				x, err := toAny(v, ordered)
				if err != nil {
					return nil, err
				}
				res[i] = yaml.MapItem{Key: node.Fields[i].String, Value: x}
			}
			return res, nil
		}
		res := make(map[string]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toAny(v, ordered)
			if err != nil {
				return nil, err
			}
			res[node.Fields[i].String] = x
		}
		return res, nil
	}
	return nil, fmt.Errorf("%w: unknown node type %d at %s", ErrEncoding, node.Type, node.Path())
}

func numberValue(node *ir.Node) (any, error) {
	switch {
	case node.Int64 != nil:
		return *node.Int64, nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: non-finite number %v at %s", ErrEncoding, f, node.Path())
		}
		return f, nil
	}
	u, err := strconv.ParseUint(node.Number, 10, 64)
	if err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(node.Number, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q at %s", ErrEncoding, node.Number, node.Path())
	}
	return f, nil
}
