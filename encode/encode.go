package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/refl/debug"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	newline       bool

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w in the selected format. JSON is the default and
// is pretty printed with 4 space indentation unless EncodeWire(true) is
// given.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 4,
	}
	for _, opt := range opts {
		opt(es)
	}
	if debug.Encode() {
		debug.Log().Debug("encode", slog.String("format", es.format.String()),
			slog.Bool("wire", es.wire), slog.String("root", node.Type.String()))
	}
	var err error
	switch es.format {
	case format.JSONFormat:
		err = encodeJSON(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	case format.CBORFormat:
		return encodeCBOR(node, w)
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
	if err != nil {
		return err
	}
	if es.newline {
		return writeString(w, "\n")
	}
	return nil
}

// MustString encodes node as compact JSON and panics on error. It is meant
// for tests and debugging output.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeWire(true)); err != nil {
		panic(err)
	}
	return buf.String()
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return writeColored(w, es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		text, err := NumberText(node)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.NumberType, ValueColor, text)
	case ir.StringType:
		q, err := quote(node.String)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.StringType, ValueColor, q)
	case ir.ArrayType:
		return encodeJSONArray(node, w, es)
	case ir.ObjectType:
		return encodeJSONObject(node, w, es)
	}
	return fmt.Errorf("%w: unknown node type %d at %s", ErrEncoding, node.Type, node.Path())
}

func encodeJSONArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeColored(w, es, ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeColored(w, es, ir.ArrayType, SepColor, "]")
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeColored(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeIndent(w, es); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeIndent(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ArrayType, SepColor, "]")
}

func encodeJSONObject(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeColored(w, es, ir.ObjectType, SepColor, "{"); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeColored(w, es, ir.ObjectType, SepColor, "}")
	}
	es.depth++
	sep := ": "
	if es.wire {
		sep = ":"
	}
	for i, v := range node.Values {
		if i > 0 {
			if err := writeColored(w, es, ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeIndent(w, es); err != nil {
			return err
		}
		q, err := quote(node.Fields[i].String)
		if err != nil {
			return err
		}
		if err := writeColored(w, es, ir.ObjectType, FieldColor, q); err != nil {
			return err
		}
		if err := writeColored(w, es, ir.ObjectType, SepColor, sep); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeIndent(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ObjectType, SepColor, "}")
}

// NumberText returns the literal for a number node, preferring the
// promoted carriers over the source text.
func NumberText(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: non-finite number %v at %s", ErrEncoding, f, node.Path())
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number without value at %s", ErrEncoding, node.Path())
}

func quote(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func writeIndent(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func writeColored(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
