package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"

	"github.com/tidwall/jsonc"
)

func parseJSON(d []byte, opts *parseOpts) (*ir.Node, error) {
	if opts.comments {
		d = jsonc.ToJSON(d)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := parseJSONValue(dec)
	if err != nil {
		return nil, jsonError(dec, err)
	}
	tok, err := dec.Token()
	if err == io.EOF {
		return res, nil
	}
	if err == nil {
		err = fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return nil, jsonError(dec, err)
}

func parseJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(x.String())
	case json.Delim:
		switch x {
		case '{':
			return parseJSONObject(dec)
		case '[':
			return parseJSONArray(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseJSONObject(dec *json.Decoder) (*ir.Node, error) {
	kvs := []ir.KeyVal{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", tok)
		}
		val, err := parseJSONValue(dec)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func parseJSONArray(dec *json.Decoder) (*ir.Node, error) {
	vals := []*ir.Node{}
	for dec.More() {
		val, err := parseJSONValue(dec)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return ir.FromSlice(vals), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}

// jsonError converts decoder failures to *Error. The token reader reports
// io.EOF inside an unfinished value, so any EOF here is unexpected.
func jsonError(dec *json.Decoder, err error) error {
	res := &Error{Format: format.JSONFormat, Offset: dec.InputOffset(), Err: err}
	var synErr *json.SyntaxError
	switch {
	case errors.As(err, &synErr):
		res.Offset = synErr.Offset
		res.Msg = synErr.Error()
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		res.Msg = "unexpected end of input"
		res.Err = io.ErrUnexpectedEOF
	default:
		res.Msg = err.Error()
	}
	return res
}
