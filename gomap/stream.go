package gomap

import (
	"bytes"
	"io"
	"strings"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/parse"
)

// ReadStream reads one whole document from r and decodes it into v. Parse
// failures are returned as they come from parse, so they match
// parse.ErrParse.
func ReadStream(r io.Reader, v any, opts ...UnmapOption) error {
	node, err := parse.ParseReader(r, ToParseOptions(opts...)...)
	if err != nil {
		return err
	}
	return FromIR(node, v)
}

// WriteStream encodes v and writes the document to w, pretty printed or
// compact.
func WriteStream(w io.Writer, v any, pretty bool, opts ...MapOption) error {
	node, err := ToIR(v)
	if err != nil {
		return err
	}
	opts = append(opts[:len(opts):len(opts)], Pretty(pretty))
	return encode.Encode(node, w, ToEncodeOptions(opts...)...)
}

// ToText returns the document for v, compact unless Pretty(true) is among
// opts.
func ToText(v any, opts ...MapOption) (string, error) {
	d, err := ToBytes(v, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func ToBytes(v any, opts ...MapOption) ([]byte, error) {
	node, err := ToIR(v)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, ToEncodeOptions(opts...)...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func FromText(s string, v any, opts ...UnmapOption) error {
	return ReadStream(strings.NewReader(s), v, opts...)
}

func FromBytes(d []byte, v any, opts ...UnmapOption) error {
	node, err := parse.Parse(d, ToParseOptions(opts...)...)
	if err != nil {
		return err
	}
	return FromIR(node, v)
}
