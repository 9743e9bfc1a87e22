package parse

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/refl/debug"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"
)

// Parse parses one document from d. Malformed input yields an *Error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	var (
		res *ir.Node
		err error
	)
	switch pOpts.format {
	case format.JSONFormat:
		res, err = parseJSON(d, pOpts)
	case format.YAMLFormat:
		res, err = parseYAML(d)
	case format.CBORFormat:
		res, err = parseCBOR(d)
	default:
		return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, pOpts.format)
	}
	if debug.Parse() {
		debug.Log().Debug("parse", slog.String("format", pOpts.format.String()),
			slog.Int("bytes", len(d)), slog.Any("error", err))
	}
	return res, err
}

// ParseReader reads r to the end and parses the result as one document.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}
