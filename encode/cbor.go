package encode

import (
	"fmt"
	"io"

	"github.com/signadot/refl/ir"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: invalid CBOR encode options: " + err.Error())
	}
}

func encodeCBOR(node *ir.Node, w io.Writer) error {
	v, err := toAny(node, false)
	if err != nil {
		return err
	}
	d, err := encMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}
