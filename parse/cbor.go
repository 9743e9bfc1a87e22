package parse

import (
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"

	"github.com/fxamacker/cbor/v2"
)

var decMode cbor.DecMode

func init() {
	var err error
	decMode, err = cbor.DecOptions{
		BigIntDec: cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("parse: invalid CBOR decode options: " + err.Error())
	}
}

func parseCBOR(d []byte) (*ir.Node, error) {
	var v any
	rest, err := decMode.UnmarshalFirst(d, &v)
	if err != nil {
		return nil, &Error{Format: format.CBORFormat, Offset: -1, Msg: err.Error(), Err: err}
	}
	if len(rest) != 0 {
		return nil, &Error{
			Format: format.CBORFormat,
			Offset: int64(len(d) - len(rest)),
			Msg:    "extra data after top-level value",
		}
	}
	res, err := fromAny(v)
	if err != nil {
		return nil, &Error{Format: format.CBORFormat, Offset: -1, Msg: err.Error(), Err: err}
	}
	return res, nil
}
