// Package encode writes [ir.Node] trees as JSON, YAML or CBOR.
//
// JSON output is either pretty printed, one member or element per line, or
// compact with EncodeWire(true). Empty objects and arrays are always
// written as {} and []. Non-finite floats cannot be encoded and yield
// [ErrEncoding].
//
// CBOR output uses core deterministic encoding, so object members are
// written in canonical key order rather than tree order.
package encode
