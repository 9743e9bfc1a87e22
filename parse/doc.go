// Package parse reads JSON, YAML and CBOR documents into [ir.Node] trees.
//
// JSON is the default format. Object members keep their input order, and
// numbers keep their literal text alongside the promoted carrier. Any
// malformed input, including trailing data after the first value, is
// reported as an [*Error] which matches [ErrParse] under errors.Is.
package parse
