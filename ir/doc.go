// Package ir provides the document tree shared by the parsers, the encoders
// and the Go value codec.
//
// # Node Structure
//
// A Node represents a single value in a document. Nodes can be:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array (ordered list)
//
// Each node maintains a link to its parent, allowing navigation through
// the tree and rendering of paths such as $.items[2].name.
//
// The tree works as a recursive tagged union, where values are placed
// in fields depending on the node type:
//
//   - NullType: no payload
//   - BoolType: Bool
//   - NumberType: Number (source text), Int64 or Float64
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields (string key nodes) and Values, index aligned
//
// # Related Packages
//
//   - github.com/signadot/refl/parse - parse text to trees
//   - github.com/signadot/refl/encode - encode trees to text
//   - github.com/signadot/refl/gomap - map Go values to and from trees
package ir
