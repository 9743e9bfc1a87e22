// Package gomap maps Go values to and from documents.
//
// The mapping is driven by the field lists of package refl, so struct tags
// of the form `refl:"name"` rename members and `refl:"-"` drops them.
// Decoding is strict about shape: a member whose document type does not
// fit the Go type yields a [*DecodeError] naming the field path, such as
// items[3].name. A declared field with no member in the document is reset
// to its zero value, so decoding into a used value never leaves stale data
// behind in struct fields. Maps and slices are the exception: maps keep
// entries that the document does not mention and slices are appended to.
//
// Pointers are optional values and encode as null when nil. Types can take
// over their own mapping by implementing [IRFromer] and [IRToer].
//
//	var c Config
//	err := gomap.FromText(`{"opt1":null,"opt2":341}`, &c)
//	text, err := gomap.ToText(c)               // compact
//	text, err = gomap.ToText(c, gomap.Pretty(true))
package gomap
