// Package refl drives operations on Go values from their type declarations.
//
// A struct's field list, derived by reflection, is handed one field at a
// time to a [Processor]. Names come from the `refl` struct tag when present
// and from the Go field name otherwise; `refl:"-"` and unexported fields are
// left out. An embedded struct without a tag name is a chained base: its
// fields are enumerated in place, at the position the embedding field is
// declared.
//
// Processors which embed [Paired] walk two objects of the same type in
// step, which is how [Equal], [Less] and [Compare] work. Other processors
// see one object.
//
// [Classify] puts every type in one [Category]. Leaves are basic kinds and
// types which convert to text in the requested [Direction]; after that come
// pointers (optional), maps keyed by strings or text (keyed map), slices
// and arrays (sequence), and composites.
package refl
