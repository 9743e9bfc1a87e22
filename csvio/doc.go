// Package csvio flattens structs into CSV lines.
//
// A title line names every leaf column, nested struct fields being joined
// to their parent's name with an underscore. Data lines hold leaf values in
// the same order. Slices and maps take one cell each, holding their compact
// JSON text, and a nil pointer leaves as many empty cells as the value it
// points to would fill.
package csvio
