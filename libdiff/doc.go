// Package libdiff lists the differences between two values, either typed
// Go values walked field by field or parsed documents.
//
// Each [Change] names the location with a path like $.items[2].name and
// carries the compact JSON text of both sides. Strings also carry a
// character level diff from diffmatchpatch.
package libdiff
