// Package format names the document formats understood by the parse and
// encode packages.
package format
