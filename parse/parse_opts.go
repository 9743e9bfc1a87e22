package parse

import (
	"github.com/signadot/refl/format"
)

type parseOpts struct {
	format   format.Format
	comments bool
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseCBOR() ParseOption {
	return ParseFormat(format.CBORFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseComments allows // and /* */ comments and trailing commas in JSON
// input. It has no effect on other formats.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// FormatFromOpts extracts the format from parse options.
func FormatFromOpts(opts ...ParseOption) format.Format {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.format
}
