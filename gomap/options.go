package gomap

import (
	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/parse"
)

// MapOption controls mapping from Go values to documents.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption controls mapping from documents to Go values.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

type mapConfig struct {
	EncodeOptions []encode.EncodeOption
	Pretty        bool
}

type unmapConfig struct {
	ParseOptions []parse.ParseOption
}

func newMapConfig(opts ...MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	return cfg
}

func newUnmapConfig(opts ...UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	return cfg
}

// ToEncodeOptions extracts EncodeOptions from a slice of MapOptions. The
// layout follows Pretty: compact unless Pretty(true) was given.
func ToEncodeOptions(opts ...MapOption) []encode.EncodeOption {
	cfg := newMapConfig(opts...)
	res := []encode.EncodeOption{encode.EncodeWire(!cfg.Pretty)}
	return append(res, cfg.EncodeOptions...)
}

// ToParseOptions extracts ParseOptions from a slice of UnmapOptions.
func ToParseOptions(opts ...UnmapOption) []parse.ParseOption {
	return newUnmapConfig(opts...).ParseOptions
}

type encodeOptions []encode.EncodeOption

func (o encodeOptions) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, o...)
}

// WithEncodeOptions passes opts through to encode.Encode.
func WithEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptions(opts)
}

type parseOptions []parse.ParseOption

func (o parseOptions) applyUnmap(c *unmapConfig) {
	c.ParseOptions = append(c.ParseOptions, o...)
}

// WithParseOptions passes opts through to parse.Parse.
func WithParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptions(opts)
}

type prettyOption bool

func (o prettyOption) applyMap(c *mapConfig) {
	c.Pretty = bool(o)
}

func Pretty(v bool) MapOption {
	return prettyOption(v)
}

// FormatOption selects the document format in both directions.
type FormatOption format.Format

func (o FormatOption) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, encode.EncodeFormat(format.Format(o)))
}

func (o FormatOption) applyUnmap(c *unmapConfig) {
	c.ParseOptions = append(c.ParseOptions, parse.ParseFormat(format.Format(o)))
}

func Format(f format.Format) FormatOption {
	return FormatOption(f)
}
