package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/gomap"
	"github.com/signadot/refl/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='encode with color'"`
	WireOut  bool `cli:"name=wire desc='output in compact format'"`
	Comments bool `cli:"name=comments desc='allow comments and trailing commas in json input'"`
	Z        bool `cli:"name=z aliases=zstd desc='zstd compressed stdin and output'"`
	Verbose  bool `cli:"name=v desc='log progress to stderr'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	C bool `cli:"name=c aliases=cbor desc='do i/o in cbor'"`

	InFormat, OutFormat *format.Format

	File FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig holds defaults read with -config from a json or yaml file.
type FileConfig struct {
	Format   *format.Format `refl:"format"`
	Wire     bool           `refl:"wire"`
	Indent   *int           `refl:"indent"`
	Color    *bool          `refl:"color"`
	Comments bool           `refl:"comments"`
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	d, err := os.ReadFile(a)
	if err != nil {
		return nil, err
	}
	fmat, ok := format.FromSuffix(filepath.Ext(a))
	if !ok {
		fmat = format.JSONFormat
	}
	if !fmat.IsJSON() && !fmat.IsYAML() {
		return nil, fmt.Errorf("%w: config %s must be json or yaml", cli.ErrUsage, a)
	}
	if err := gomap.FromBytes(d, &cfg.File, gomap.Format(fmat), gomap.WithParseOptions(parse.ParseComments(true))); err != nil {
		return nil, fmt.Errorf("%w: config %s: %w", cli.ErrUsage, a, err)
	}
	theLog.Info("loaded config", "file", a)
	return nil, nil
}

func (cfg *MainConfig) ioFormat() (format.Format, bool) {
	switch {
	case cfg.J:
		return format.JSONFormat, true
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.C:
		return format.CBORFormat, true
	}
	if cfg.File.Format != nil {
		return *cfg.File.Format, true
	}
	return format.JSONFormat, false
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	fmat, _ := cfg.ioFormat()
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	return []parse.ParseOption{
		parse.ParseFormat(fmat),
		parse.ParseComments(cfg.Comments || cfg.File.Comments),
	}
}

func (cfg *MainConfig) outFormat() format.Format {
	fmat, _ := cfg.ioFormat()
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := cfg.outFormat()
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut || cfg.File.Wire),
		encode.EncodeNewline(!fmat.IsBinary()),
	}
	if cfg.File.Indent != nil {
		res = append(res, encode.EncodeIndent(*cfg.File.Indent))
	}
	if !fmat.IsBinary() && cfg.colorOn(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorOn reports whether output to w is colored: an explicit -color wins,
// then the config file, then whether w is a terminal.
func (cfg *MainConfig) colorOn(w io.Writer) bool {
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return cfg.Color
			}
		}
	}
	if cfg.File.Color != nil {
		return *cfg.File.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report through the exit code'"`
	Diff  *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='treat the patch as an RFC 7386 merge patch'"`
	Patch *cli.Command
}

type HashConfig struct {
	*MainConfig
	Hash *cli.Command
}
