package main

import (
	"fmt"
	"io"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/ir"

	"github.com/scott-cotton/cli"
)

func fmtMain(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	first := true
	for _, arg := range inputs(args) {
		docs, err := getDocs(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := cfg.writeDoc(cc.Out, doc, first); err != nil {
				return fmt.Errorf("error encoding %s: %w", arg, err)
			}
			first = false
		}
	}
	return nil
}

// writeDoc encodes doc to w. In text formats, documents after the first are
// preceded by a "---" line so the output splits back into the same
// documents. Binary output is written back to back.
func (cfg *MainConfig) writeDoc(w io.Writer, doc *ir.Node, first bool) error {
	if !first && !cfg.outFormat().IsBinary() {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	return encode.Encode(doc, w, cfg.encOpts(w)...)
}
