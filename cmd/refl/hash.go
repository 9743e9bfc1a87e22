package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/signadot/refl/ir"

	"github.com/scott-cotton/cli"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range inputs(args) {
		docs, err := getDocs(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		if err := writeDigests(cc.Out, arg, docs); err != nil {
			return err
		}
	}
	return nil
}

// writeDigests writes one "digest  name" line per document.
func writeDigests(w io.Writer, name string, docs []*ir.Node) error {
	for _, doc := range docs {
		sum := doc.Digest()
		if _, err := fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(sum[:]), name); err != nil {
			return err
		}
	}
	return nil
}
