package main

import (
	"fmt"
	"io"

	"github.com/signadot/refl/ir"
	"github.com/signadot/refl/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	from, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	to, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	differ, err := writeDiff(cc.Out, from, to, cfg.colorOn(cc.Out), cfg.Quiet)
	if err != nil {
		return err
	}
	return diffExit(differ)
}

// diffExit makes the command exit 1 when the documents differ.
func diffExit(differ bool) error {
	if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeDiff writes the changes from from to to, unless quiet, and reports
// whether there were any.
func writeDiff(w io.Writer, from, to *ir.Node, pretty, quiet bool) (bool, error) {
	changes := libdiff.DiffNodes(from, to)
	if len(changes) == 0 {
		return false, nil
	}
	if quiet {
		return true, nil
	}
	_, err := io.WriteString(w, libdiff.Format(changes, pretty))
	return true, err
}
