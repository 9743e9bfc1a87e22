package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/ir"
	"github.com/signadot/refl/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	patchNode, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return err
	}
	patchJSON, err := wireJSON(patchNode)
	if err != nil {
		return err
	}
	apply := func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, patchJSON)
	}
	if !cfg.Merge {
		ops, err := jsonpatch.DecodePatch(patchJSON)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", cli.ErrUsage, args[0], err)
		}
		apply = ops.Apply
	}
	files := args[1:]
	if len(files) == 0 {
		if args[0] == "-" {
			return fmt.Errorf("%w: patch and document cannot both be stdin", cli.ErrUsage)
		}
		files = []string{"-"}
	}
	first := true
	for _, arg := range files {
		docs, err := getDocs(cc, arg, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			out, err := patchDoc(doc, apply)
			if err != nil {
				return fmt.Errorf("error patching %s document %d: %w", arg, i, err)
			}
			if err := cfg.writeDoc(cc.Out, out, first); err != nil {
				return err
			}
			first = false
		}
	}
	return nil
}

func patchDoc(doc *ir.Node, apply func([]byte) ([]byte, error)) (*ir.Node, error) {
	d, err := wireJSON(doc)
	if err != nil {
		return nil, err
	}
	d, err = apply(d)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, parse.ParseJSON())
}

func wireJSON(node *ir.Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encode.Encode(node, buf, encode.EncodeFormat(format.JSONFormat), encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
