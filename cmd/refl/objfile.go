package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/refl/ir"
	"github.com/signadot/refl/parse"

	"github.com/klauspost/compress/zstd"
	"github.com/scott-cotton/cli"
)

var docSep = []byte("\n---\n")

// readFile reads path, or the command input when path is "-". Files named
// *.zst are decompressed.
func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		if strings.HasSuffix(path, ".zst") {
			zr, err := zstd.NewReader(f)
			if err != nil {
				return nil, err
			}
			defer zr.Close()
			r = zr
		}
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getDocs parses every document in path.
func getDocs(cc *cli.Context, path string, opts ...parse.ParseOption) ([]*ir.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	res, err := readDocs(d, path, opts...)
	if err != nil {
		return nil, err
	}
	theLog.Info("read", "file", path, "docs", len(res))
	return res, nil
}

// readDocs parses d. Text input may hold several documents separated by a
// "---" line; binary input is one document.
func readDocs(d []byte, name string, opts ...parse.ParseOption) ([]*ir.Node, error) {
	var parts [][]byte
	if parse.FormatFromOpts(opts...).IsBinary() {
		parts = [][]byte{d}
	} else {
		if bytes.HasPrefix(d, docSep[1:]) {
			d = d[len(docSep)-1:]
		}
		parts = bytes.Split(d, docSep)
	}
	res := make([]*ir.Node, 0, len(parts))
	for i, part := range parts {
		if len(bytes.TrimSpace(part)) == 0 {
			continue
		}
		node, err := parse.Parse(part, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s document %d: %w", name, i, err)
		}
		res = append(res, node)
	}
	return res, nil
}

func getObjFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Node, error) {
	docs, err := getDocs(cc, path, opts...)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%s: expected 1 document, got %d", path, len(docs))
	}
	return docs[0], nil
}

func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
