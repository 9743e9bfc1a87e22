package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/format"
	"github.com/signadot/refl/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/klauspost/compress/zstd"
	"github.com/scott-cotton/cli"
)

func TestPatchDoc(t *testing.T) {
	doc, err := parse.Parse([]byte(`{"a": 1, "b": [1, 2]}`))
	if err != nil {
		t.Fatal(err)
	}
	ops, err := jsonpatch.DecodePatch([]byte(`[{"op":"add","path":"/b/-","value":3},{"op":"remove","path":"/a"}]`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := patchDoc(doc, ops.Apply)
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(out); got != `{"b":[1,2,3]}` {
		t.Errorf("got %s", got)
	}
	merge := func(d []byte) ([]byte, error) {
		return jsonpatch.MergePatch(d, []byte(`{"a":null,"c":"x"}`))
	}
	out, err = patchDoc(doc, merge)
	if err != nil {
		t.Fatal(err)
	}
	if got := encode.MustString(out); got != `{"b":[1,2],"c":"x"}` {
		t.Errorf("got %s", got)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refl.yaml")
	if err := os.WriteFile(path, []byte("format: yaml\nwire: true\nindent: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{}
	if _, err := cfg.configOpt(nil, path); err != nil {
		t.Fatal(err)
	}
	if cfg.File.Format == nil || *cfg.File.Format != format.YAMLFormat {
		t.Errorf("format %v", cfg.File.Format)
	}
	if !cfg.File.Wire {
		t.Error("wire not set")
	}
	if cfg.File.Indent == nil || *cfg.File.Indent != 2 {
		t.Errorf("indent %v", cfg.File.Indent)
	}
	if cfg.File.Color != nil {
		t.Error("color set")
	}
	if got := cfg.outFormat(); got != format.YAMLFormat {
		t.Errorf("out format %s", got)
	}
}

func TestConfigFileBad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refl.json")
	if err := os.WriteFile(path, []byte(`{"indent": "two"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{}
	if _, err := cfg.configOpt(nil, path); err == nil {
		t.Error("expected error")
	}
}

func TestConfigFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refl.cbor")
	if err := os.WriteFile(path, []byte{0xa0}, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{}
	if _, err := cfg.configOpt(nil, path); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("got %v", err)
	}
}

func formatCfg(f format.Format) *MainConfig {
	return &MainConfig{InFormat: &f, OutFormat: &f}
}

func TestFmtMultiDoc(t *testing.T) {
	for _, f := range []format.Format{format.JSONFormat, format.YAMLFormat} {
		t.Run(f.String(), func(t *testing.T) {
			cfg := formatCfg(f)
			docs, err := readDocs([]byte("---\n{\"a\": 1}\n---\n[true]\n---\n\"s\"\n"), "in", parse.ParseJSON())
			if err != nil {
				t.Fatal(err)
			}
			if len(docs) != 3 {
				t.Fatalf("got %d docs", len(docs))
			}
			buf := &bytes.Buffer{}
			for i, doc := range docs {
				if err := cfg.writeDoc(buf, doc, i == 0); err != nil {
					t.Fatal(err)
				}
			}
			back, err := readDocs(buf.Bytes(), "out", cfg.parseOpts()...)
			if err != nil {
				t.Fatalf("%v\n%s", err, buf.String())
			}
			if len(back) != len(docs) {
				t.Fatalf("got %d docs back from\n%s", len(back), buf.String())
			}
			for i := range docs {
				if got, want := encode.MustString(back[i]), encode.MustString(docs[i]); got != want {
					t.Errorf("doc %d: got %s want %s", i, got, want)
				}
			}
		})
	}
}

func TestWriteDiff(t *testing.T) {
	from, err := parse.Parse([]byte(`{"a": 1, "b": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	to, err := parse.Parse([]byte(`{"a": 2, "b": "x"}`))
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	differ, err := writeDiff(buf, from, from, false, false)
	if err != nil || differ || buf.Len() != 0 {
		t.Errorf("same documents: differ=%v err=%v out=%q", differ, err, buf.String())
	}
	if err := diffExit(differ); err != nil {
		t.Errorf("exit for same documents: %v", err)
	}
	differ, err = writeDiff(buf, from, to, false, false)
	if err != nil || !differ {
		t.Fatalf("differ=%v err=%v", differ, err)
	}
	if !strings.Contains(buf.String(), "$.a") {
		t.Errorf("got %q", buf.String())
	}
	if err := diffExit(differ); err == nil {
		t.Error("no exit error for differing documents")
	}
	buf.Reset()
	if differ, _ := writeDiff(buf, from, to, false, true); !differ || buf.Len() != 0 {
		t.Errorf("quiet: differ=%v out=%q", differ, buf.String())
	}
}

func TestWriteDigests(t *testing.T) {
	docs, err := readDocs([]byte("{\"n\": 3}\n---\n{\"n\": 3.0}\n---\n{\"n\": 4}"), "in", parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := writeDigests(buf, "in", docs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "  in") || len(lines[0]) != 64+4 {
		t.Errorf("bad line %q", lines[0])
	}
	if lines[0] != lines[1] {
		t.Errorf("3 and 3.0 hash differently")
	}
	if lines[0] == lines[2] {
		t.Errorf("3 and 4 hash the same")
	}
}

func TestZstdStreams(t *testing.T) {
	compressed := &bytes.Buffer{}
	zw, err := zstd.NewWriter(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(zw, `{"a": [1, 2]}`); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	in, w, err := zstdStreams(compressed, out)
	if err != nil {
		t.Fatal(err)
	}
	d, err := io.ReadAll(in)
	if err != nil {
		t.Fatal(err)
	}
	in.Close()
	docs, err := readDocs(d, "-", parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	cfg := &MainConfig{WireOut: true}
	if err := cfg.writeDoc(w, docs[0], true); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := zstd.NewReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(plain); got != "{\"a\":[1,2]}\n" {
		t.Errorf("got %q", got)
	}
}

func TestReadZstFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(zw, `{"ok": true}`); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	d, err := readFile(nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"ok": true}` {
		t.Errorf("got %q", d)
	}
}
