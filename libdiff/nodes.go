package libdiff

import (
	"bytes"

	"github.com/signadot/refl/encode"
	"github.com/signadot/refl/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffNodes lists the changes taking document from to document to. Object
// members are matched by name and array elements by index.
func DiffNodes(from, to *ir.Node) []Change {
	return diffNodes(nil, "$", from, to)
}

func diffNodes(dst []Change, path string, from, to *ir.Node) []Change {
	if ir.Equal(from, to) {
		return dst
	}
	if from.Type != to.Type {
		return append(dst, replaceNodes(path, from, to))
	}
	switch from.Type {
	case ir.ObjectType:
		return diffObjects(dst, path, from, to)
	case ir.ArrayType:
		return diffArrays(dst, path, from, to)
	}
	return append(dst, replaceNodes(path, from, to))
}

func replaceNodes(path string, from, to *ir.Node) Change {
	c := Change{Path: path, Kind: Replace, From: text(from), To: text(to)}
	if from.Type == ir.StringType && to.Type == ir.StringType {
		c.Edits = stringEdits(from.String, to.String)
	}
	return c
}

func text(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return "<" + err.Error() + ">"
	}
	return buf.String()
}

// diffObjects maps each member name to a rune and diffs the rune strings,
// so deletes and inserts come out in document order.
func diffObjects(dst []Change, path string, from, to *ir.Node) []Change {
	fieldMap := map[string]rune{}
	runeMap := map[rune]string{}
	fromRunes := mapFieldsTo(fieldMap, runeMap, from)
	toRunes := mapFieldsTo(fieldMap, runeMap, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		for _, r := range diff.Text {
			name := runeMap[r]
			sub := path + ir.FieldSegment(name)
			switch diff.Type {
			case diffpatch.DiffDelete:
				dst = append(dst, Change{Path: sub, Kind: Delete, From: text(from.Values[fi])})
				fi++
			case diffpatch.DiffInsert:
				dst = append(dst, Change{Path: sub, Kind: Insert, To: text(to.Values[ti])})
				ti++
			case diffpatch.DiffEqual:
				dst = diffNodes(dst, sub, from.Values[fi], to.Values[ti])
				fi++
				ti++
			}
		}
	}
	return dst
}

func mapFieldsTo(fieldMap map[string]rune, runeMap map[rune]string, node *ir.Node) []rune {
	res := make([]rune, len(node.Fields))
	for i, f := range node.Fields {
		r, ok := fieldMap[f.String]
		if !ok {
			// skip surrogates, DiffMainRunes works on valid runes
			r = rune(len(fieldMap) + 1)
			if r >= 0xD800 {
				r += 0x800
			}
			fieldMap[f.String] = r
			runeMap[r] = f.String
		}
		res[i] = r
	}
	return res
}

func diffArrays(dst []Change, path string, from, to *ir.Node) []Change {
	n := min(len(from.Values), len(to.Values))
	for i := range n {
		dst = diffNodes(dst, path+ir.IndexSegment(i), from.Values[i], to.Values[i])
	}
	for i := n; i < len(from.Values); i++ {
		dst = append(dst, Change{Path: path + ir.IndexSegment(i), Kind: Delete, From: text(from.Values[i])})
	}
	for i := n; i < len(to.Values); i++ {
		dst = append(dst, Change{Path: path + ir.IndexSegment(i), Kind: Insert, To: text(to.Values[i])})
	}
	return dst
}
