package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Kind int

const (
	Replace Kind = iota
	Insert
	Delete
)

func (k Kind) String() string {
	switch k {
	case Replace:
		return "replace"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "kind(?)"
}

// Change is one difference between two values. From and To hold compact
// JSON text; From is empty for an insert and To for a delete. When both
// sides are strings Edits has their character level diff.
type Change struct {
	Path  string
	Kind  Kind
	From  string
	To    string
	Edits []diffpatch.Diff
}

func (c *Change) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("%s: + %s", c.Path, c.To)
	case Delete:
		return fmt.Sprintf("%s: - %s", c.Path, c.From)
	}
	return fmt.Sprintf("%s: %s -> %s", c.Path, c.From, c.To)
}

// Pretty renders c for a terminal, with string edits colored inline.
func (c *Change) Pretty() string {
	if c.Kind != Replace || len(c.Edits) == 0 {
		return c.String()
	}
	return fmt.Sprintf("%s: %s", c.Path, diffpatch.New().DiffPrettyText(c.Edits))
}

// Format writes one change per line.
func Format(changes []Change, pretty bool) string {
	b := &strings.Builder{}
	for i := range changes {
		if pretty {
			b.WriteString(changes[i].Pretty())
		} else {
			b.WriteString(changes[i].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func stringEdits(from, to string) []diffpatch.Diff {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, multiLine)
	return dmp.DiffCleanupSemantic(diffs)
}
