package ir

import (
	"encoding/binary"
	"hash"

	"github.com/zeebo/blake3"
)

// Digest returns a blake3-256 digest of the document rooted at n. Nodes
// that Compare equal have equal digests: numbers are hashed by value, not
// by carrier or source text.
// It panics if n is nil.
func (n *Node) Digest() [32]byte {
	if n == nil {
		panic("ir: Digest called on nil node")
	}
	h := blake3.New()
	n.Visit(func(y *Node, isPost bool) (bool, error) {
		if !isPost {
			digestNode(h, y)
		}
		return true, nil
	})
	var res [32]byte
	copy(res[:], h.Sum(nil))
	return res
}

// digestNode hashes y without its children. Objects hash their member
// names up front; the values follow in the same order during the visit.
func digestNode(h hash.Hash, y *Node) {
	h.Write([]byte{byte(y.Type)})
	switch y.Type {
	case NullType:
	case BoolType:
		if y.Bool {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case NumberType:
		if r := numberRat(y); r != nil {
			writeString(h, r.RatString())
		} else {
			writeString(h, y.Number)
		}
	case StringType:
		writeString(h, y.String)
	case ArrayType:
		writeLen(h, len(y.Values))
	case ObjectType:
		writeLen(h, len(y.Fields))
		for _, field := range y.Fields {
			writeString(h, field.String)
		}
	}
}

func writeLen(h hash.Hash, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	h.Write(b[:])
}

func writeString(h hash.Hash, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}
