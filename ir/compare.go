package ir

import (
	"cmp"
	"math/big"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case ArrayType:
		return 5
	case ObjectType:
		return 6
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return cmp.Compare(*a.Int64, *b.Int64)
	case a.Float64 != nil && b.Float64 != nil:
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	// mixed carriers, or integers beyond int64
	x, y := numberRat(a), numberRat(b)
	if x == nil || y == nil {
		return strings.Compare(a.Number, b.Number)
	}
	return x.Cmp(y)
}

func numberRat(n *Node) *big.Rat {
	r := new(big.Rat)
	switch {
	case n.Int64 != nil:
		return r.SetInt64(*n.Int64)
	case n.Float64 != nil:
		if res := r.SetFloat64(*n.Float64); res != nil {
			return res
		}
		return nil
	}
	if res, ok := r.SetString(n.Number); ok {
		return res
	}
	return nil
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareObjects compares members pairwise in order, key before value.
func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// Equal reports whether a and b hold the same document.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// Compare is Compare(y, o) as a method, so that generic comparison of
// values holding nodes orders them as documents.
func (y *Node) Compare(o *Node) int {
	return Compare(y, o)
}

func (y *Node) Equal(o *Node) bool {
	return Compare(y, o) == 0
}
