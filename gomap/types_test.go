package gomap

import (
	"net/netip"
	"time"

	"github.com/signadot/refl/ir"
)

type Basic struct {
	Opt1 *int     `refl:"opt1"`
	Opt2 *float64 `refl:"opt2"`
}

type Leaves struct {
	B   bool    `refl:"b"`
	I8  int8    `refl:"i8"`
	I   int     `refl:"i"`
	U16 uint16  `refl:"u16"`
	U64 uint64  `refl:"u64"`
	F32 float32 `refl:"f32"`
	F64 float64 `refl:"f64"`
	S   string  `refl:"s"`
}

type Meta struct {
	ID      int       `refl:"id"`
	Created time.Time `refl:"created"`
}

type Everything struct {
	Meta
	Name    string                    `refl:"name"`
	Leaves  Leaves                    `refl:"leaves"`
	Basic   *Basic                    `refl:"basic"`
	Flags   []bool                    `refl:"flags"`
	Items   []*Basic                  `refl:"items"`
	ByKey   map[string][]*Basic       `refl:"by_key"`
	Addrs   map[netip.Addr]string     `refl:"addrs"`
	Fixed   [3]int                    `refl:"fixed"`
	Nested  map[string]map[string]int `refl:"nested"`
	Ignored string                    `refl:"-"`
	Raw     *ir.Node                  `refl:"raw"`
}

type loop struct {
	Name string `refl:"name"`
	Next *loop  `refl:"next"`
}

type upper string

func (u *upper) FromIR(node *ir.Node) error {
	*u = upper("<" + node.String + ">")
	return nil
}

func (u upper) ToIR() (*ir.Node, error) {
	return ir.FromString(string(u) + "!"), nil
}

type hooked struct {
	U upper `refl:"u"`
}

func ptr[T any](v T) *T { return &v }

func everything() Everything {
	return Everything{
		Meta: Meta{ID: 9, Created: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		Name: "all",
		Leaves: Leaves{
			B: true, I8: -8, I: 1 << 40, U16: 65535, U64: 1<<64 - 1,
			F32: 1.5, F64: -2.25, S: "s\"q",
		},
		Basic: &Basic{Opt2: ptr(3.5)},
		Flags: []bool{true, false, true},
		Items: []*Basic{{Opt1: ptr(1)}, nil, {Opt2: ptr(0.0)}},
		ByKey: map[string][]*Basic{
			"a": {{Opt1: ptr(2)}},
			"b": {},
		},
		Addrs:  map[netip.Addr]string{netip.MustParseAddr("10.0.0.1"): "x"},
		Fixed:  [3]int{1, 2, 3},
		Nested: map[string]map[string]int{"n": {"m": 4}},
		Raw:    ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("two")}),
	}
}
