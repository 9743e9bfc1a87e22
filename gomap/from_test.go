package gomap

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/refl"
	"github.com/signadot/refl/ir"
	"github.com/signadot/refl/parse"
)

func TestFromIRLeaves(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want any
	}{
		{"string", ir.FromString("hello"), "hello"},
		{"int", ir.FromInt(42), 42},
		{"int8", ir.FromInt(-128), int8(-128)},
		{"uint64 max", ir.FromUint(math.MaxUint64), uint64(math.MaxUint64)},
		{"float64", ir.FromFloat(3.14), 3.14},
		{"float from int", ir.FromInt(3), 3.0},
		{"int from integral float", ir.FromFloat(1e3), 1000},
		{"bool", ir.FromBool(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val := reflect.New(reflect.TypeOf(tt.want))
			if err := FromIR(tt.node, val.Interface()); err != nil {
				t.Fatal(err)
			}
			if got := val.Elem().Interface(); got != tt.want {
				t.Errorf("got %v (%T) want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestFromIRShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		dst  any
		path string
	}{
		{"string for number", `{"opt2": "x"}`, &Basic{}, "opt2"},
		{"number for object", `7`, &Basic{}, ""},
		{"array for map", `{"by_key": []}`, &Everything{}, "by_key"},
		{"nested element", `{"items": [{}, {"opt1": true}]}`, &Everything{}, "items[1].opt1"},
		{"map member", `{"nested": {"n": {"m": "q"}}}`, &Everything{}, "nested.n.m"},
		{"int8 overflow", `{"leaves": {"i8": 300}}`, &Everything{}, "leaves.i8"},
		{"negative unsigned", `{"leaves": {"u16": -1}}`, &Everything{}, "leaves.u16"},
		{"fractional int", `{"leaves": {"i": 1.5}}`, &Everything{}, "leaves.i"},
		{"array too long", `{"fixed": [1, 2, 3, 4]}`, &Everything{}, "fixed"},
		{"bad text", `{"addrs": {"nope": "x"}}`, &Everything{}, "addrs.nope"},
		{"bad time", `{"created": "yesterday"}`, &Everything{}, "created"},
		{"null for leaf", `{"name": null}`, &Everything{}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromText(tt.doc, tt.dst)
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if decErr.FieldPath != tt.path {
				t.Errorf("got path %q want %q (%v)", decErr.FieldPath, tt.path, err)
			}
		})
	}
}

func TestFromIRDestination(t *testing.T) {
	var b Basic
	for _, dst := range []any{nil, b, (*Basic)(nil)} {
		var decErr *DecodeError
		if err := FromIR(ir.Null(), dst); !errors.As(err, &decErr) {
			t.Errorf("%T: expected *DecodeError, got %v", dst, err)
		}
	}
}

func TestAbsentFieldReset(t *testing.T) {
	b := Basic{Opt1: ptr(100), Opt2: ptr(500.0)}
	if err := FromText(`{"opt1": null}`, &b); err != nil {
		t.Fatal(err)
	}
	if b.Opt1 != nil || b.Opt2 != nil {
		t.Errorf("got %+v", b)
	}

	e := everything()
	if err := FromText(`{"name": "only"}`, &e); err != nil {
		t.Fatal(err)
	}
	want := Everything{Name: "only"}
	if !refl.Equal(e, want) {
		t.Errorf("fields not reset: %+v", e)
	}
}

func TestDecodeNullOptional(t *testing.T) {
	b := Basic{Opt1: ptr(1)}
	if err := FromText(`{"opt1":null,"opt2":341}`, &b); err != nil {
		t.Fatal(err)
	}
	if b.Opt1 != nil {
		t.Errorf("opt1 should be absent, got %v", *b.Opt1)
	}
	if b.Opt2 == nil || *b.Opt2 != 341 {
		t.Errorf("opt2: got %v", b.Opt2)
	}
}

func TestMalformedInput(t *testing.T) {
	b := Basic{Opt1: ptr(5)}
	err := FromText("{not json}", &b)
	if !errors.Is(err, parse.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	var pErr *parse.Error
	if !errors.As(err, &pErr) {
		t.Fatalf("expected *parse.Error, got %T", err)
	}
	if b.Opt1 == nil || *b.Opt1 != 5 {
		t.Error("target modified on parse failure")
	}
}

func TestDecodeMapKeepsEntries(t *testing.T) {
	m := map[string]int{"old": 1, "x": 0}
	if err := FromText(`{"x": 2, "y": 3}`, &m); err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"old": 1, "x": 2, "y": 3}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeSliceAppends(t *testing.T) {
	s := []int{1}
	if err := FromText(`[2, 3]`, &s); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	err := FromText(`[4, "x"]`, &s)
	var decErr *DecodeError
	if !errors.As(err, &decErr) || decErr.FieldPath != "[4]" {
		t.Errorf("got %v", err)
	}
}

func TestDecodeArrayZeroesRest(t *testing.T) {
	a := [3]int{7, 8, 9}
	if err := FromText(`[1]`, &a); err != nil {
		t.Fatal(err)
	}
	if a != [3]int{1, 0, 0} {
		t.Errorf("got %v", a)
	}
}

func TestDecodeInterface(t *testing.T) {
	var v any
	if err := FromText(`{"a": [1, 2.5, "s", null, true]}`, &v); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": []any{int64(1), 2.5, "s", nil, true}}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeHook(t *testing.T) {
	var h hooked
	if err := FromText(`{"u": "x"}`, &h); err != nil {
		t.Fatal(err)
	}
	if h.U != "<x>" {
		t.Errorf("got %q", h.U)
	}
}

type dup struct {
	A int `refl:"a"`
	B int `refl:"a"`
}

func TestDecodeDeclarationError(t *testing.T) {
	err := FromText(`{"a": 1}`, &dup{})
	var declErr *refl.DeclarationError
	if !errors.As(err, &declErr) {
		t.Fatalf("expected *refl.DeclarationError, got %v", err)
	}
	if _, err := ToIR(dup{}); !errors.As(err, &declErr) {
		t.Fatalf("expected *refl.DeclarationError, got %v", err)
	}
}
