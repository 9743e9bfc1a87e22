package refl

import (
	"bytes"
	"cmp"
	"encoding"
	"reflect"
	"slices"
	"strings"
)

// EqualProcessor is a paired processor which stops at the first field whose
// values differ. After enumeration Differs tells whether one did and At
// names it.
type EqualProcessor struct {
	Paired
	Differs bool
	At      string
}

func (e *EqualProcessor) Field(f Field, lhs, rhs reflect.Value) error {
	eq, err := equalValue(lhs, rhs)
	if err != nil {
		return err
	}
	if !eq {
		e.Differs = true
		e.At = f.Name
		return SkipRest
	}
	return nil
}

// LessProcessor is a paired processor deciding lhs < rhs on the first
// field whose values are unequal.
type LessProcessor struct {
	Paired
	Less bool
}

func (l *LessProcessor) Field(f Field, lhs, rhs reflect.Value) error {
	c, err := compareValue(lhs, rhs)
	if err != nil {
		return err
	}
	if c != 0 {
		l.Less = c < 0
		return SkipRest
	}
	return nil
}

type compareProcessor struct {
	Paired
	res int
}

func (c *compareProcessor) Field(_ Field, lhs, rhs reflect.Value) error {
	res, err := compareValue(lhs, rhs)
	if err != nil {
		return err
	}
	if res != 0 {
		c.res = res
		return SkipRest
	}
	return nil
}

// Equal reports whether a and b are equal field by field. It panics with a
// *DeclarationError when a struct involved declares duplicate names.
func Equal(a, b any) bool {
	eq, err := equalValue(reflect.ValueOf(a), reflect.ValueOf(b))
	if err != nil {
		panic(err)
	}
	return eq
}

// Less reports whether a orders before b. It panics like Equal.
func Less(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.IsValid() && vb.IsValid() && va.Type() == vb.Type() && va.Kind() == reflect.Struct && !hasOrderMethod(va.Type()) {
		lp := &LessProcessor{}
		if err := ReflectValue(lp, va, vb); err != nil {
			panic(err)
		}
		return lp.Less
	}
	return Compare(a, b) < 0
}

// Compare returns -1, 0 or 1 as a orders before, equal to or after b.
// Values of different types order by type name.
func Compare(a, b any) int {
	c, err := compareValue(reflect.ValueOf(a), reflect.ValueOf(b))
	if err != nil {
		panic(err)
	}
	return c
}

func equalValue(a, b reflect.Value) (bool, error) {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid(), nil
	}
	if a.Type() != b.Type() {
		return false, nil
	}
	if m, ok := equalMethod(a); ok {
		return m.Call([]reflect.Value{b})[0].Bool(), nil
	}
	if a.Kind() == reflect.Struct && !hasOrderMethod(a.Type()) {
		ep := &EqualProcessor{}
		if err := ReflectValue(ep, a, b); err != nil {
			return false, err
		}
		return !ep.Differs, nil
	}
	c, err := compareValue(a, b)
	return c == 0, err
}

func compareValue(a, b reflect.Value) (int, error) {
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(validRank(a), validRank(b)), nil
	}
	t := a.Type()
	if t != b.Type() {
		return strings.Compare(t.String(), b.Type().String()), nil
	}
	if m, ok := compareMethod(a); ok {
		return sign(m.Call([]reflect.Value{b})[0].Int()), nil
	}
	if m, ok := equalMethod(a); ok && m.Call([]reflect.Value{b})[0].Bool() {
		return 0, nil
	}
	switch Classify(t, Write) {
	case Leaf:
		return compareLeaf(a, b)
	case Optional:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(nilRank(a), nilRank(b)), nil
		}
		return compareValue(a.Elem(), b.Elem())
	case Sequence:
		n := min(a.Len(), b.Len())
		for i := range n {
			c, err := compareValue(a.Index(i), b.Index(i))
			if err != nil || c != 0 {
				return c, err
			}
		}
		return cmp.Compare(a.Len(), b.Len()), nil
	case KeyedMap:
		return compareMaps(a, b)
	}
	switch t.Kind() {
	case reflect.Struct:
		cp := &compareProcessor{}
		if err := ReflectValue(cp, a, b); err != nil {
			return 0, err
		}
		return cp.res, nil
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(nilRank(a), nilRank(b)), nil
		}
		return compareValue(a.Elem(), b.Elem())
	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		if c := cmp.Compare(real(x), real(y)); c != 0 {
			return c, nil
		}
		return cmp.Compare(imag(x), imag(y)), nil
	case reflect.Map:
		return compareMaps(a, b)
	}
	// func, chan and unsafe pointers only have identity
	return cmp.Compare(a.Pointer(), b.Pointer()), nil
}

func compareLeaf(a, b reflect.Value) (int, error) {
	switch a.Kind() {
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool())), nil
	case reflect.String:
		return strings.Compare(a.String(), b.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float()), nil
	}
	ta, err := MarshalText(a)
	if err != nil {
		return 0, err
	}
	tb, err := MarshalText(b)
	if err != nil {
		return 0, err
	}
	return bytes.Compare(ta, tb), nil
}

// compareMaps orders maps by their sorted keys, then by the value under
// each key, then by size.
func compareMaps(a, b reflect.Value) (int, error) {
	ka, err := sortedKeys(a)
	if err != nil {
		return 0, err
	}
	kb, err := sortedKeys(b)
	if err != nil {
		return 0, err
	}
	n := min(len(ka), len(kb))
	for i := range n {
		c, err := compareValue(ka[i], kb[i])
		if err != nil || c != 0 {
			return c, err
		}
		c, err = compareValue(a.MapIndex(ka[i]), b.MapIndex(kb[i]))
		if err != nil || c != 0 {
			return c, err
		}
	}
	return cmp.Compare(len(ka), len(kb)), nil
}

// SortedKeys returns the keys of map value m in ascending order.
func SortedKeys(m reflect.Value) ([]reflect.Value, error) {
	return sortedKeys(m)
}

func sortedKeys(m reflect.Value) ([]reflect.Value, error) {
	keys := m.MapKeys()
	var sortErr error
	slices.SortFunc(keys, func(x, y reflect.Value) int {
		c, err := compareValue(x, y)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c
	})
	return keys, sortErr
}

// MarshalText returns the text form of a Write text-like value, using the
// pointer method set when only *T implements encoding.TextMarshaler.
func MarshalText(v reflect.Value) ([]byte, error) {
	if v.Type().Implements(textMarshalerType) {
		return v.Interface().(encoding.TextMarshaler).MarshalText()
	}
	if !v.CanAddr() {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		v = p.Elem()
	}
	return v.Addr().Interface().(encoding.TextMarshaler).MarshalText()
}

func compareMethod(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	m, ok := t.MethodByName("Compare")
	if !ok || m.Type.NumIn() != 2 || m.Type.In(1) != t || m.Type.NumOut() != 1 {
		return reflect.Value{}, false
	}
	switch m.Type.Out(0).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Method(m.Index), true
	}
	return reflect.Value{}, false
}

func equalMethod(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	m, ok := t.MethodByName("Equal")
	if !ok || m.Type.NumIn() != 2 || m.Type.In(1) != t || m.Type.NumOut() != 1 || m.Type.Out(0).Kind() != reflect.Bool {
		return reflect.Value{}, false
	}
	return v.Method(m.Index), true
}

func hasOrderMethod(t reflect.Type) bool {
	z := reflect.Zero(t)
	_, c := compareMethod(z)
	_, e := equalMethod(z)
	return c || e
}

func sign(n int64) int {
	return cmp.Compare(n, 0)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nilRank(v reflect.Value) int {
	if v.IsNil() {
		return 0
	}
	return 1
}

func validRank(v reflect.Value) int {
	if v.IsValid() {
		return 1
	}
	return 0
}

// EqualValues is Equal on reflect values. Declaration errors are returned
// rather than raised.
func EqualValues(a, b reflect.Value) (bool, error) {
	return equalValue(a, b)
}
