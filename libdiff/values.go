package libdiff

import (
	"fmt"
	"reflect"

	"github.com/signadot/refl"
	"github.com/signadot/refl/gomap"
	"github.com/signadot/refl/ir"
)

// Processor is a paired processor collecting the changes between two
// values of the same struct type.
type Processor struct {
	refl.Paired
	Path    string
	Changes []Change
}

func (p *Processor) Field(f refl.Field, lhs, rhs reflect.Value) error {
	return p.diff(p.Path+ir.FieldSegment(f.Name), lhs, rhs)
}

// Diff lists the changes taking a to b, which must have the same type.
func Diff(a, b any) ([]Change, error) {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return nil, fmt.Errorf("cannot diff %T and %T", a, b)
	}
	p := &Processor{Path: "$"}
	if err := p.diff("$", va, vb); err != nil {
		return nil, err
	}
	return p.Changes, nil
}

func (p *Processor) diff(path string, a, b reflect.Value) error {
	eq, err := refl.EqualValues(a, b)
	if err != nil || eq {
		return err
	}
	t := a.Type()
	switch refl.Classify(t, refl.Write) {
	case refl.Leaf:
		return p.replace(path, a, b)
	case refl.Optional:
		switch {
		case a.IsNil():
			return p.insert(path, b)
		case b.IsNil():
			return p.delete(path, a)
		}
		return p.diff(path, a.Elem(), b.Elem())
	case refl.Sequence:
		n := min(a.Len(), b.Len())
		for i := range n {
			if err := p.diff(path+ir.IndexSegment(i), a.Index(i), b.Index(i)); err != nil {
				return err
			}
		}
		for i := n; i < a.Len(); i++ {
			if err := p.delete(path+ir.IndexSegment(i), a.Index(i)); err != nil {
				return err
			}
		}
		for i := n; i < b.Len(); i++ {
			if err := p.insert(path+ir.IndexSegment(i), b.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case refl.KeyedMap:
		return p.diffMaps(path, a, b)
	}
	if t.Kind() == reflect.Struct {
		sub := &Processor{Path: path}
		if err := refl.ReflectValue(sub, a, b); err != nil {
			return err
		}
		p.Changes = append(p.Changes, sub.Changes...)
		return nil
	}
	return p.replace(path, a, b)
}

func (p *Processor) diffMaps(path string, a, b reflect.Value) error {
	keys, err := refl.SortedKeys(mergeKeys(a, b))
	if err != nil {
		return err
	}
	for _, k := range keys {
		name, err := keyName(k)
		if err != nil {
			return err
		}
		sub := path + ir.FieldSegment(name)
		av, bv := a.MapIndex(k), b.MapIndex(k)
		switch {
		case !av.IsValid():
			err = p.insert(sub, bv)
		case !bv.IsValid():
			err = p.delete(sub, av)
		default:
			err = p.diff(sub, av, bv)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeKeys returns a map holding the keys of both a and b.
func mergeKeys(a, b reflect.Value) reflect.Value {
	res := reflect.MakeMap(reflect.MapOf(a.Type().Key(), reflect.TypeFor[struct{}]()))
	for _, m := range []reflect.Value{a, b} {
		iter := m.MapRange()
		for iter.Next() {
			res.SetMapIndex(iter.Key(), reflect.ValueOf(struct{}{}))
		}
	}
	return res
}

func keyName(k reflect.Value) (string, error) {
	if refl.IsTextLike(k.Type(), refl.Write) {
		text, err := refl.MarshalText(k)
		return string(text), err
	}
	return k.String(), nil
}

func valueText(v reflect.Value) (string, error) {
	return gomap.ToText(v.Interface())
}

func (p *Processor) replace(path string, a, b reflect.Value) error {
	from, err := valueText(a)
	if err != nil {
		return err
	}
	to, err := valueText(b)
	if err != nil {
		return err
	}
	c := Change{Path: path, Kind: Replace, From: from, To: to}
	if a.Kind() == reflect.String {
		c.Edits = stringEdits(a.String(), b.String())
	}
	p.Changes = append(p.Changes, c)
	return nil
}

func (p *Processor) insert(path string, b reflect.Value) error {
	to, err := valueText(b)
	if err != nil {
		return err
	}
	p.Changes = append(p.Changes, Change{Path: path, Kind: Insert, To: to})
	return nil
}

func (p *Processor) delete(path string, a reflect.Value) error {
	from, err := valueText(a)
	if err != nil {
		return err
	}
	p.Changes = append(p.Changes, Change{Path: path, Kind: Delete, From: from})
	return nil
}
