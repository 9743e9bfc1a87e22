package csvio

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/signadot/refl"
	"github.com/signadot/refl/gomap"
)

// LineProcessor collects the cells of one CSV line. With Title set it
// collects column names instead, derived from field types alone: nested
// fields are named parent_child.
type LineProcessor struct {
	Title  bool
	Prefix string
	Cells  []string

	// struct types being expanded, outermost first
	expanding []reflect.Type
}

func (l *LineProcessor) Field(f refl.Field, lhs, _ reflect.Value) error {
	return l.value(l.Prefix+f.Name, f.Type, lhs)
}

func (l *LineProcessor) value(name string, t reflect.Type, v reflect.Value) error {
	switch refl.Classify(t, refl.Write) {
	case refl.Leaf:
		if l.Title {
			l.Cells = append(l.Cells, name)
			return nil
		}
		cell, err := leafCell(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		l.Cells = append(l.Cells, cell)
		return nil
	case refl.Sequence, refl.KeyedMap:
		if l.Title {
			l.Cells = append(l.Cells, name)
			return nil
		}
		text, err := gomap.ToText(v.Interface())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		l.Cells = append(l.Cells, text)
		return nil
	case refl.Optional:
		if !l.Title && v.IsNil() {
			n, err := width(t.Elem(), l.expanding)
			if err != nil {
				return err
			}
			for range n {
				l.Cells = append(l.Cells, "")
			}
			return nil
		}
		var elem reflect.Value
		if !l.Title {
			elem = v.Elem()
		}
		return l.value(name, t.Elem(), elem)
	}
	if t.Kind() == reflect.Interface {
		if l.Title {
			l.Cells = append(l.Cells, name)
			return nil
		}
		if v.IsNil() {
			l.Cells = append(l.Cells, "")
			return nil
		}
		text, err := gomap.ToText(v.Interface())
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		l.Cells = append(l.Cells, text)
		return nil
	}
	if slices.Contains(l.expanding, t) {
		return &refl.DeclarationError{Type: t, Message: fmt.Sprintf("column %s expands %s inside itself", name, t)}
	}
	inner := &LineProcessor{Title: l.Title, Prefix: name + "_", expanding: append(l.expanding[:len(l.expanding):len(l.expanding)], t)}
	if l.Title {
		v = reflect.New(t).Elem()
	}
	if err := refl.ReflectValue(inner, v, reflect.Value{}); err != nil {
		return err
	}
	l.Cells = append(l.Cells, inner.Cells...)
	return nil
}

// width is the number of columns a value of type t occupies.
func width(t reflect.Type, expanding []reflect.Type) (int, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if refl.Classify(t, refl.Write) != refl.Composite || t.Kind() == reflect.Interface {
		return 1, nil
	}
	if slices.Contains(expanding, t) {
		return 0, &refl.DeclarationError{Type: t, Message: "type contains itself, its columns are unbounded"}
	}
	titles, err := titlesOf(t, expanding)
	if err != nil {
		return 0, err
	}
	return len(titles), nil
}

func leafCell(v reflect.Value) (string, error) {
	if refl.IsTextLike(v.Type(), refl.Write) {
		text, err := refl.MarshalText(v)
		return string(text), err
	}
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	}
	return fmt.Sprint(v.Interface()), nil
}

// TitlesOf returns the column names for rows of struct type t. A type which
// contains itself, through pointers or not, has no fixed set of columns and
// yields a *refl.DeclarationError.
func TitlesOf(t reflect.Type) ([]string, error) {
	return titlesOf(t, nil)
}

func titlesOf(t reflect.Type, expanding []reflect.Type) ([]string, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	lp := &LineProcessor{Title: true, expanding: append(expanding[:len(expanding):len(expanding)], t)}
	if err := refl.ReflectValue(lp, reflect.New(t).Elem(), reflect.Value{}); err != nil {
		return nil, err
	}
	return lp.Cells, nil
}

func Titles[T any]() ([]string, error) {
	return TitlesOf(reflect.TypeFor[T]())
}

// Values returns the cells for row v, a struct or pointer to one.
func Values(v any) ([]string, error) {
	lp := &LineProcessor{}
	if t := reflect.TypeOf(v); t != nil {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		lp.expanding = []reflect.Type{t}
	}
	if err := refl.Reflect(lp, v); err != nil {
		return nil, err
	}
	return lp.Cells, nil
}
