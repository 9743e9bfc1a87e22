package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"reflect"
)

// Writer writes title and data lines through encoding/csv.
type Writer struct {
	w *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// UseCRLF ends lines with \r\n instead of \n.
func (w *Writer) UseCRLF(v bool) {
	w.w.UseCRLF = v
}

// WriteTitle writes the title line for the type of v; the data in v is not
// looked at.
func (w *Writer) WriteTitle(v any) error {
	t := reflect.TypeOf(v)
	if t == nil {
		return errors.New("no type for title line")
	}
	titles, err := TitlesOf(t)
	if err != nil {
		return err
	}
	return w.w.Write(titles)
}

func (w *Writer) WriteLine(v any) error {
	cells, err := Values(v)
	if err != nil {
		return err
	}
	return w.w.Write(cells)
}

func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// WriteTitle writes the title line for the type of v to w.
func WriteTitle(w io.Writer, v any) error {
	cw := NewWriter(w)
	if err := cw.WriteTitle(v); err != nil {
		return err
	}
	return cw.Flush()
}

func WriteLine(w io.Writer, v any) error {
	cw := NewWriter(w)
	if err := cw.WriteLine(v); err != nil {
		return err
	}
	return cw.Flush()
}

// WriteFile writes a title line for T followed by one line per row.
func WriteFile[T any](w io.Writer, rows []T) error {
	cw := NewWriter(w)
	var zero T
	if err := cw.WriteTitle(&zero); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.WriteLine(&rows[i]); err != nil {
			return err
		}
	}
	return cw.Flush()
}
