package csvio

import (
	"bytes"
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/signadot/refl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Point struct {
	X int     `refl:"x"`
	Y float64 `refl:"y"`
}

type Base struct {
	ID int `refl:"id"`
}

type Row struct {
	Base
	Name   string         `refl:"name"`
	Where  Point          `refl:"where"`
	Maybe  *Point         `refl:"maybe"`
	Count  *int           `refl:"count"`
	Tags   []string       `refl:"tags"`
	Attrs  map[string]int `refl:"attrs"`
	Addr   netip.Addr     `refl:"addr"`
	When   time.Time      `refl:"when"`
	OK     bool           `refl:"ok"`
	hidden int
}

func ptr[T any](v T) *T { return &v }

var titles = []string{
	"id", "name", "where_x", "where_y", "maybe_x", "maybe_y",
	"count", "tags", "attrs", "addr", "when", "ok",
}

func TestTitles(t *testing.T) {
	got, err := Titles[Row]()
	require.NoError(t, err)
	assert.Equal(t, titles, got)

	got, err = TitlesOf(reflect.TypeOf(&Row{}))
	require.NoError(t, err)
	assert.Equal(t, titles, got)
}

func TestValues(t *testing.T) {
	r := Row{
		Base:  Base{ID: 1},
		Name:  "a,b",
		Where: Point{X: 2, Y: 0.5},
		Maybe: &Point{X: 3},
		Tags:  []string{"p", "q"},
		Attrs: map[string]int{"z": 1, "a": 2},
		Addr:  netip.MustParseAddr("::1"),
		When:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		OK:    true,
	}
	got, err := Values(r)
	require.NoError(t, err)
	want := []string{
		"1", "a,b", "2", "0.5", "3", "0",
		"", `["p","q"]`, `{"a":2,"z":1}`, "::1", "2020-01-01T00:00:00Z", "true",
	}
	assert.Equal(t, want, got)
}

func TestNilOptionalWidth(t *testing.T) {
	got, err := Values(&Row{Count: ptr(4)})
	require.NoError(t, err)
	require.Len(t, got, len(titles))
	assert.Equal(t, "", got[4])
	assert.Equal(t, "", got[5])
	assert.Equal(t, "4", got[6])
	assert.Equal(t, "[]", got[7])
}

func TestWriteFile(t *testing.T) {
	rows := []Point{{X: 1, Y: 1.5}, {X: -2, Y: 0}}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, WriteFile(buf, rows))
	assert.Equal(t, "x,y\n1,1.5\n-2,0\n", buf.String())
}

func TestWriteTitleAndLine(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	require.NoError(t, WriteTitle(buf, Point{X: 9}))
	require.NoError(t, WriteLine(buf, Point{X: 9}))
	assert.Equal(t, "x,y\n9,0\n", buf.String())

	buf.Reset()
	w := NewWriter(buf)
	w.UseCRLF(true)
	require.NoError(t, w.WriteLine(Row{Name: "say \"hi\""}))
	require.NoError(t, w.Flush())
	assert.Contains(t, buf.String(), `"say ""hi"""`)
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r\n")))
}

func TestWriteTitleErrors(t *testing.T) {
	assert.Error(t, WriteTitle(&bytes.Buffer{}, nil))
	assert.Error(t, WriteTitle(&bytes.Buffer{}, 3))
	assert.Error(t, WriteLine(&bytes.Buffer{}, "x"))
}

type chain struct {
	Name string `refl:"name"`
	Next *chain `refl:"next"`
}

type twoPoints struct {
	A Point  `refl:"a"`
	B *Point `refl:"b"`
}

func TestSelfReferentialType(t *testing.T) {
	var declErr *refl.DeclarationError

	_, err := Titles[chain]()
	require.ErrorAs(t, err, &declErr)
	assert.Equal(t, reflect.TypeFor[chain](), declErr.Type)

	_, err = Values(chain{Name: "a"})
	require.ErrorAs(t, err, &declErr)

	_, err = Values(&chain{Name: "a", Next: &chain{Name: "b"}})
	require.ErrorAs(t, err, &declErr)

	// the same type twice along different paths is fine
	names, err := Titles[twoPoints]()
	require.NoError(t, err)
	assert.Equal(t, []string{"a_x", "a_y", "b_x", "b_y"}, names)
}
