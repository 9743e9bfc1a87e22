package refl

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Base struct {
	ID   int    `refl:"id"`
	Note string `refl:"note"`
}

type derivedFirst struct {
	Name string `refl:"name"`
	Base
	Skip   string `refl:"-"`
	hidden int
	Count  int
}

type baseFirst struct {
	Base
	Name string `refl:"name"`
}

type namedBase struct {
	Base `refl:"base"`
	Name string
}

type duplicate struct {
	A int `refl:"x"`
	B int `refl:"x"`
}

type shadowed struct {
	Base
	ID int `refl:"id"`
}

func names(fs []Field) []string {
	res := make([]string, len(fs))
	for i := range fs {
		res[i] = fs[i].Name
	}
	return res
}

func TestFieldsOrder(t *testing.T) {
	fs, err := Fields(reflect.TypeFor[derivedFirst]())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id", "note", "Count"}, names(fs))
	assert.Equal(t, []int{1, 0}, fs[1].Index)

	fs, err = Fields(reflect.TypeFor[baseFirst]())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "note", "name"}, names(fs))

	fs, err = Fields(reflect.TypeFor[namedBase]())
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "Name"}, names(fs))
	assert.Equal(t, reflect.TypeFor[Base](), fs[0].Type)
}

func TestFieldsDuplicate(t *testing.T) {
	_, err := Fields(reflect.TypeFor[duplicate]())
	var declErr *DeclarationError
	require.ErrorAs(t, err, &declErr)
	assert.Equal(t, reflect.TypeFor[duplicate](), declErr.Type)

	// names re-emitted through a base are not checked
	fs, err := Fields(reflect.TypeFor[shadowed]())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "note", "id"}, names(fs))
}

func TestFieldsNotStruct(t *testing.T) {
	_, err := Fields(reflect.TypeFor[map[int]int]())
	var declErr *DeclarationError
	assert.ErrorAs(t, err, &declErr)
}

type recorder struct {
	seen []string
	rhs  []bool
	stop string
}

func (r *recorder) Field(f Field, lhs, rhs reflect.Value) error {
	r.seen = append(r.seen, f.Name)
	r.rhs = append(r.rhs, rhs.IsValid())
	if f.Name == r.stop {
		return SkipRest
	}
	return nil
}

type pairedRecorder struct {
	Paired
	recorder
}

func TestReflectSingle(t *testing.T) {
	r := &recorder{}
	obj := derivedFirst{Name: "n"}
	require.NoError(t, Reflect(r, &obj))
	assert.Equal(t, []string{"name", "id", "note", "Count"}, r.seen)
	assert.Equal(t, []bool{false, false, false, false}, r.rhs)

	// second object ignored
	r = &recorder{}
	require.NoError(t, Reflect2(r, obj, obj))
	assert.Equal(t, []bool{false, false, false, false}, r.rhs)
}

func TestReflectPaired(t *testing.T) {
	r := &pairedRecorder{}
	a, b := baseFirst{}, baseFirst{}
	require.NoError(t, Reflect2(r, a, &b))
	assert.Equal(t, []bool{true, true, true}, r.rhs)
	assert.True(t, IsPaired(r))
	assert.False(t, IsPaired(&r.recorder))
}

func TestReflectPairedTypeMismatch(t *testing.T) {
	err := Reflect2(&pairedRecorder{}, baseFirst{}, derivedFirst{})
	assert.Error(t, err)
}

func TestReflectSkipRest(t *testing.T) {
	r := &recorder{stop: "id"}
	require.NoError(t, Reflect(r, derivedFirst{}))
	assert.Equal(t, []string{"name", "id"}, r.seen)
}

type failing struct{}

var errBoom = errors.New("boom")

func (failing) Field(Field, reflect.Value, reflect.Value) error { return errBoom }

func TestReflectError(t *testing.T) {
	assert.ErrorIs(t, Reflect(failing{}, baseFirst{}), errBoom)
}

func TestReflectNil(t *testing.T) {
	var p *baseFirst
	assert.ErrorIs(t, Reflect(&recorder{}, p), ErrNil)
	assert.ErrorIs(t, Reflect(&recorder{}, nil), ErrNil)
}

type setter struct{}

func (setter) Field(f Field, lhs, _ reflect.Value) error {
	if f.Type.Kind() == reflect.Int {
		lhs.SetInt(7)
	}
	return nil
}

func TestReflectSettable(t *testing.T) {
	obj := derivedFirst{}
	require.NoError(t, Reflect(setter{}, &obj))
	assert.Equal(t, 7, obj.ID)
	assert.Equal(t, 7, obj.Count)
	assert.Equal(t, 0, obj.hidden)
}
