package gomap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type server struct {
	Host  string            `refl:"host"`
	Port  int               `refl:"port"`
	Tags  []string          `refl:"tags"`
	Label map[string]string `refl:"label"`
}

func TestPatch(t *testing.T) {
	s := server{Host: "a", Port: 80, Tags: []string{"x"}}
	patch := `[
		{"op": "replace", "path": "/port", "value": 8080},
		{"op": "add", "path": "/tags/-", "value": "y"}
	]`
	if err := Patch(&s, []byte(patch)); err != nil {
		t.Fatal(err)
	}
	want := server{Host: "a", Port: 8080, Tags: []string{"x", "y"}, Label: map[string]string{}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPatchAtomic(t *testing.T) {
	s := server{Host: "a", Port: 80}
	orig := s
	patch := `[
		{"op": "replace", "path": "/port", "value": 1},
		{"op": "remove", "path": "/missing"}
	]`
	if err := Patch(&s, []byte(patch)); err == nil {
		t.Fatal("expected error")
	}
	if diff := cmp.Diff(orig, s); diff != "" {
		t.Errorf("target changed (-want +got):\n%s", diff)
	}

	// the patch applies but the result does not decode
	bad := `[{"op": "replace", "path": "/port", "value": "eighty"}]`
	if err := Patch(&s, []byte(bad)); err == nil {
		t.Fatal("expected decode error")
	}
	if diff := cmp.Diff(orig, s); diff != "" {
		t.Errorf("target changed (-want +got):\n%s", diff)
	}

	if err := Patch(&s, []byte(`{not a patch`)); err == nil {
		t.Fatal("expected error for malformed patch")
	}
	if err := Patch(s, []byte(`[]`)); err == nil {
		t.Fatal("expected error for non-pointer target")
	}
}

func TestMergePatch(t *testing.T) {
	s := server{Host: "a", Port: 80, Label: map[string]string{"k": "v", "drop": "1"}}
	if err := MergePatch(&s, []byte(`{"host": "b", "label": {"drop": null}}`)); err != nil {
		t.Fatal(err)
	}
	want := server{Host: "b", Port: 80, Tags: []string{}, Label: map[string]string{"k": "v"}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCreateMergePatch(t *testing.T) {
	from := server{Host: "a", Port: 80}
	to := server{Host: "a", Port: 81}
	patch, err := CreateMergePatch(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if string(patch) != `{"port":81}` {
		t.Errorf("got %s", patch)
	}
	if err := MergePatch(&from, patch); err != nil {
		t.Fatal(err)
	}
	if from.Port != 81 {
		t.Errorf("got port %d", from.Port)
	}
}
