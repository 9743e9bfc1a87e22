package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	t.Setenv("REFL_TEST_BOOL", "true")
	if !boolEnv("REFL_TEST_BOOL") {
		t.Error("expected true")
	}
	t.Setenv("REFL_TEST_BOOL", "nope")
	if boolEnv("REFL_TEST_BOOL") {
		t.Error("expected false for unparseable value")
	}
	if boolEnv("REFL_TEST_UNSET_BOOL") {
		t.Error("expected false for unset variable")
	}
}

func TestLogNotNil(t *testing.T) {
	if Log() == nil {
		t.Fatal("nil logger")
	}
	Log().Debug("ok")
}
