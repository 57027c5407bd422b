package uuid

import "testing"

func TestNew(t *testing.T) {
	id := New()

	if !IsValid(id) {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	if v := Version(id); v != 7 {
		t.Errorf("expected version 7, got %d", v)
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	first := New()
	second := New()

	if first >= second {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("AU123456") {
		t.Error("resume code must not parse as uuid")
	}
	if Version("nope") != 0 {
		t.Error("expected version 0 for invalid input")
	}
}
