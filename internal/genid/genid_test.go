package genid

import (
	"strings"
	"testing"
)

func TestBoxingLayer_IsLowercasedAndUnique(t *testing.T) {
	a := BoxingLayer("Animal", "Speak")
	b := BoxingLayer("Animal", "Speak")
	if a == b {
		t.Fatal("two calls with identical arguments should still produce distinct names")
	}
	if !strings.HasPrefix(a, "animal_speak_box_") {
		t.Fatalf("expected an animal_speak_box_ prefix, got %q", a)
	}
}

func TestReification_UsesOwnerPrefix(t *testing.T) {
	name := Reification("Box Of Things")
	if !strings.HasPrefix(name, "box_of_things_reify_") {
		t.Fatalf("expected a sanitised owner prefix, got %q", name)
	}
}
