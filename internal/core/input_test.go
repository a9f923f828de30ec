package core

import "testing"

func TestInputStatePressDebounce(t *testing.T) {
	var s InputState

	if !s.Press(KeyRune('p')) {
		t.Fatal("first press should report true")
	}
	if s.Press(KeyRune('p')) {
		t.Error("repeat press while held should report false")
	}
	if !s.Held(KeyRune('p')) {
		t.Error("key should be held after press")
	}

	s.Release(KeyRune('p'))
	if s.Held(KeyRune('p')) {
		t.Error("key should not be held after release")
	}
	if !s.Press(KeyRune('p')) {
		t.Error("press after release should report true again")
	}
}

func TestInputStateHeldKeys(t *testing.T) {
	var s InputState
	s.Press(KeyRune('w'))
	s.Press(KeyRune('a'))
	s.Press(KeyF10)

	keys := s.HeldKeys()
	expected := []Key{KeyRune('a'), KeyRune('w'), KeyF10}
	if len(keys) != len(expected) {
		t.Fatalf("HeldKeys() = %v, expected %v", keys, expected)
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("HeldKeys()[%d] = %v, expected %v", i, keys[i], expected[i])
		}
	}

	s.Clear()
	if len(s.HeldKeys()) != 0 {
		t.Error("Clear should release all keys")
	}
}

func TestKeyCodes(t *testing.T) {
	if KeyRune('€') != KeyNone {
		t.Error("runes above 255 should map to KeyNone")
	}
	if FunctionKey(10) != KeyF10 {
		t.Errorf("FunctionKey(10) = %v, expected F10", FunctionKey(10))
	}
	if KeyF10.String() != "F10" {
		t.Errorf("KeyF10.String() = %q", KeyF10.String())
	}
	if KeyEscape.String() != "esc" {
		t.Errorf("KeyEscape.String() = %q", KeyEscape.String())
	}

	var s InputState
	if s.Press(KeyNone) {
		t.Error("KeyNone should never register")
	}
}
