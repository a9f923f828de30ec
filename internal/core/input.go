package core

import "fmt"

// Key is a platform-independent key code.
// Printable and control characters map to their byte value; special keys
// live above 255.
type Key uint16

// MaxKeys is the size of the key table.
const MaxKeys = 512

// Special key codes.
const (
	KeyNone   Key = 0
	KeyEscape Key = 27
	KeyF1     Key = 256 + 1
	KeyF10    Key = 256 + 10
	KeyF12    Key = 256 + 12
)

// KeyRune returns the key code for a single character, or KeyNone if the
// character does not fit in the table.
func KeyRune(r rune) Key {
	if r <= 0 || r > 255 {
		return KeyNone
	}
	return Key(r)
}

// FunctionKey returns the key code for Fn (1..12).
func FunctionKey(n int) Key {
	if n < 1 || n > 12 {
		return KeyNone
	}
	return Key(256 + n)
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k == KeyNone:
		return "none"
	case k == KeyEscape:
		return "esc"
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k)-256)
	case k > 32 && k < 127:
		return string(rune(k))
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// InputState is the set of currently held keys.
// Platform input callbacks are the only writers; the driver reads it every frame.
type InputState struct {
	held [MaxKeys]bool
}

// Press marks a key as held.
// It returns true only for the first press; repeats while the key is
// already held return false so one-shot actions fire once.
func (s *InputState) Press(k Key) bool {
	if k == KeyNone || int(k) >= MaxKeys {
		return false
	}
	first := !s.held[k]
	s.held[k] = true
	return first
}

// Release clears a held key.
func (s *InputState) Release(k Key) {
	if int(k) >= MaxKeys {
		return
	}
	s.held[k] = false
}

// Held reports whether the key is currently down.
func (s *InputState) Held(k Key) bool {
	if int(k) >= MaxKeys {
		return false
	}
	return s.held[k]
}

// HeldKeys returns all held keys in ascending key-code order.
func (s *InputState) HeldKeys() []Key {
	var keys []Key
	for i, down := range s.held {
		if down {
			keys = append(keys, Key(i))
		}
	}
	return keys
}

// Clear releases every key.
func (s *InputState) Clear() {
	s.held = [MaxKeys]bool{}
}
