package tui

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-physlab/internal/core"
)

// KeyLatch infers key releases. Terminals only report presses, and a held
// key arrives as a stream of auto-repeats; a key is considered released
// once no repeat has been seen for releaseAfter.
type KeyLatch struct {
	releaseAfter time.Duration
	seen         map[core.Key]time.Time
}

// NewKeyLatch creates a latch. releaseAfter must exceed the terminal's
// initial auto-repeat delay or held keys will flicker.
func NewKeyLatch(releaseAfter time.Duration) *KeyLatch {
	return &KeyLatch{
		releaseAfter: releaseAfter,
		seen:         make(map[core.Key]time.Time),
	}
}

// Press records k at now. It reports whether k was not already held.
func (l *KeyLatch) Press(k core.Key, now time.Time) bool {
	_, held := l.seen[k]
	l.seen[k] = now
	return !held
}

// Expire forgets and returns the keys not repeated since now-releaseAfter,
// in key-code order.
func (l *KeyLatch) Expire(now time.Time) []core.Key {
	var released []core.Key
	for k, t := range l.seen {
		if now.Sub(t) >= l.releaseAfter {
			released = append(released, k)
			delete(l.seen, k)
		}
	}
	sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
	return released
}

// Held reports whether k is latched.
func (l *KeyLatch) Held(k core.Key) bool {
	_, ok := l.seen[k]
	return ok
}

// Reset forgets every key and returns them in key-code order.
func (l *KeyLatch) Reset() []core.Key {
	keys := make([]core.Key, 0, len(l.seen))
	for k := range l.seen {
		keys = append(keys, k)
	}
	clear(l.seen)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
