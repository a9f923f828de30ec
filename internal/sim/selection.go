package sim

import "github.com/vovakirdan/tui-physlab/internal/physics"

// IsSelectable reports whether a can receive forces: dynamic with no trigger shapes.
func IsSelectable(a physics.Actor) bool {
	return a != nil && a.IsDynamic() && !physics.HasTrigger(a)
}

// NextSelectable returns the first selectable actor after current, wrapping
// around. A nil or unknown current starts from the beginning. It returns nil
// when nothing is selectable.
func NextSelectable(actors []physics.Actor, current physics.Actor) physics.Actor {
	n := len(actors)
	start := -1
	if current != nil {
		for i, a := range actors {
			if a == current {
				start = i
				break
			}
		}
	}

	if start < 0 {
		for _, a := range actors {
			if IsSelectable(a) {
				return a
			}
		}
		return nil
	}

	// Scan a full cycle so current itself is the last candidate
	for j := 1; j <= n; j++ {
		a := actors[(start+j)%n]
		if IsSelectable(a) {
			return a
		}
	}
	return nil
}
