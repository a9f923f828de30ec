package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/core"
)

// Key bindings.
var (
	KeyForward = core.KeyRune('w')
	KeyBack    = core.KeyRune('s')
	KeyLeft    = core.KeyRune('a')
	KeyRight   = core.KeyRune('d')
	KeyUp      = core.KeyRune('q')
	KeyDown    = core.KeyRune('z')

	KeyPushZ = core.KeyRune('i')
	KeyPullZ = core.KeyRune('k')
	KeyPushX = core.KeyRune('j')
	KeyPullX = core.KeyRune('l')
	KeyPushY = core.KeyRune('u')
	KeyPullY = core.KeyRune('m')

	KeyPause   = core.KeyRune('p')
	KeyShadows = core.KeyRune('x')
	KeySelect  = core.KeyRune('r')
	KeyMode    = core.KeyRune('b')
	KeyReset   = core.KeyF10
	KeyQuit    = core.KeyEscape
)

// forceDirs maps force keys to unit directions.
var forceDirs = map[core.Key]mgl64.Vec3{
	KeyPushZ: {0, 0, 1},
	KeyPullZ: {0, 0, -1},
	KeyPushX: {1, 0, 0},
	KeyPullX: {-1, 0, 0},
	KeyPushY: {0, 1, 0},
	KeyPullY: {0, -1, 0},
}

// IsForceKey reports whether k applies a force while held.
func IsForceKey(k core.Key) bool {
	_, ok := forceDirs[k]
	return ok
}

// IsHoldKey reports whether k acts every frame while held rather than once
// per press.
func IsHoldKey(k core.Key) bool {
	switch k {
	case KeyForward, KeyBack, KeyLeft, KeyRight, KeyUp, KeyDown:
		return true
	}
	return IsForceKey(k)
}

// cameraDir returns the translation direction bound to k.
func cameraDir(c *Camera, k core.Key) (mgl64.Vec3, bool) {
	switch k {
	case KeyForward:
		return c.Forward, true
	case KeyBack:
		return c.Forward.Mul(-1), true
	case KeyLeft:
		return c.Right.Mul(-1), true
	case KeyRight:
		return c.Right, true
	case KeyUp:
		return WorldUp, true
	case KeyDown:
		return WorldUp.Mul(-1), true
	}
	return mgl64.Vec3{}, false
}

// keyHold applies level-triggered effects of every held key.
func (s *Session) keyHold(dt float64) {
	for _, k := range s.input.HeldKeys() {
		if dir, ok := cameraDir(s.camera, k); ok {
			s.camera.Move(dir, dt)
			continue
		}
		if dir, ok := forceDirs[k]; ok {
			s.force.Apply(s.selected, dir, dt)
		}
	}
}

// keyPress runs one-shot actions. It is called once per physical press.
func (s *Session) keyPress(k core.Key) {
	switch k {
	case KeyMode:
		s.mode = s.mode.Next()
	case KeyPause:
		s.TogglePause()
	case KeySelect:
		s.SelectNext()
	case KeyShadows:
		s.shadows = !s.shadows
	case KeyReset:
		if err := s.Reset(); err != nil {
			s.logger.Error("reset failed", "error", err)
			s.resetErr = err
			s.quit = true
		}
	case KeyQuit:
		s.quit = true
	}
}
