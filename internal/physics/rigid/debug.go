package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

const (
	planeExtent    = 10.0
	circleSegments = 12
)

// buildDebugLocked builds the wireframe for the current poses, or nil when
// visualisation is off.
func (s *Scene) buildDebugLocked() *physics.DebugRenderable {
	scale := s.engine.Parameter(physics.VisualizationScale)
	if scale <= 0 {
		return nil
	}
	shapes := s.engine.Parameter(physics.VisualizeCollisionShapes) > 0
	axes := s.engine.Parameter(physics.VisualizeActorAxes) > 0

	dr := &physics.DebugRenderable{}
	for _, a := range s.actors {
		color := physics.DebugColorShape
		if !a.dynamic {
			color = physics.DebugColorStatic
		}
		if shapes {
			for _, sh := range a.shapes {
				dr.Lines = appendShape(dr.Lines, sh, a.pos, color)
			}
		}
		if axes && a.dynamic {
			dr.Lines = append(dr.Lines,
				physics.DebugLine{From: a.pos, To: a.pos.Add(mgl64.Vec3{scale, 0, 0}), Color: physics.DebugColorAxisX},
				physics.DebugLine{From: a.pos, To: a.pos.Add(mgl64.Vec3{0, scale, 0}), Color: physics.DebugColorAxisY},
				physics.DebugLine{From: a.pos, To: a.pos.Add(mgl64.Vec3{0, 0, scale}), Color: physics.DebugColorAxisZ},
			)
		}
	}
	return dr
}

func appendShape(lines []physics.DebugLine, sh physics.Shape, pos mgl64.Vec3, color uint32) []physics.DebugLine {
	switch sh.Kind {
	case physics.ShapeBox:
		return appendBox(lines, pos, sh.HalfExtents, color)
	case physics.ShapeSphere:
		return appendSphere(lines, pos, sh.Radius, color)
	case physics.ShapePlane:
		return appendPlane(lines, sh, color)
	}
	return lines
}

func appendBox(lines []physics.DebugLine, pos, half mgl64.Vec3, color uint32) []physics.DebugLine {
	c := physics.BoxCorners(pos, half)
	for _, e := range physics.BoxEdges {
		lines = append(lines, physics.DebugLine{From: c[e[0]], To: c[e[1]], Color: color})
	}
	return lines
}

func appendSphere(lines []physics.DebugLine, pos mgl64.Vec3, r float64, color uint32) []physics.DebugLine {
	point := func(plane int, t float64) mgl64.Vec3 {
		s, c := math.Sincos(t)
		switch plane {
		case 0:
			return pos.Add(mgl64.Vec3{r * c, r * s, 0})
		case 1:
			return pos.Add(mgl64.Vec3{r * c, 0, r * s})
		default:
			return pos.Add(mgl64.Vec3{0, r * c, r * s})
		}
	}
	step := 2 * math.Pi / circleSegments
	for plane := 0; plane < 3; plane++ {
		for i := 0; i < circleSegments; i++ {
			lines = append(lines, physics.DebugLine{
				From:  point(plane, float64(i)*step),
				To:    point(plane, float64(i+1)*step),
				Color: color,
			})
		}
	}
	return lines
}

// appendPlane draws a square outline and a cross of the plane around the
// point closest to the origin.
func appendPlane(lines []physics.DebugLine, sh physics.Shape, color uint32) []physics.DebugLine {
	n := sh.Normal.Normalize()
	origin := n.Mul(sh.Distance)

	// Any vector not parallel to n spans the plane with it
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(n.X()) > 0.9 {
		ref = mgl64.Vec3{0, 0, 1}
	}
	u := n.Cross(ref).Normalize().Mul(planeExtent)
	v := n.Cross(u).Normalize().Mul(planeExtent)

	c := [4]mgl64.Vec3{
		origin.Add(u).Add(v),
		origin.Add(u).Sub(v),
		origin.Sub(u).Sub(v),
		origin.Sub(u).Add(v),
	}
	for i := 0; i < 4; i++ {
		lines = append(lines, physics.DebugLine{From: c[i], To: c[(i+1)%4], Color: color})
	}
	lines = append(lines,
		physics.DebugLine{From: origin.Sub(u), To: origin.Add(u), Color: color},
		physics.DebugLine{From: origin.Sub(v), To: origin.Add(v), Color: color},
	)
	return lines
}
