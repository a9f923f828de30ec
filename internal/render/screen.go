// Package render implements sim.Renderer for terminals. ScreenRenderer
// rasterises the scene into a core.Screen; ConsoleRenderer prints the state
// of one actor per frame.
package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/sim"
)

// Projection limits.
const (
	Near = 1.0
	Far  = 10000.0
)

// Ground grid extent and spacing in world units.
const (
	gridExtent = 20
	gridStep   = 2
)

// Depth biases so coplanar primitives resolve predictably.
const (
	groundBias = 1.0
	shadowBias = 0.5

	// The shaft draws over bodies; the head draws over its shaft.
	arrowShaftBias = -1.0
	arrowHeadBias  = -2.0
)

// Material runes and colours per light.
var materials = map[sim.Light]struct {
	fill rune
	edge rune
	c    core.Color
}{
	sim.LightDefault:  {fill: '▒', edge: '█', c: core.ColorWhite},
	sim.LightSelected: {fill: '▓', edge: '█', c: core.ColorBrightCyan},
}

const (
	groundRune  = '·'
	shadowRune  = '░'
	arrowHead   = '●'
	groundColor = core.ColorDarkGray
	shadowColor = core.ColorDarkGray
	textColor   = core.ColorBrightWhite
)

var _ sim.Renderer = (*ScreenRenderer)(nil)

// ScreenRenderer draws into a core.Screen with a per-cell depth buffer.
type ScreenRenderer struct {
	screen *core.Screen
	depth  []float64
	mvp    mgl64.Mat4
	fovY   float64 // radians
	aspect float64
}

// NewScreenRenderer creates a renderer drawing into screen.
func NewScreenRenderer(screen *core.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// Screen returns the target buffer.
func (r *ScreenRenderer) Screen() *core.Screen {
	return r.screen
}

// BeginFrame clears the screen and sets up the projection for view.
func (r *ScreenRenderer) BeginFrame(view sim.CameraView) {
	r.screen.Clear()

	n := r.screen.Width() * r.screen.Height()
	if cap(r.depth) < n {
		r.depth = make([]float64, n)
	}
	r.depth = r.depth[:n]
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}

	r.aspect = view.Aspect
	if r.aspect <= 0 {
		r.aspect = 1
	}
	r.fovY = mgl64.DegToRad(view.FovY)
	if r.fovY <= 0 {
		r.fovY = mgl64.DegToRad(60)
	}
	proj := mgl64.Perspective(r.fovY, r.aspect, Near, Far)
	look := mgl64.LookAtV(view.Position, view.Position.Add(view.Forward), view.Up)
	r.mvp = proj.Mul4(look)
}

// DrawActor fills every non-trigger shape of a.
func (r *ScreenRenderer) DrawActor(a physics.Actor, light sim.Light) {
	m, ok := materials[light]
	if !ok {
		m = materials[sim.LightDefault]
	}
	pos := a.GlobalPosition()
	for _, sh := range a.Shapes() {
		if sh.Trigger {
			continue
		}
		switch sh.Kind {
		case physics.ShapePlane:
			r.drawGround(sh)
		case physics.ShapeBox:
			corners := physics.BoxCorners(pos, sh.HalfExtents)
			r.fillHull(corners[:], m.fill, m.c, 0)
			for _, e := range physics.BoxEdges {
				r.line(corners[e[0]], corners[e[1]], m.edge, m.c, -0.01)
			}
		case physics.ShapeSphere:
			r.fillSphere(pos, sh.Radius, m.fill, m.c)
		}
	}
}

// DrawShadow flattens a's shapes onto the ground plane.
func (r *ScreenRenderer) DrawShadow(a physics.Actor) {
	pos := a.GlobalPosition()
	for _, sh := range a.Shapes() {
		if sh.Trigger {
			continue
		}
		var pts []mgl64.Vec3
		switch sh.Kind {
		case physics.ShapeBox:
			c := physics.BoxCorners(pos, sh.HalfExtents)
			pts = c[:]
		case physics.ShapeSphere:
			for i := 0; i < 16; i++ {
				t := 2 * math.Pi * float64(i) / 16
				pts = append(pts, pos.Add(mgl64.Vec3{sh.Radius * math.Cos(t), 0, sh.Radius * math.Sin(t)}))
			}
		default:
			continue
		}
		flat := make([]mgl64.Vec3, len(pts))
		for i, p := range pts {
			flat[i] = mgl64.Vec3{p.X(), 0, p.Z()}
		}
		r.fillHull(flat, shadowRune, shadowColor, shadowBias)
	}
}

// DrawDebug draws the engine's wireframe.
func (r *ScreenRenderer) DrawDebug(dr *physics.DebugRenderable) {
	if dr == nil {
		return
	}
	for _, l := range dr.Lines {
		r.line(l.From, l.To, 0, core.RGB(l.Color), -0.02)
	}
}

// DrawArrow draws a segment with a head at to. The head sits in front of
// the shaft's last cell.
func (r *ScreenRenderer) DrawArrow(from, to mgl64.Vec3, c core.Color) {
	if x, y, d, ok := r.project(to); ok {
		r.plot(x, y, d+arrowHeadBias, arrowHead, c)
	}
	r.line(from, to, 0, c, arrowShaftBias)
}

// DrawText writes text at relative coordinates: x from the left edge,
// y from the bottom edge, both in [0, 1].
func (r *ScreenRenderer) DrawText(text string, x, y float64) {
	w, h := r.screen.Width(), r.screen.Height()
	col := int(math.Round(x * float64(w)))
	row := int(math.Round((1 - y) * float64(h-1)))
	r.screen.DrawText(col, row, text, textColor)
}

// EndFrame finishes the frame. The screen holds the result.
func (r *ScreenRenderer) EndFrame() {}

// project maps a world point to a cell and its view depth.
func (r *ScreenRenderer) project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	clip := r.mvp.Mul4x1(p.Vec4(1))
	if clip.W() < Near {
		return 0, 0, 0, false
	}
	fx, fy := r.toScreen(clip)
	return int(math.Round(fx)), int(math.Round(fy)), clip.W(), true
}

// toScreen converts clip coordinates to fractional cell coordinates.
func (r *ScreenRenderer) toScreen(clip mgl64.Vec4) (float64, float64) {
	w, h := float64(r.screen.Width()), float64(r.screen.Height())
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	return (nx + 1) / 2 * (w - 1), (1 - ny) / 2 * (h - 1)
}

// plot sets a cell if depth is nearer than what is there.
func (r *ScreenRenderer) plot(x, y int, depth float64, ch rune, c core.Color) {
	if !r.screen.InBounds(x, y) {
		return
	}
	i := y*r.screen.Width() + x
	if depth >= r.depth[i] {
		return
	}
	r.depth[i] = depth
	r.screen.SetColored(x, y, ch, c)
}

// line rasterises a world segment. A zero rune picks one from the slope.
func (r *ScreenRenderer) line(a, b mgl64.Vec3, ch rune, c core.Color, bias float64) {
	ca := r.mvp.Mul4x1(a.Vec4(1))
	cb := r.mvp.Mul4x1(b.Vec4(1))

	// Clip against the near plane
	if ca.W() < Near && cb.W() < Near {
		return
	}
	if ca.W() < Near {
		ca = lerp4(ca, cb, (Near-ca.W())/(cb.W()-ca.W()))
	} else if cb.W() < Near {
		cb = lerp4(cb, ca, (Near-cb.W())/(ca.W()-cb.W()))
	}

	ax, ay := r.toScreen(ca)
	bx, by := r.toScreen(cb)
	t0, t1, ok := clipRect(ax, ay, bx, by, -1, -1, float64(r.screen.Width()), float64(r.screen.Height()))
	if !ok {
		return
	}
	if ch == 0 {
		ch = slopeRune(bx-ax, by-ay)
	}

	p0 := core.Point{X: int(math.Round(ax + t0*(bx-ax))), Y: int(math.Round(ay + t0*(by-ay)))}
	p1 := core.Point{X: int(math.Round(ax + t1*(bx-ax))), Y: int(math.Round(ay + t1*(by-ay)))}
	d0 := ca.W() + t0*(cb.W()-ca.W())
	d1 := ca.W() + t1*(cb.W()-ca.W())

	pts := core.Line(p0, p1)
	for i, p := range pts {
		d := d0
		if len(pts) > 1 {
			d += (d1 - d0) * float64(i) / float64(len(pts)-1)
		}
		r.plot(p.X, p.Y, d+bias, ch, c)
	}
}

// fillHull fills the screen-space convex hull of pts at their mean depth.
// Shapes crossing the near plane are skipped.
func (r *ScreenRenderer) fillHull(pts []mgl64.Vec3, ch rune, c core.Color, bias float64) {
	screen := make([][2]float64, 0, len(pts))
	depth := 0.0
	for _, p := range pts {
		clip := r.mvp.Mul4x1(p.Vec4(1))
		if clip.W() < Near {
			return
		}
		x, y := r.toScreen(clip)
		screen = append(screen, [2]float64{x, y})
		depth += clip.W()
	}
	depth /= float64(len(pts))

	hull := convexHull(screen)
	if len(hull) < 3 {
		return
	}
	minX, minY, maxX, maxY := hull[0][0], hull[0][1], hull[0][0], hull[0][1]
	for _, p := range hull[1:] {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	x0 := core.Clamp(int(math.Floor(minX)), 0, r.screen.Width()-1)
	x1 := core.Clamp(int(math.Ceil(maxX)), 0, r.screen.Width()-1)
	y0 := core.Clamp(int(math.Floor(minY)), 0, r.screen.Height()-1)
	y1 := core.Clamp(int(math.Ceil(maxY)), 0, r.screen.Height()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insideHull(hull, float64(x), float64(y)) {
				r.plot(x, y, depth+bias, ch, c)
			}
		}
	}
}

// fillSphere fills the projected ellipse of a sphere.
func (r *ScreenRenderer) fillSphere(center mgl64.Vec3, radius float64, ch rune, c core.Color) {
	clip := r.mvp.Mul4x1(center.Vec4(1))
	if clip.W()-radius < Near {
		return
	}
	cx, cy := r.toScreen(clip)
	focal := 1 / math.Tan(r.fovY/2)
	ry := radius * focal / clip.W() * float64(r.screen.Height()-1) / 2
	rx := radius * focal / r.aspect / clip.W() * float64(r.screen.Width()-1) / 2
	if rx <= 0 || ry <= 0 {
		return
	}

	x0 := core.Clamp(int(math.Floor(cx-rx)), 0, r.screen.Width()-1)
	x1 := core.Clamp(int(math.Ceil(cx+rx)), 0, r.screen.Width()-1)
	y0 := core.Clamp(int(math.Floor(cy-ry)), 0, r.screen.Height()-1)
	y1 := core.Clamp(int(math.Ceil(cy+ry)), 0, r.screen.Height()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if q := dx*dx + dy*dy; q <= 1 {
				// Nearer toward the middle of the disc
				r.plot(x, y, clip.W()-radius*math.Sqrt(1-q), ch, c)
			}
		}
	}
}

// drawGround draws a grid on the plane around the origin. Only horizontal
// planes are drawn.
func (r *ScreenRenderer) drawGround(sh physics.Shape) {
	if sh.Normal.Y() <= 0 {
		return
	}
	y := sh.Distance / sh.Normal.Y()
	for i := -gridExtent; i <= gridExtent; i += gridStep {
		f := float64(i)
		r.line(mgl64.Vec3{f, y, -gridExtent}, mgl64.Vec3{f, y, gridExtent}, groundRune, groundColor, groundBias)
		r.line(mgl64.Vec3{-gridExtent, y, f}, mgl64.Vec3{gridExtent, y, f}, groundRune, groundColor, groundBias)
	}
}

func lerp4(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// slopeRune picks a line-drawing rune for a screen direction.
func slopeRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax*0.5:
		return '-'
	case ax <= ay*0.5:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// clipRect clips the segment (ax,ay)-(bx,by) to a rectangle with the
// Liang-Barsky method and returns the parameter range that remains.
func clipRect(ax, ay, bx, by, minX, minY, maxX, maxY float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := bx-ax, by-ay
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{ax - minX, maxX - ax, ay - minY, maxY - ay}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// convexHull returns the hull of pts in counter-clockwise order
// (monotone chain).
func convexHull(pts [][2]float64) [][2]float64 {
	if len(pts) < 3 {
		return pts
	}
	sorted := append([][2]float64(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})

	cross := func(o, a, b [2]float64) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}
	hull := make([][2]float64, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// insideHull reports whether (x, y) lies inside or on a convex hull given
// in counter-clockwise order.
func insideHull(hull [][2]float64, x, y float64) bool {
	for i := range hull {
		a, b := hull[i], hull[(i+1)%len(hull)]
		if (b[0]-a[0])*(y-a[1])-(b[1]-a[1])*(x-a[0]) < -1e-9 {
			return false
		}
	}
	return true
}
