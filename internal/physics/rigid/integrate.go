package rigid

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

const contactSlop = 1e-4

// bounds is the collision footprint of an actor.
type bounds struct {
	solid  bool       // has at least one non-trigger shape
	plane  bool       // static infinite plane
	normal mgl64.Vec3 // plane only, unit length
	dist   float64    // plane only
	half   mgl64.Vec3 // AABB half extents of the solid shapes
	radius float64    // >0 when the only solid shape is a sphere
}

func boundsOf(shapes []physics.Shape) bounds {
	var b bounds
	solids := 0
	for _, s := range shapes {
		if s.Trigger {
			continue
		}
		solids++
		b.solid = true
		switch s.Kind {
		case physics.ShapePlane:
			b.plane = true
			b.normal = s.Normal.Normalize()
			b.dist = s.Distance
		case physics.ShapeBox:
			b.half = maxVec(b.half, s.HalfExtents)
		case physics.ShapeSphere:
			b.half = maxVec(b.half, mgl64.Vec3{s.Radius, s.Radius, s.Radius})
			b.radius = s.Radius
		}
	}
	if solids != 1 {
		b.radius = 0
	}
	return b
}

// support returns the extent of the footprint along unit direction n.
func (b bounds) support(n mgl64.Vec3) float64 {
	if b.radius > 0 {
		return b.radius
	}
	return math.Abs(n.X())*b.half.X() + math.Abs(n.Y())*b.half.Y() + math.Abs(n.Z())*b.half.Z()
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}

// body is the step goroutine's private copy of an actor.
type body struct {
	dynamic    bool
	pos, vel   mgl64.Vec3
	force      mgl64.Vec3
	invMass    float64
	damping    float64
	bounds     bounds
	asleep     bool
	sleepTimer float64
}

// moves reports whether the solver integrates this body.
// Trigger-only bodies stay where they are written.
func (b *body) moves() bool {
	return b.dynamic && b.bounds.solid && !b.asleep
}

func (b *body) integrate(h float64, gravity mgl64.Vec3) {
	if !b.moves() {
		return
	}
	acc := gravity.Add(b.force.Mul(b.invMass))
	b.vel = b.vel.Add(acc.Mul(h))
	if b.damping > 0 {
		b.vel = b.vel.Mul(1 / (1 + b.damping*h))
	}
	b.pos = b.pos.Add(b.vel.Mul(h))
}

// step is one Simulate call in flight.
type step struct {
	dt     float64
	bodies []body
	done   chan struct{}
}

func (st *step) run(opts Options, gravity mgl64.Vec3, workers int) {
	if st.dt == 0 {
		return
	}
	h := st.dt / float64(opts.Substeps)
	for i := 0; i < opts.Substeps; i++ {
		parallel(workers, len(st.bodies), func(j int) {
			st.bodies[j].integrate(h, gravity)
		})
		st.solveContacts(opts)
	}
	st.trySleep(opts)
}

// parallel runs fn over [0,n) split into contiguous chunks, one per worker.
func parallel(workers, n int, fn func(i int)) {
	if workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

func (st *step) solveContacts(opts Options) {
	for i := range st.bodies {
		bi := &st.bodies[i]
		if !bi.dynamic || !bi.bounds.solid {
			continue
		}
		for j := range st.bodies {
			bj := &st.bodies[j]
			if i == j || !bj.bounds.solid {
				continue
			}
			if bj.bounds.plane {
				planeContact(bi, bj.bounds, opts)
				continue
			}
			// Dynamic pairs are handled once, from the lower index
			if bj.dynamic && j < i {
				continue
			}
			aabbContact(bi, bj)
		}
	}
}

// planeContact keeps b at the skin depth above the plane, removes the
// approaching normal velocity and applies Coulomb friction.
func planeContact(b *body, plane bounds, opts Options) {
	n := plane.normal
	d := n.Dot(b.pos) - plane.dist
	rest := b.bounds.support(n) - opts.SkinWidth
	if d > rest+contactSlop {
		return
	}
	if d < rest {
		b.pos = b.pos.Add(n.Mul(rest - d))
	}

	vn := b.vel.Dot(n)
	if vn >= 0 {
		return
	}
	b.vel = b.vel.Sub(n.Mul(vn))

	tangent := b.vel.Sub(n.Mul(b.vel.Dot(n)))
	speed := tangent.Len()
	if speed == 0 {
		return
	}
	drop := opts.Friction * -vn
	if drop >= speed {
		b.vel = b.vel.Sub(tangent)
	} else {
		b.vel = b.vel.Sub(tangent.Mul(drop / speed))
	}
}

// aabbContact pushes a dynamic body and another solid body apart along the
// axis of minimum penetration, split by inverse mass.
func aabbContact(a, b *body) {
	depth, axis := penetrationAxis(a, b)
	if axis < 0 {
		return
	}

	wa := a.invMass
	wb := 0.0
	if b.dynamic {
		wb = b.invMass
	}
	total := wa + wb
	if total == 0 {
		return
	}

	// a moves toward negative axis when it sits below b
	sign := 1.0
	if a.pos[axis] < b.pos[axis] {
		sign = -1
	}
	a.pos[axis] += sign * depth * wa / total
	b.pos[axis] -= sign * depth * wb / total

	// Drop velocity pointing into the other body
	if a.vel[axis]*sign < 0 {
		a.vel[axis] = 0
	}
	if b.dynamic && b.vel[axis]*sign > 0 {
		b.vel[axis] = 0
	}
	if wb > 0 && b.asleep {
		b.asleep = false
		b.sleepTimer = 0
	}
}

// penetrationAxis returns the overlap depth and axis (0=X, 1=Y, 2=Z) of
// minimum penetration, or (0, -1) when the boxes do not overlap.
func penetrationAxis(a, b *body) (float64, int) {
	depth := math.Inf(1)
	axis := -1
	for k := 0; k < 3; k++ {
		overlap := math.Min(a.pos[k]+a.bounds.half[k], b.pos[k]+b.bounds.half[k]) -
			math.Max(a.pos[k]-a.bounds.half[k], b.pos[k]-b.bounds.half[k])
		if overlap <= 0 {
			return 0, -1
		}
		if overlap < depth {
			depth = overlap
			axis = k
		}
	}
	return depth, axis
}

// trySleep puts slow bodies to sleep once they have been slow for SleepTime.
func (st *step) trySleep(opts Options) {
	for i := range st.bodies {
		b := &st.bodies[i]
		if !b.dynamic || !b.bounds.solid || b.asleep {
			continue
		}
		if b.vel.Len() < opts.SleepVelocity {
			b.sleepTimer += st.dt
			if b.sleepTimer >= opts.SleepTime {
				b.asleep = true
				b.vel = mgl64.Vec3{}
			}
			continue
		}
		b.sleepTimer = 0
	}
}
