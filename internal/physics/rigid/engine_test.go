package rigid_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/physics/rigid"
)

const dt = 1.0 / 60

var gravity = mgl64.Vec3{0, -9.8, 0}

func newEngine(workers int) *rigid.Engine {
	opts := rigid.DefaultOptions()
	opts.Workers = workers
	e, err := rigid.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return e
}

func ground() physics.ActorDesc {
	return physics.ActorDesc{Name: "ground", Shapes: []physics.Shape{physics.PlaneShape()}}
}

func box(name string, pos mgl64.Vec3) physics.ActorDesc {
	return physics.ActorDesc{
		Name:     name,
		Shapes:   []physics.Shape{physics.BoxShape(mgl64.Vec3{0.5, 0.5, 0.5})},
		Body:     &physics.BodyDesc{},
		Density:  10,
		Position: pos,
	}
}

func step(s physics.Scene) {
	Expect(s.Simulate(dt)).To(Succeed())
	Expect(s.FetchResults(physics.RigidBodyFinished, true)).To(BeTrue())
}

var _ = Describe("Engine", func() {
	It("rejects a mismatched SDK version", func() {
		opts := rigid.DefaultOptions()
		opts.Version = physics.SDKVersion + 1
		_, err := rigid.New(opts)
		Expect(err).To(MatchError(physics.ErrVersionMismatch))
	})

	It("refuses hardware scenes without parallel workers", func() {
		e := newEngine(1)
		defer e.Release()
		_, err := e.CreateScene(physics.SceneDesc{Gravity: gravity, SimType: physics.SimHardware})
		Expect(err).To(MatchError(physics.ErrHardwareUnavailable))

		s, err := e.CreateScene(physics.SceneDesc{Gravity: gravity, SimType: physics.SimSoftware})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.SimType()).To(Equal(physics.SimSoftware))
	})

	It("stores parameters", func() {
		e := newEngine(1)
		defer e.Release()
		Expect(e.Parameter(physics.VisualizationScale)).To(BeZero())
		e.SetParameter(physics.VisualizationScale, 2)
		Expect(e.Parameter(physics.VisualizationScale)).To(Equal(2.0))
	})

	It("exposes a remote debugger that starts disconnected", func() {
		e := newEngine(1)
		defer e.Release()
		Expect(e.RemoteDebugger()).NotTo(BeNil())
		Expect(e.RemoteDebugger().Connected()).To(BeFalse())
	})

	It("fails scene creation after release", func() {
		e := newEngine(1)
		e.Release()
		_, err := e.CreateScene(physics.SceneDesc{Gravity: gravity})
		Expect(err).To(MatchError(physics.ErrEngineReleased))
	})
})

var _ = Describe("Scene", func() {
	var (
		e *rigid.Engine
		s physics.Scene
	)

	BeforeEach(func() {
		e = newEngine(1)
		var err error
		s, err = e.CreateScene(physics.SceneDesc{Gravity: gravity})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		e.Release()
	})

	Describe("actors", func() {
		It("derives mass from density", func() {
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Mass()).To(BeNumerically("~", 10, 1e-9))
			Expect(a.IsDynamic()).To(BeTrue())
		})

		It("keeps creation order", func() {
			_, err := s.CreateActor(ground())
			Expect(err).NotTo(HaveOccurred())
			_, err = s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())

			actors := s.Actors()
			Expect(actors).To(HaveLen(2))
			Expect(actors[0].Name()).To(Equal("ground"))
			Expect(actors[0].IsDynamic()).To(BeFalse())
			Expect(actors[1].Name()).To(Equal("box"))
		})

		It("rejects invalid descriptors", func() {
			_, err := s.CreateActor(physics.ActorDesc{Name: "empty"})
			Expect(err).To(MatchError(physics.ErrInvalidDesc))

			bad := ground()
			bad.Body = &physics.BodyDesc{}
			bad.Density = 1
			_, err = s.CreateActor(bad)
			Expect(err).To(MatchError(physics.ErrInvalidDesc))
		})
	})

	Describe("step and fetch", func() {
		It("returns false when nothing is in flight", func() {
			Expect(s.FetchResults(physics.RigidBodyFinished, true)).To(BeFalse())
			Expect(s.FetchResults(physics.AllFinished, false)).To(BeFalse())
		})

		It("rejects a second submit before fetch", func() {
			Expect(s.Simulate(dt)).To(Succeed())
			Expect(s.Simulate(dt)).To(MatchError(physics.ErrStepPending))
			Expect(s.FetchResults(physics.AllFinished, true)).To(BeTrue())
			Expect(s.Simulate(dt)).To(Succeed())
			Expect(s.FetchResults(physics.AllFinished, true)).To(BeTrue())
		})

		It("eventually completes a non-blocking fetch", func() {
			Expect(s.Simulate(dt)).To(Succeed())
			Eventually(func() bool {
				return s.FetchResults(physics.RigidBodyFinished, false)
			}).Should(BeTrue())
		})

		It("serves reads from the last fetched results", func() {
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Simulate(dt)).To(Succeed())
			Expect(a.GlobalPosition()).To(Equal(mgl64.Vec3{0, 3.5, 0}))
			Expect(s.FetchResults(physics.RigidBodyFinished, true)).To(BeTrue())
			Expect(a.GlobalPosition().Y()).To(BeNumerically("<", 3.5))
		})

		It("buffers writes made while a step is in flight", func() {
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Simulate(dt)).To(Succeed())
			a.SetGlobalPosition(mgl64.Vec3{1, 2, 3})
			a.SetLinearVelocity(mgl64.Vec3{})
			Expect(a.GlobalPosition()).To(Equal(mgl64.Vec3{0, 3.5, 0}))

			Expect(s.FetchResults(physics.RigidBodyFinished, true)).To(BeTrue())
			Expect(a.GlobalPosition()).To(Equal(mgl64.Vec3{1, 2, 3}))
			Expect(a.LinearVelocity()).To(Equal(mgl64.Vec3{}))
		})
	})

	Describe("dynamics", func() {
		It("settles a falling box at the skin height and stops", func() {
			_, err := s.CreateActor(ground())
			Expect(err).NotTo(HaveOccurred())
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())

			prev := a.GlobalPosition().Y()
			var heights []float64
			for i := 0; i < 600; i++ {
				step(s)
				y := a.GlobalPosition().Y()
				Expect(y).To(BeNumerically("<=", prev+1e-9))
				prev = y
				heights = append(heights, y)
			}
			Expect(prev).To(BeNumerically("~", 0.45, 1e-6))
			Expect(heights[len(heights)-1]).To(Equal(heights[len(heights)-60]))
		})

		It("applies a force to the next step only", func() {
			zeroG, err := e.CreateScene(physics.SceneDesc{})
			Expect(err).NotTo(HaveOccurred())
			a, err := zeroG.CreateActor(box("box", mgl64.Vec3{}))
			Expect(err).NotTo(HaveOccurred())

			a.AddForce(mgl64.Vec3{10 / dt, 0, 0})
			step(zeroG)
			Expect(a.LinearVelocity().X()).To(BeNumerically("~", 1, 1e-9))

			step(zeroG)
			Expect(a.LinearVelocity().X()).To(BeNumerically("~", 1, 1e-9))
		})

		It("lets bodies fall through trigger shapes", func() {
			_, err := s.CreateActor(ground())
			Expect(err).NotTo(HaveOccurred())
			trigger := physics.BoxShape(mgl64.Vec3{0.5, 0.5, 0.5})
			trigger.Trigger = true
			_, err = s.CreateActor(physics.ActorDesc{
				Name:     "trigger",
				Shapes:   []physics.Shape{trigger},
				Position: mgl64.Vec3{0, 1.5, 0},
			})
			Expect(err).NotTo(HaveOccurred())
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 300; i++ {
				step(s)
			}
			Expect(a.GlobalPosition().Y()).To(BeNumerically("~", 0.45, 1e-6))
		})

		It("stacks a box on a static crate", func() {
			_, err := s.CreateActor(ground())
			Expect(err).NotTo(HaveOccurred())
			_, err = s.CreateActor(physics.ActorDesc{
				Name:     "crate",
				Shapes:   []physics.Shape{physics.BoxShape(mgl64.Vec3{1, 1, 1})},
				Position: mgl64.Vec3{0, 1, 0},
			})
			Expect(err).NotTo(HaveOccurred())
			a, err := s.CreateActor(box("box", mgl64.Vec3{0, 4, 0}))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 300; i++ {
				step(s)
			}
			Expect(a.GlobalPosition().Y()).To(BeNumerically("~", 2.5, 1e-3))
		})

		It("matches software results on a hardware scene", func() {
			hw := newEngine(4)
			defer hw.Release()
			hs, err := hw.CreateScene(physics.SceneDesc{Gravity: gravity, SimType: physics.SimHardware})
			Expect(err).NotTo(HaveOccurred())

			var soft, hard []physics.Actor
			for _, sc := range []physics.Scene{s, hs} {
				_, err := sc.CreateActor(ground())
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 8; i++ {
					a, err := sc.CreateActor(box("box", mgl64.Vec3{float64(i) * 3, 2 + float64(i), 0}))
					Expect(err).NotTo(HaveOccurred())
					if sc == s {
						soft = append(soft, a)
					} else {
						hard = append(hard, a)
					}
				}
			}
			for i := 0; i < 120; i++ {
				step(s)
				step(hs)
			}
			for i := range soft {
				Expect(hard[i].GlobalPosition().Y()).To(BeNumerically("~", soft[i].GlobalPosition().Y(), 1e-9))
			}
		})
	})

	Describe("debug visualisation", func() {
		BeforeEach(func() {
			_, err := s.CreateActor(ground())
			Expect(err).NotTo(HaveOccurred())
			_, err = s.CreateActor(box("box", mgl64.Vec3{0, 3.5, 0}))
			Expect(err).NotTo(HaveOccurred())
		})

		It("is nil while the scale is zero", func() {
			step(s)
			Expect(s.DebugRenderable()).To(BeNil())
		})

		It("draws shapes and axes when enabled", func() {
			e.SetParameter(physics.VisualizationScale, 1)
			e.SetParameter(physics.VisualizeCollisionShapes, 1)
			step(s)
			Expect(s.DebugRenderable().Lines).To(HaveLen(6 + 12))

			e.SetParameter(physics.VisualizeActorAxes, 1)
			step(s)
			Expect(s.DebugRenderable().Lines).To(HaveLen(6 + 12 + 3))
		})
	})

	Describe("release", func() {
		It("refuses work on a released scene", func() {
			Expect(s.Simulate(dt)).To(Succeed())
			e.ReleaseScene(s)

			Expect(s.Simulate(dt)).To(MatchError(physics.ErrSceneReleased))
			Expect(s.FetchResults(physics.RigidBodyFinished, true)).To(BeFalse())
			_, err := s.CreateActor(box("box", mgl64.Vec3{}))
			Expect(err).To(MatchError(physics.ErrSceneReleased))
			Expect(s.Actors()).To(BeEmpty())
		})
	})
})
