package clock_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/clock"
)

var _ = Describe("Clock", func() {
	var policy clock.Policy

	BeforeEach(func() {
		policy = clock.Policy{TimeScale: 4, End: 8.66, HasEnd: true}
	})

	Describe("Tick", func() {
		It("does not move a stopped clock", func() {
			s := clock.Tick(clock.State{}, 1, policy)
			Expect(s.Time).To(BeZero())
			Expect(s.Phase).To(Equal(clock.Stopped))
		})

		It("scales elapsed time while running", func() {
			s := clock.Tick(clock.State{Phase: clock.Running}, 0.5, policy)
			Expect(s.Time).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("ignores zero and negative elapsed time", func() {
			s := clock.State{Time: 1, Phase: clock.Running}
			Expect(clock.Tick(s, 0, policy)).To(Equal(s))
			Expect(clock.Tick(s, -5, policy)).To(Equal(s))
		})

		It("clamps to the terminal time and stops", func() {
			s := clock.Tick(clock.State{Time: 8, Phase: clock.Running}, 10, policy)
			Expect(s.Time).To(Equal(8.66))
			Expect(s.Phase).To(Equal(clock.Terminal))
			Expect(clock.Tick(s, 1, policy)).To(Equal(s))
		})

		It("never decreases time", func() {
			s := clock.State{Phase: clock.Running}
			prev := 0.0
			for i := 0; i < 100; i++ {
				s = clock.Tick(s, 0.016, policy)
				Expect(s.Time).To(BeNumerically(">=", prev))
				Expect(s.Time).To(BeNumerically("<=", policy.End))
				prev = s.Time
			}
		})
	})

	Describe("Apply", func() {
		It("freezes time while paused", func() {
			s := clock.Tick(clock.State{Phase: clock.Running}, 0.5, policy)
			s = clock.Apply(s, clock.Pause, policy)
			frozen := s.Time
			s = clock.Tick(s, 3, policy)
			Expect(s.Time).To(Equal(frozen))
			Expect(clock.Apply(s, clock.Resume, policy).Phase).To(Equal(clock.Running))
		})

		It("resets to exactly zero", func() {
			s := clock.State{Time: 3.21, Phase: clock.Paused}
			Expect(clock.Apply(s, clock.Reset, policy)).To(Equal(clock.State{Phase: clock.Stopped}))
		})

		It("resets an auto-start clock into running", func() {
			policy.AutoStart = true
			s := clock.Apply(clock.State{Time: 9, Phase: clock.Paused}, clock.Reset, policy)
			Expect(s).To(Equal(clock.State{Phase: clock.Running}))
		})

		DescribeTable("Toggle",
			func(from, to clock.Phase) {
				s := clock.Apply(clock.State{Time: 1, Phase: from}, clock.Toggle, policy)
				Expect(s.Phase).To(Equal(to))
			},
			Entry("launches when stopped", clock.Stopped, clock.Running),
			Entry("pauses when running", clock.Running, clock.Paused),
			Entry("resumes when paused", clock.Paused, clock.Running),
			Entry("restarts when finished", clock.Terminal, clock.Running),
		)

		It("restarts from zero after the terminal time", func() {
			s := clock.Apply(clock.State{Time: 8.66, Phase: clock.Terminal}, clock.Toggle, policy)
			Expect(s.Time).To(BeZero())
		})
	})
})
