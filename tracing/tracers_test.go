package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/netsimlab/vns/sim"
)

type fakeDomain struct {
	sim.HookableBase
	name string
}

func (d *fakeDomain) Name() string {
	return d.name
}

type fakeClock struct {
	now sim.VTimeInNano
}

func (c *fakeClock) Now() sim.VTimeInNano {
	return c.now
}

var _ = Describe("AverageTimeTracer", func() {
	var (
		clock  *fakeClock
		tracer *AverageTimeTracer
	)

	BeforeEach(func() {
		clock = &fakeClock{}
		tracer = NewAverageTimeTracer(clock, AnyTask)
	})

	It("should average completed task durations", func() {
		clock.now = sim.Seconds(1)
		tracer.StartTask(Task{ID: "a", Kind: "page"})

		clock.now = sim.Seconds(2)
		tracer.StartTask(Task{ID: "b", Kind: "page"})

		clock.now = sim.Seconds(3)
		tracer.EndTask(Task{ID: "a"})

		clock.now = sim.Seconds(6)
		tracer.EndTask(Task{ID: "b"})

		Expect(tracer.TotalCount()).To(Equal(uint64(2)))
		Expect(tracer.AverageTime()).To(Equal(sim.Seconds(3)))
	})

	It("should ignore tasks rejected by the filter", func() {
		tracer = NewAverageTimeTracer(clock, TaskKindIs("page"))

		tracer.StartTask(Task{ID: "a", Kind: "frame"})
		clock.now = sim.Seconds(5)
		tracer.EndTask(Task{ID: "a"})

		Expect(tracer.TotalCount()).To(Equal(uint64(0)))
	})

	It("should ignore the end of an unknown task", func() {
		tracer.EndTask(Task{ID: "missing"})

		Expect(tracer.TotalCount()).To(Equal(uint64(0)))
	})
})
