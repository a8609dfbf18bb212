package tracing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/netsimlab/vns/sim"
)

var _ = Describe("CSVTraceWriter", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace_out")
	})

	readFile := func() string {
		data, err := os.ReadFile(path + ".csv")
		Expect(err).To(BeNil())
		return string(data)
	}

	It("should write a header on Init", func() {
		w := NewCSVTraceWriter(path)
		w.Init()

		Expect(readFile()).To(HavePrefix(
			"ID, ParentID, Kind, What, Where, Start, End\n"))
	})

	It("should refuse to overwrite an existing file", func() {
		NewCSVTraceWriter(path).Init()

		Expect(func() {
			NewCSVTraceWriter(path).Init()
		}).To(Panic())
	})

	It("should write buffered tasks on Flush", func() {
		w := NewCSVTraceWriter(path)
		w.Init()

		w.Write(Task{
			ID:        "t1",
			Kind:      "page",
			What:      "load page",
			Where:     "Client1",
			StartTime: sim.Seconds(1),
			EndTime:   sim.Seconds(3),
		})
		Expect(readFile()).NotTo(ContainSubstring("t1"))

		w.Flush()
		Expect(readFile()).To(ContainSubstring(
			"t1, , page, load page, Client1, 1.000000000, 3.000000000"))
	})
})

var _ = Describe("CSVTracer", func() {
	var (
		clock  *fakeClock
		writer *CSVTraceWriter
		tracer *CSVTracer
		path   string
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "trace_out")
		clock = &fakeClock{}
		writer = NewCSVTraceWriter(path)
		tracer = NewCSVTracer(clock, writer)
	})

	readFile := func() string {
		data, err := os.ReadFile(path + ".csv")
		Expect(err).To(BeNil())
		return string(data)
	}

	It("should record completed tasks with their time range", func() {
		clock.now = sim.Seconds(1)
		tracer.StartTask(Task{ID: "a", Kind: "page", What: "load page",
			Where: "Client1"})

		clock.now = sim.Seconds(4)
		tracer.EndTask(Task{ID: "a"})
		tracer.Flush()

		Expect(readFile()).To(ContainSubstring(
			"a, , page, load page, Client1, 1.000000000, 4.000000000"))
	})

	It("should ignore the end of an unknown task", func() {
		tracer.EndTask(Task{ID: "ghost"})
		tracer.Flush()

		Expect(readFile()).NotTo(ContainSubstring("ghost"))
	})
})
