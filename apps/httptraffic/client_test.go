package httptraffic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/netsimlab/vns/sim"
	"github.com/netsimlab/vns/tracing"
)

var _ = Describe("Client and Server", func() {
	var (
		engine  *sim.Engine
		channel *Channel
		server  *Server
		client  *Client
	)

	BeforeEach(func() {
		engine = sim.NewEngine()
		channel = NewChannel(engine, sim.Milliseconds(30))

		variables := NewVariables(1).
			WithMeanParsingTime(0.1).
			WithMeanReadingTime(1.0)

		server = NewServer("Server1", variables, channel)
		client = NewClient("Client1", engine, variables, channel, server)
	})

	It("should load the requested number of pages", func() {
		client.WithPageBudget(5)
		client.Start()

		Expect(engine.Run()).To(Succeed())

		Expect(client.PagesLoaded).To(Equal(uint64(5)))
		Expect(server.MainObjectsServed).To(Equal(uint64(5)))
		Expect(client.ObjectsReceived).To(Equal(
			server.MainObjectsServed + server.EmbeddedObjectsServed))
	})

	It("should receive every byte the server sends", func() {
		client.WithPageBudget(3)
		client.Start()

		Expect(engine.Run()).To(Succeed())

		Expect(client.BytesReceived).To(BeNumerically(">", 0))
	})

	It("should spend at least two channel trips per page", func() {
		client.WithPageBudget(1)
		client.Start()

		Expect(engine.Run()).To(Succeed())

		Expect(engine.Now()).To(BeNumerically(">=", 2*channel.Delay()))
	})

	It("should stop when the engine deadline passes", func() {
		client.Start()

		Expect(engine.StopAt(sim.Seconds(20))).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(engine.Now()).To(BeNumerically("<=", sim.Seconds(20)))
		Expect(client.PagesLoaded).To(BeNumerically(">", 0))
	})

	It("should trace one task per page", func() {
		tracer := tracing.NewAverageTimeTracer(engine, tracing.AnyTask)
		tracing.CollectTrace(client, tracer)

		client.WithPageBudget(4)
		client.Start()

		Expect(engine.Run()).To(Succeed())

		Expect(tracer.AverageTime()).To(BeNumerically(">", 0))
		Expect(tracer.TotalCount()).To(Equal(uint64(4)))
	})

	It("should be deterministic given a seed", func() {
		run := func() (uint64, sim.VTimeInNano) {
			e := sim.NewEngine()
			ch := NewChannel(e, sim.Milliseconds(30))
			v := NewVariables(7).
				WithMeanParsingTime(0.1).
				WithMeanReadingTime(1.0)
			srv := NewServer("Server1", v, ch)
			cl := NewClient("Client1", e, v, ch, srv).WithPageBudget(10)
			cl.Start()
			Expect(e.Run()).To(Succeed())
			return cl.BytesReceived, e.Now()
		}

		bytes1, now1 := run()
		bytes2, now2 := run()

		Expect(bytes1).To(Equal(bytes2))
		Expect(now1).To(Equal(now2))
	})
})
