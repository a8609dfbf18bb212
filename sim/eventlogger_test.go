package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func heartbeatCallback() {}

var _ = Describe("EventLogger", func() {
	var (
		engine *Engine
		buf    *bytes.Buffer
	)

	BeforeEach(func() {
		engine = NewEngine()
		buf = &bytes.Buffer{}
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)))
	})

	It("should log time, sequence, and callback of each event", func() {
		_, err := engine.ScheduleAt(Seconds(1), heartbeatCallback)
		Expect(err).To(BeNil())

		Expect(engine.Run()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("1.000000000, #1,"))
		Expect(buf.String()).To(ContainSubstring("heartbeatCallback"))
	})

	It("should log events in dispatch order", func() {
		_, err := engine.ScheduleAt(Seconds(2), heartbeatCallback)
		Expect(err).To(BeNil())
		_, err = engine.ScheduleAt(Seconds(1), heartbeatCallback)
		Expect(err).To(BeNil())

		Expect(engine.Run()).To(Succeed())

		first := bytes.Index(buf.Bytes(), []byte("1.000000000, #2"))
		second := bytes.Index(buf.Bytes(), []byte("2.000000000, #1"))
		Expect(first).To(BeNumerically(">=", 0))
		Expect(second).To(BeNumerically(">", first))
	})

	It("should not log cancelled events", func() {
		handle, err := engine.ScheduleAt(Seconds(1), heartbeatCallback)
		Expect(err).To(BeNil())
		engine.Cancel(handle)

		Expect(engine.Run()).To(Succeed())

		Expect(buf.Len()).To(Equal(0))
	})
})
