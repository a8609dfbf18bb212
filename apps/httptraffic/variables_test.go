package httptraffic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Variables", func() {
	var v *Variables

	BeforeEach(func() {
		v = NewVariables(1)
	})

	It("should keep object sizes within the model bounds", func() {
		for i := 0; i < 1000; i++ {
			main := v.MainObjectSize()
			Expect(main).To(BeNumerically(">=", minMainObject))
			Expect(main).To(BeNumerically("<=", maxMainObject))

			embedded := v.EmbeddedObjectSize()
			Expect(embedded).To(BeNumerically(">=", minEmbedded))
			Expect(embedded).To(BeNumerically("<=", maxEmbedded))
		}
	})

	It("should cap the number of embedded objects", func() {
		for i := 0; i < 1000; i++ {
			Expect(v.NumEmbeddedObjects()).
				To(BeNumerically("<=", maxNumEmbedded))
		}
	})

	It("should draw positive think times", func() {
		for i := 0; i < 1000; i++ {
			Expect(v.ParsingTime()).To(BeNumerically(">", 0))
			Expect(v.ReadingTime()).To(BeNumerically(">", 0))
		}
	})

	It("should be reproducible for the same seed", func() {
		a := NewVariables(42)
		b := NewVariables(42)

		for i := 0; i < 100; i++ {
			Expect(a.MainObjectSize()).To(Equal(b.MainObjectSize()))
			Expect(a.NumEmbeddedObjects()).To(Equal(b.NumEmbeddedObjects()))
			Expect(a.ReadingTime()).To(Equal(b.ReadingTime()))
		}
	})

	It("should honor overridden means", func() {
		v.WithMeanReadingTime(0.001).WithMeanParsingTime(0.001)

		total := 0.0
		for i := 0; i < 1000; i++ {
			total += v.ReadingTime().ToSeconds()
		}

		Expect(total / 1000).To(BeNumerically("~", 0.001, 0.0005))
	})
})
