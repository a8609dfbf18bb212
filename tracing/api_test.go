package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Api", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *MockNamedHookable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = NewMockNamedHookable(mockCtrl)
		domain.EXPECT().NumHooks().Return(1).AnyTimes()
		domain.EXPECT().InvokeHook(gomock.Any()).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic if the ID is not given", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if the domain's name is empty", func() {
		domain.EXPECT().Name().Return("").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "what", nil)
		}).Should(Panic())
	})

	It("should panic if the kind is empty", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "", "what", nil)
		}).Should(Panic())
	})

	It("should panic if the what field is empty", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		Expect(func() {
			StartTask("id", "123", domain, "kind", "", nil)
		}).Should(Panic())
	})

	It("should invoke the task start hook", func() {
		domain.EXPECT().Name().Return("domain").AnyTimes()
		StartTask("id", "123", domain, "kind", "what", nil)
	})

	It("should skip silently when no hook is attached", func() {
		noHookDomain := NewMockNamedHookable(mockCtrl)
		noHookDomain.EXPECT().NumHooks().Return(0).AnyTimes()

		StartTask("id", "123", noHookDomain, "kind", "what", nil)
		AddTaskStep("id", noHookDomain, "step")
		EndTask("id", noHookDomain)
	})
})

var _ = Describe("CollectTrace", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward tasks from the domain to the tracer", func() {
		domain := &fakeDomain{name: "phy"}

		CollectTrace(domain, tracer)

		start := tracer.EXPECT().StartTask(gomock.Any())
		step := tracer.EXPECT().StepTask(gomock.Any()).After(start)
		tracer.EXPECT().EndTask(gomock.Any()).After(step)

		StartTask("t1", "", domain, "rx", "frame", nil)
		AddTaskStep("t1", domain, "preamble")
		EndTask("t1", domain)
	})

	It("should refuse to attach the same tracer twice", func() {
		domain := &fakeDomain{name: "phy"}

		CollectTrace(domain, tracer)
		Expect(func() {
			CollectTrace(domain, tracer)
		}).Should(Panic())
	})
})
