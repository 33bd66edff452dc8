package threadpriority_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/schedutils/threadpriority"
)

var _ = Describe("ThreadPriority", func() {
	Describe("NewCrossPlatformPriority", func() {
		It("accepts values in [0; 100)", func() {
			for _, v := range []int{0, 1, 50, 98, 99} {
				p, err := threadpriority.NewCrossPlatformPriority(v)
				Expect(err).ToNot(HaveOccurred())
				got, ok := p.CrossPlatformValue()
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(v))
			}
		})

		It("rejects values outside [0; 100)", func() {
			for _, v := range []int{-1, 100, 101, 1000} {
				_, err := threadpriority.NewCrossPlatformPriority(v)
				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&threadpriority.PriorityError{}))
			}
		})
	})

	Describe("NewDeadlinePriority", func() {
		It("keeps the three durations and flags", func() {
			params := threadpriority.DeadlineParams{
				Runtime:  time.Millisecond,
				Deadline: 10 * time.Millisecond,
				Period:   100 * time.Millisecond,
				Flags:    threadpriority.DeadlineFlagResetOnFork,
			}
			p, err := threadpriority.NewDeadlinePriority(params)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.IsDeadline()).To(BeTrue())
			got, ok := p.Deadline()
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(params))
		})

		It("rejects negative durations", func() {
			_, err := threadpriority.NewDeadlinePriority(threadpriority.DeadlineParams{
				Runtime: -time.Millisecond,
			})
			Expect(err).To(BeAssignableToTypeOf(&threadpriority.PriorityError{}))
		})
	})

	Describe("ordering", func() {
		It("orders min below cross-platform values below max", func() {
			low := mustCrossPlatform(10)
			high := mustCrossPlatform(90)

			Expect(threadpriority.MinPriority().Less(low)).To(BeTrue())
			Expect(low.Less(high)).To(BeTrue())
			Expect(high.Less(threadpriority.MaxPriority())).To(BeTrue())
			Expect(threadpriority.MaxPriority().Less(low)).To(BeFalse())
		})
	})

	Describe("Equal", func() {
		It("compares variant and payload", func() {
			Expect(mustCrossPlatform(10).Equal(mustCrossPlatform(10))).To(BeTrue())
			Expect(mustCrossPlatform(10).Equal(mustCrossPlatform(11))).To(BeFalse())
			Expect(threadpriority.OsPriority(10).Equal(mustCrossPlatform(10))).To(BeFalse())
			Expect(threadpriority.MinPriority().Equal(threadpriority.MinPriority())).To(BeTrue())
		})
	})

	Describe("String", func() {
		It("names the variant", func() {
			Expect(threadpriority.MinPriority().String()).To(Equal("min"))
			Expect(threadpriority.MaxPriority().String()).To(Equal("max"))
			Expect(mustCrossPlatform(42).String()).To(Equal("cross-platform(42)"))
			Expect(threadpriority.OsPriority(-2).String()).To(Equal("os(-2)"))
		})
	})
})

var _ = Describe("ThreadID", func() {
	It("treats the zero value as invalid", func() {
		Expect(threadpriority.ThreadID{}.Valid()).To(BeFalse())
		Expect(threadpriority.NewThreadID(1234).Valid()).To(BeTrue())
	})
})

func mustCrossPlatform(v int) threadpriority.ThreadPriority {
	p, err := threadpriority.NewCrossPlatformPriority(v)
	Expect(err).ToNot(HaveOccurred())
	return p
}
