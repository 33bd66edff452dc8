package threadpriority

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Windows priority mapping", func() {
	cp := func(v int) ThreadPriority {
		p, err := NewCrossPlatformPriority(v)
		Expect(err).ToNot(HaveOccurred())
		return p
	}

	Describe("winPriorityFromThreadPriority", func() {
		It("maps min to lowest and max to highest", func() {
			v, err := winPriorityFromThreadPriority(MinPriority())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(WinPriorityLowest))

			v, err = winPriorityFromThreadPriority(MaxPriority())
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(WinPriorityHighest))
		})

		It("buckets cross-platform values over the fixed breakpoints", func() {
			buckets := map[int]WinThreadPriority{
				0:  WinPriorityIdle,
				1:  WinPriorityLowest,
				19: WinPriorityLowest,
				21: WinPriorityBelowNormal,
				39: WinPriorityBelowNormal,
				41: WinPriorityNormal,
				59: WinPriorityNormal,
				61: WinPriorityAboveNormal,
				79: WinPriorityAboveNormal,
				81: WinPriorityHighest,
				98: WinPriorityHighest,
				99: WinPriorityTimeCritical,
			}
			for input, expected := range buckets {
				v, err := winPriorityFromThreadPriority(cp(input))
				Expect(err).ToNot(HaveOccurred(), "input %d", input)
				Expect(v).To(Equal(expected), "input %d", input)
			}
		})

		It("rejects the gap values with no level assigned", func() {
			for _, input := range []int{20, 40, 60, 80} {
				_, err := winPriorityFromThreadPriority(cp(input))
				Expect(err).To(BeAssignableToTypeOf(&PriorityError{}), "input %d", input)
			}
		})

		It("accepts opaque OS values only from the recognized constant set", func() {
			known := []WinThreadPriority{
				WinPriorityIdle, WinPriorityLowest, WinPriorityBelowNormal,
				WinPriorityNormal, WinPriorityAboveNormal, WinPriorityHighest,
				WinPriorityTimeCritical, WinPriorityBackgroundModeBegin,
				WinPriorityBackgroundModeEnd,
			}
			for _, c := range known {
				v, err := winPriorityFromThreadPriority(OsPriority(int(c)))
				Expect(err).ToNot(HaveOccurred())
				Expect(v).To(Equal(c))
			}

			_, err := winPriorityFromThreadPriority(OsPriority(3))
			Expect(err).To(BeAssignableToTypeOf(&PriorityError{}))
		})

		It("rejects deadline priorities", func() {
			deadline, err := NewDeadlinePriority(DeadlineParams{})
			Expect(err).ToNot(HaveOccurred())

			_, err = winPriorityFromThreadPriority(deadline)
			Expect(err).To(BeAssignableToTypeOf(&PriorityError{}))
		})
	})

	Describe("winPriorityFromNative", func() {
		It("decodes the recognized constants", func() {
			v, err := winPriorityFromNative(-15)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(WinPriorityIdle))

			v, err = winPriorityFromNative(0x00010000)
			Expect(err).ToNot(HaveOccurred())
			Expect(v).To(Equal(WinPriorityBackgroundModeBegin))
		})

		It("reports anything else as a decode failure", func() {
			_, err := winPriorityFromNative(7)
			Expect(err).To(BeAssignableToTypeOf(&DecodeError{}))
		})
	})
})
