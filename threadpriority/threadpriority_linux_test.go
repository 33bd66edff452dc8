//go:build linux

package threadpriority_test

import (
	"os"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/schedutils/threadpriority"
)

var _ = Describe("thread scheduling on Linux", func() {
	It("returns a valid id for the calling thread", func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		Expect(threadpriority.CurrentThreadID().Valid()).To(BeTrue())
	})

	It("queries the realtime priority range", func() {
		min, err := threadpriority.PosixPriorityMin(threadpriority.PolicyFifo)
		Expect(err).ToNot(HaveOccurred())
		Expect(min).To(Equal(1))

		max, err := threadpriority.PosixPriorityMax(threadpriority.PolicyFifo)
		Expect(err).ToNot(HaveOccurred())
		Expect(max).To(Equal(99))
	})

	It("returns the fixed niceness bounds for the normal policies", func() {
		min, err := threadpriority.PosixPriorityMin(threadpriority.PolicyNormal)
		Expect(err).ToNot(HaveOccurred())
		Expect(min).To(Equal(19))

		max, err := threadpriority.PosixPriorityMax(threadpriority.PolicyNormal)
		Expect(err).ToNot(HaveOccurred())
		Expect(max).To(Equal(-20))
	})

	It("re-applies the current priority unchanged", func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		before, err := threadpriority.GetCurrentThreadPriority()
		Expect(err).ToNot(HaveOccurred())

		Expect(threadpriority.SetCurrentThreadPriority(before)).To(Succeed())

		after, err := threadpriority.GetCurrentThreadPriority()
		Expect(err).ToNot(HaveOccurred())
		Expect(after.Equal(before)).To(BeTrue())
	})

	It("lowers a dedicated thread to the minimum and reads it back", func() {
		type readback struct {
			value int
			ok    bool
			err   error
		}
		done := make(chan readback, 1)

		go func() {
			// Never unlocked: raising niceness cannot be undone without
			// privileges, so the altered thread dies with the goroutine.
			runtime.LockOSThread()

			id := threadpriority.CurrentThreadID()
			if err := threadpriority.SetThreadPriority(id, threadpriority.MinPriority()); err != nil {
				done <- readback{err: err}
				return
			}
			p, err := threadpriority.GetThreadPriority(id)
			if err != nil {
				done <- readback{err: err}
				return
			}
			v, ok := p.CrossPlatformValue()
			done <- readback{value: v, ok: ok}
		}()

		var r readback
		Eventually(done).Should(Receive(&r))
		Expect(r.err).ToNot(HaveOccurred())
		Expect(r.ok).To(BeTrue())
		Expect(r.value).To(Equal(0))
	})

	It("reports the policy and parameters of the calling thread", func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		policy, params, err := threadpriority.ThreadSchedulePolicyParams(threadpriority.CurrentThreadID())
		Expect(err).ToNot(HaveOccurred())
		Expect(policy).To(Equal(threadpriority.PolicyNormal))
		Expect(params.Priority).To(Equal(0))
	})

	It("surfaces native rejections as OSError", func() {
		if os.Geteuid() == 0 {
			Skip("running as root, realtime elevation would succeed")
		}
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		err := threadpriority.SetThreadScheduling(
			threadpriority.CurrentThreadID(),
			threadpriority.MaxPriority(),
			threadpriority.PolicyFifo,
		)
		Expect(err).To(BeAssignableToTypeOf(&threadpriority.OSError{}))
	})

	It("applies and reads back deadline attributes exactly", func() {
		if os.Geteuid() != 0 {
			Skip("deadline scheduling requires root")
		}
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		id := threadpriority.CurrentThreadID()
		defer func() {
			Expect(threadpriority.SetThreadScheduling(id, threadpriority.OsPriority(0), threadpriority.PolicyNormal)).To(Succeed())
		}()

		err := threadpriority.SetThreadDeadline(id, threadpriority.DeadlineParams{
			Runtime:  time.Millisecond,
			Deadline: 10 * time.Millisecond,
			Period:   100 * time.Millisecond,
		})
		Expect(err).ToNot(HaveOccurred())

		params, err := threadpriority.ThreadDeadlineParams(id)
		Expect(err).ToNot(HaveOccurred())
		Expect(params.Runtime).To(Equal(time.Duration(1_000_000)))
		Expect(params.Deadline).To(Equal(time.Duration(10_000_000)))
		Expect(params.Period).To(Equal(time.Duration(100_000_000)))

		p, err := threadpriority.GetThreadPriority(id)
		Expect(err).ToNot(HaveOccurred())
		Expect(p.IsDeadline()).To(BeTrue())
	})

	Describe("Builder", func() {
		It("applies the priority before the function runs", func() {
			read := make(chan threadpriority.ThreadPriority, 1)

			err := threadpriority.NewBuilder().
				WithPriority(threadpriority.MinPriority()).
				Spawn(func() {
					p, err := threadpriority.GetCurrentThreadPriority()
					Expect(err).ToNot(HaveOccurred())
					read <- p
				})
			Expect(err).ToNot(HaveOccurred())

			var got threadpriority.ThreadPriority
			Eventually(read).Should(Receive(&got))
			v, ok := got.CrossPlatformValue()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(0))
		})

		It("does not run the function when scheduling fails", func() {
			if os.Geteuid() == 0 {
				Skip("running as root, realtime elevation would succeed")
			}
			ran := make(chan struct{}, 1)

			err := threadpriority.NewBuilder().
				WithPriority(threadpriority.MaxPriority()).
				WithPolicy(threadpriority.PolicyFifo).
				Spawn(func() {
					ran <- struct{}{}
				})
			Expect(err).To(HaveOccurred())
			Consistently(ran).ShouldNot(Receive())
		})
	})
})
