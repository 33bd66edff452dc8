package errors_test

import (
	goerrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	bosherr "github.com/cloudfoundry/schedutils/errors"
)

var _ = Describe("errors", func() {
	Describe("WrapError", func() {
		It("prepends the message to the cause", func() {
			cause := bosherr.Error("nope")
			err := bosherr.WrapError(cause, "Doing something")
			Expect(err.Error()).To(Equal("Doing something: nope"))
		})

		It("keeps the cause reachable via errors.Is", func() {
			cause := bosherr.Error("nope")
			err := bosherr.WrapError(cause, "Doing something")
			Expect(goerrors.Is(err, cause)).To(BeTrue())
		})

		It("tolerates a nil cause", func() {
			err := bosherr.WrapError(nil, "Doing something")
			Expect(err.Error()).To(Equal("Doing something: <nil cause>"))
		})
	})

	Describe("WrapErrorf", func() {
		It("formats the wrapping message", func() {
			cause := bosherr.Error("nope")
			err := bosherr.WrapErrorf(cause, "Setting priority for thread %d", 42)
			Expect(err.Error()).To(Equal("Setting priority for thread 42: nope"))
		})
	})

	Describe("WrapComplexError", func() {
		It("nests wrapped errors outermost-first", func() {
			inner := bosherr.WrapError(bosherr.Error("root"), "middle")
			err := bosherr.WrapComplexError(inner, bosherr.Error("outer"))
			Expect(err.Error()).To(Equal("outer: middle: root"))
		})
	})
})
