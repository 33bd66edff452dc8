//go:build linux

package main_test

import (
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("schedctl", func() {
	run := func(args ...string) *gexec.Session {
		session, err := gexec.Start(exec.Command(schedctlBinPath, args...), GinkgoWriter, GinkgoWriter)
		Expect(err).ToNot(HaveOccurred())
		return session
	}

	It("prints the calling thread's scheduling", func() {
		session := run("get")
		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`thread \d+ priority `))
	})

	It("lowers its own thread without privileges", func() {
		session := run("set", "--priority", "0")
		Eventually(session).Should(gexec.Exit(0))
	})

	It("rejects an out-of-range priority", func() {
		session := run("set", "--priority", "100")
		Eventually(session).Should(gexec.Exit(1))
		Expect(session.Err).To(gbytes.Say(`out of range \[0; 99\]`))
	})

	It("applies a named profile from a file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "profiles.yml")
		Expect(os.WriteFile(path, []byte("background:\n  priority: min\n"), 0600)).To(Succeed())

		session := run("--profiles", path, "apply", "background")
		Eventually(session).Should(gexec.Exit(0))
	})

	It("fails when the profile is unknown", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "profiles.yml")
		Expect(os.WriteFile(path, []byte("background:\n  priority: min\n"), 0600)).To(Succeed())

		session := run("--profiles", path, "apply", "foreground")
		Eventually(session).Should(gexec.Exit(1))
		Expect(session.Err).To(gbytes.Say("Profile 'foreground' not found"))
	})
})
