package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const demoScenario = `
name: Demo.Scores
capacity: 4
steps:
  - append: [10, 10, 3, 2, 19, 44]
  - remove_last: 1
  - append: [5]
`

func execute(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	root := NewRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

var _ = Describe("Commands", func() {
	var (
		dir          string
		scenarioPath string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		scenarioPath = filepath.Join(dir, "demo.yaml")
		Expect(os.WriteFile(scenarioPath, []byte(demoScenario), 0o600)).To(Succeed())
	})

	Context("demo", func() {
		It("should print what fits in the default array", func() {
			out, _, err := execute("demo")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("10 10 3 2 19 \n"))
		})

		It("should accept values and a capacity", func() {
			out, _, err := execute("demo", "--capacity", "2", "7", "8", "9")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("7 8 \n"))
		})

		It("should reject non-integer values", func() {
			_, _, err := execute("demo", "seven")

			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative capacity", func() {
			_, _, err := execute("demo", "--capacity", "-1")

			Expect(err).To(HaveOccurred())
		})

		It("should take the capacity from the environment", func() {
			os.Setenv(envCapacity, "1")
			DeferCleanup(os.Unsetenv, envCapacity)

			out, _, err := execute("demo")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("10 \n"))
		})

		It("should take the capacity from a dotenv file", func() {
			envFile := filepath.Join(dir, "goodies.env")
			Expect(os.WriteFile(envFile, []byte(envCapacity+"=3\n"), 0o600)).To(Succeed())
			DeferCleanup(os.Unsetenv, envCapacity)

			out, _, err := execute("demo", "--env-file", envFile)

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("10 10 3 \n"))
		})

		It("should prefer flags over the environment", func() {
			os.Setenv(envCapacity, "1")
			DeferCleanup(os.Unsetenv, envCapacity)

			out, _, err := execute("demo", "--capacity", "2")

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("10 10 \n"))
		})
	})

	Context("run", func() {
		It("should play the scenario", func() {
			out, _, err := execute("run", scenarioPath)

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("10 10 3 5 \n" +
				"length=4 capacity=4 appended=5 dropped=2 removed=1\n"))
		})

		It("should log operations when verbose", func() {
			_, errOut, err := execute("run", "-v", scenarioPath)

			Expect(err).NotTo(HaveOccurred())
			Expect(errOut).To(ContainSubstring("Demo.Scores Array Drop item=19"))
			Expect(errOut).To(ContainSubstring("Demo.Scores Array Remove Last item=2 detail={Index:3}"))
		})

		It("should report heap usage and resources", func() {
			out, _, err := execute("run", "--profile", "--resources", scenarioPath)

			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("heap allocated while playing:"))
			Expect(out).To(MatchRegexp(`rss=\d+ bytes`))
		})

		It("should fail on a missing scenario", func() {
			_, _, err := execute("run", filepath.Join(dir, "missing.yaml"))

			Expect(err).To(HaveOccurred())
		})

		It("should record operations that report can list", func() {
			recordPath := filepath.Join(dir, "rec")

			_, _, err := execute("run", "--record", recordPath, scenarioPath)
			Expect(err).NotTo(HaveOccurred())

			out, _, err := execute("report", recordPath+".sqlite3")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Array Drop"))
			Expect(out).To(ContainSubstring("8 of 8 operations"))

			out, _, err = execute("report", "--limit", "2",
				"--array", "Demo.Scores", recordPath+".sqlite3")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("2 of 8 operations"))

			out, _, err = execute("report", "--array", "Other", recordPath+".sqlite3")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("0 of 0 operations"))
		})
	})

	Context("inspect", func() {
		It("should dump the array", func() {
			out, _, err := execute("inspect", scenarioPath)

			Expect(err).NotTo(HaveOccurred())
			Expect(out).NotTo(BeEmpty())
		})
	})
})
