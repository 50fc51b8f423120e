package naming

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	It("should parse elements and indices", func() {
		n, err := Parse("Demo[0].Scores[1][2]")

		Expect(err).NotTo(HaveOccurred())
		Expect(n.Elems).To(HaveLen(2))
		Expect(n.Elems[0].Label).To(Equal("Demo"))
		Expect(n.Elems[0].Indices).To(Equal([]int{0}))
		Expect(n.Elems[1].Label).To(Equal("Scores"))
		Expect(n.Elems[1].Indices).To(Equal([]int{1, 2}))
		Expect(n.String()).To(Equal("Demo[0].Scores[1][2]"))
	})

	It("should reject unmatched brackets", func() {
		_, err := Parse("Scores[0")
		Expect(err).To(HaveOccurred())

		_, err = Parse("Scores0]")
		Expect(err).To(HaveOccurred())
	})

	It("should reject non-integer indices", func() {
		_, err := Parse("Scores[x]")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("invalid names",
		func(name string) {
			Expect(Validate(name)).To(HaveOccurred())
			Expect(func() { MustBeValid(name) }).To(Panic())
		},
		Entry("empty", ""),
		Entry("empty element", "Demo..Scores"),
		Entry("underscore", "Demo_Scores"),
		Entry("dash", "Demo-Scores"),
		Entry("quote", "Demo'"),
		Entry("lower case", "scores"),
	)

	It("should accept valid names", func() {
		Expect(Validate("Demo.Scores[3]")).To(Succeed())
		Expect(func() { MustBeValid("Arr") }).NotTo(Panic())
	})

	It("should join names", func() {
		Expect(Join("", "Arr")).To(Equal("Arr"))
		Expect(Join("Demo", "Arr")).To(Equal("Demo.Arr"))
		Expect(JoinIndexed("Demo", "Arr", 4)).To(Equal("Demo.Arr[4]"))
	})
})
