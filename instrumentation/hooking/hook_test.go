package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	tag  string
	seen *[]string
}

func (h *recordingHook) Func(ctx HookCtx) {
	*h.seen = append(*h.seen, h.tag+":"+ctx.Pos.Name)
}

type namedDomain struct {
	HookableBase
}

func (d *namedDomain) Name() string { return "Domain" }

var _ = Describe("HookableBase", func() {
	var (
		pos    = &HookPos{Name: "Pos"}
		domain *namedDomain
		seen   []string
	)

	BeforeEach(func() {
		domain = &namedDomain{}
		seen = nil
	})

	It("should invoke hooks in registration order", func() {
		domain.AcceptHook(&recordingHook{tag: "a", seen: &seen})
		domain.AcceptHook(&recordingHook{tag: "b", seen: &seen})

		domain.InvokeHook(HookCtx{Domain: domain, Pos: pos})

		Expect(domain.NumHooks()).To(Equal(2))
		Expect(domain.Hooks()).To(HaveLen(2))
		Expect(seen).To(Equal([]string{"a:Pos", "b:Pos"}))
	})

	It("should panic on duplicated hooks", func() {
		hook := &recordingHook{tag: "a", seen: &seen}
		domain.AcceptHook(hook)

		Expect(func() { domain.AcceptHook(hook) }).To(Panic())
	})

	It("should accept hook funcs", func() {
		var names []string
		domain.AcceptHook(HookFunc(func(ctx HookCtx) {
			names = append(names, ctx.DomainName())
		}))

		domain.InvokeHook(HookCtx{Domain: domain, Pos: pos})

		Expect(names).To(Equal([]string{"Domain"}))
	})

	It("should report an empty name for unnamed domains", func() {
		ctx := HookCtx{Domain: &HookableBase{}, Pos: pos}

		Expect(ctx.DomainName()).To(BeEmpty())
	})
})
