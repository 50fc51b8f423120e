package tracing_test

import (
	"bytes"
	"log"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bobbthebuilder/goodies/fixedarray"
	"github.com/bobbthebuilder/goodies/instrumentation/tracing"
)

var _ = Describe("OpCounter", func() {
	It("should count each position", func() {
		counter := tracing.NewOpCounter()
		arr := fixedarray.New[int]("Arr", 2)
		arr.AcceptHook(counter)

		arr.AppendMany(1, 2, 3)
		arr.RemoveLast()
		arr.RemoveLast()
		arr.RemoveLast()

		Expect(counter.Count(fixedarray.HookPosAppend)).To(Equal(uint64(2)))
		Expect(counter.Count(fixedarray.HookPosDrop)).To(Equal(uint64(1)))
		Expect(counter.Count(fixedarray.HookPosRemoveLast)).To(Equal(uint64(2)))
		Expect(counter.PosNames()).To(Equal([]string{
			fixedarray.HookPosAppend.Name,
			fixedarray.HookPosDrop.Name,
			fixedarray.HookPosRemoveLast.Name,
		}))
	})

	It("should be shared by arrays on different goroutines", func() {
		counter := tracing.NewOpCounter()

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()

				arr := fixedarray.New[int]("Arr", 10)
				arr.AcceptHook(counter)
				for j := 0; j < 10; j++ {
					arr.Append(j)
				}
			}()
		}
		wg.Wait()

		Expect(counter.Count(fixedarray.HookPosAppend)).To(Equal(uint64(40)))
	})
})

var _ = Describe("LogHook", func() {
	It("should log each event", func() {
		buf := new(bytes.Buffer)
		arr := fixedarray.New[string]("Demo.Names", 1)
		arr.AcceptHook(tracing.NewLogHook(log.New(buf, "", 0)))

		arr.AppendMany("ada", "grace")
		arr.RemoveLast()

		Expect(buf.String()).To(Equal(
			"Demo.Names Array Append item=ada detail={Index:0}\n" +
				"Demo.Names Array Drop item=grace\n" +
				"Demo.Names Array Remove Last item=ada detail={Index:0}\n"))
	})
})
