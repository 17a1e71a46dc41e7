package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/riscv5sim/emu"
)

var _ = Describe("CPUState", func() {
	var state *emu.CPUState

	BeforeEach(func() {
		state = &emu.CPUState{}
	})

	It("hard-wires x0 to zero regardless of writes", func() {
		state.WriteX(0, 0xDEADBEEF)
		Expect(state.ReadX(0)).To(Equal(uint32(0)))
	})

	It("reads back a written integer register", func() {
		state.WriteX(5, 42)
		Expect(state.ReadX(5)).To(Equal(uint32(42)))
	})

	It("reads back a written float register, including register 0", func() {
		state.WriteF(0, 1.5)
		Expect(state.ReadF(0)).To(Equal(float32(1.5)))
	})

	It("has no pending exception by default", func() {
		Expect(state.Exc.Pending()).To(BeFalse())
	})

	It("latches an exception via Raise", func() {
		state.Raise(emu.ExceptionMemoryAccessFault, 0x40, "out of bounds")
		Expect(state.Exc.Pending()).To(BeTrue())
		Expect(state.Exc.Kind).To(Equal(emu.ExceptionMemoryAccessFault))
		Expect(state.Exc.PC).To(Equal(uint32(0x40)))
	})

	It("clears the PC, all registers, and the exception on Reset", func() {
		state.WriteX(3, 1)
		state.WriteF(3, 1)
		state.PC = 0x1000
		state.Raise(emu.ExceptionInvalidInstruction, 0x1000, "bad opcode")

		state.Reset()

		Expect(state.PC).To(Equal(uint32(0)))
		Expect(state.ReadX(3)).To(Equal(uint32(0)))
		Expect(state.ReadF(3)).To(Equal(float32(0)))
		Expect(state.Exc.Pending()).To(BeFalse())
	})
})
