package loader_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/riscv5sim/emu"
	"github.com/sarchlab/riscv5sim/insts"
	"github.com/sarchlab/riscv5sim/loader"
)

var _ = Describe("Program", func() {
	Describe("NewProgram", func() {
		It("starts empty", func() {
			prog := loader.NewProgram()
			Expect(prog.Words).To(BeEmpty())
			Expect(prog.Size()).To(Equal(uint32(0)))
		})
	})

	Describe("SetData and Load", func() {
		It("writes both instructions and data into RAM", func() {
			prog := loader.NewProgram()
			prog.Words = []uint32{insts.EncodeLUI(5, 1), insts.EncodeJ()}
			prog.SetData(0x100, 0xDEADBEEF)

			ram := emu.NewRAM(4096)
			prog.Load(ram)

			Expect(ram.Read32(0)).To(Equal(prog.Words[0]))
			Expect(ram.Read32(4)).To(Equal(prog.Words[1]))
			Expect(ram.Read32(0x100)).To(Equal(uint32(0xDEADBEEF)))
		})
	})

	Describe("Size", func() {
		It("reports 4 bytes per instruction", func() {
			prog := loader.NewProgram()
			prog.Words = []uint32{insts.EncodeJ(), insts.EncodeJ(), insts.EncodeJ()}
			Expect(prog.Size()).To(Equal(uint32(12)))
		})
	})
})

var _ = Describe("Assembler", func() {
	It("tracks PC as instructions are emitted", func() {
		a := loader.NewAssembler()
		Expect(a.PC()).To(Equal(uint32(0)))

		a.ADDI(1, 0, 3)
		Expect(a.PC()).To(Equal(uint32(4)))

		a.BNEZ(1, 4)
		Expect(a.PC()).To(Equal(uint32(8)))
	})

	It("produces a Program whose words decode back to the emitted instructions", func() {
		a := loader.NewAssembler()
		a.LUI(5, 0x10000)
		a.ADDI(5, 5, 1)
		a.J()

		prog := a.Program()
		Expect(prog.Words).To(HaveLen(3))

		dec := insts.NewDecoder()
		lui := dec.Decode(prog.Words[0])
		Expect(lui.Op).To(Equal(insts.OpLUI))
		Expect(lui.Rd).To(Equal(uint8(5)))

		addi := dec.Decode(prog.Words[1])
		Expect(addi.Op).To(Equal(insts.OpADDI))
		Expect(addi.Imm).To(Equal(int32(1)))
	})

	It("assembles a runnable float load/store/add sequence", func() {
		a := loader.NewAssembler()
		a.FLW(1, 0, 0x100)
		a.FLW(2, 0, 0x104)
		a.FADDS(3, 1, 2)
		a.FSW(0, 3, 0x108)
		a.J()

		prog := a.Program()
		dec := insts.NewDecoder()
		ops := make([]insts.Op, len(prog.Words))
		for i, w := range prog.Words {
			ops[i] = dec.Decode(w).Op
		}
		Expect(ops).To(Equal([]insts.Op{
			insts.OpFLW, insts.OpFLW, insts.OpFADDS, insts.OpFSW, insts.OpJ,
		}))
	})
})
