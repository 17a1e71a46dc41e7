// Package loader builds Program values ready for execution, replacing the
// teacher's ELF loader with the flat word-stream format this simulator's
// instruction set actually needs.
package loader

import "github.com/sarchlab/riscv5sim/insts"

// Program is a flat, pre-encoded instruction stream plus initial data words,
// ready to be written into RAM starting at address 0.
type Program struct {
	// Words holds the instruction stream, one 32-bit word per instruction,
	// placed at consecutive addresses starting at 0.
	Words []uint32

	// Data maps a byte address to a 32-bit word to be written before
	// execution starts (e.g. operand arrays for a benchmark program).
	Data map[uint32]uint32
}

// NewProgram returns an empty Program.
func NewProgram() *Program {
	return &Program{Data: make(map[uint32]uint32)}
}

// SetData records a data word to be written at addr when the program loads.
func (p *Program) SetData(addr uint32, value uint32) {
	p.Data[addr] = value
}

// Size returns the number of bytes the instruction stream occupies.
func (p *Program) Size() uint32 {
	return uint32(len(p.Words)) * 4
}

// ramWriter is satisfied by *emu.RAM; declared locally so this package does
// not need to import emu.
type ramWriter interface {
	Write32(addr uint32, value uint32)
}

// Load writes the instruction stream and initial data into ram.
func (p *Program) Load(ram ramWriter) {
	for i, word := range p.Words {
		ram.Write32(uint32(i)*4, word)
	}
	for addr, value := range p.Data {
		ram.Write32(addr, value)
	}
}

// Assembler accumulates encoded instructions for a Program under
// construction, the way a caller would build up a small benchmark program
// one instruction at a time.
type Assembler struct {
	prog *Program
}

// NewAssembler returns an Assembler building into a fresh Program.
func NewAssembler() *Assembler {
	return &Assembler{prog: NewProgram()}
}

// Program returns the Program assembled so far.
func (a *Assembler) Program() *Program {
	return a.prog
}

// PC returns the byte address the next emitted instruction will occupy.
func (a *Assembler) PC() uint32 {
	return a.prog.Size()
}

func (a *Assembler) emit(word uint32) {
	a.prog.Words = append(a.prog.Words, word)
}

// LUI emits a LUI rd, imm20 instruction.
func (a *Assembler) LUI(rd uint8, imm20 uint32) {
	a.emit(insts.EncodeLUI(rd, imm20))
}

// ADDI emits an ADDI rd, rs1, imm12 instruction.
func (a *Assembler) ADDI(rd, rs1 uint8, imm12 int32) {
	a.emit(insts.EncodeADDI(rd, rs1, imm12))
}

// FLW emits an FLW frd, imm12(rs1) instruction.
func (a *Assembler) FLW(frd, rs1 uint8, imm12 int32) {
	a.emit(insts.EncodeFLW(frd, rs1, imm12))
}

// FSW emits an FSW frs2, imm12(rs1) instruction.
func (a *Assembler) FSW(rs1, frs2 uint8, imm12 int32) {
	a.emit(insts.EncodeFSW(rs1, frs2, imm12))
}

// FADDS emits an FADD.S frd, frs1, frs2 instruction.
func (a *Assembler) FADDS(frd, frs1, frs2 uint8) {
	a.emit(insts.EncodeFADDS(frd, frs1, frs2))
}

// BNEZ emits a BNEZ rs1, imm instruction, where imm is the pc-relative byte
// offset from this instruction's own address.
func (a *Assembler) BNEZ(rs1 uint8, imm int32) {
	a.emit(insts.EncodeBNEZ(rs1, imm))
}

// J emits the unconditional jump terminator word.
func (a *Assembler) J() {
	a.emit(insts.EncodeJ())
}
