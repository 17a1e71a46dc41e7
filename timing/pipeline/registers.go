// Package pipeline implements the 5-stage in-order pipeline, its branch
// predictor, forwarding unit, and aggregate statistics.
package pipeline

import "github.com/sarchlab/riscv5sim/insts"

// PipelineStage is the single latch shape shared by all five pipeline
// registers (IF, ID, EX, MEM, WB). A single type suffices here because,
// unlike a superscalar design, every stage carries the same PC/instruction
// pair forward; stage-specific behavior lives in the stage evaluation
// functions, not in the latch itself.
type PipelineStage struct {
	// PC is the program counter of the instruction occupying this stage.
	PC uint32

	// Inst is the decoded instruction, or nil for a fresh bubble. A latch
	// bubbled in place (a Memory-stage RAM-wait stall) keeps its Inst.
	Inst *insts.Instruction

	// Bubble marks this latch as holding no instruction.
	Bubble bool

	// Stall marks this latch as holding an instruction that must be
	// re-processed by the stage it is in (used by Decode on a data hazard).
	Stall bool
}

// Clear resets the stage to an empty bubble.
func (s *PipelineStage) Clear() {
	s.PC = 0
	s.Inst = nil
	s.Bubble = true
	s.Stall = false
}

// NewBubble returns a fresh bubble latch.
func NewBubble() PipelineStage {
	return PipelineStage{Bubble: true}
}
