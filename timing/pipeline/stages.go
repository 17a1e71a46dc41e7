package pipeline

import "github.com/sarchlab/riscv5sim/insts"

// runFetch reads the instruction at the current PC into the IF latch,
// advancing PC by 4. If RAM still has a pending write, Fetch leaves IF as a
// bubble and accounts a wait cycle instead.
func (p *Pipeline) runFetch() {
	if p.ram.IsWaiting() {
		p.stats.RAMWaitCycles++
		p.ifStage = NewBubble()
		return
	}

	pc := p.state.PC
	word := p.ram.Read32(pc)
	inst := p.decoder.Decode(word)

	p.ifStage = PipelineStage{
		PC:     pc,
		Inst:   inst,
		Bubble: false,
	}
	p.state.PC = pc + 4
}

// runDecode evaluates branch prediction for the instruction in the ID
// latch. Data hazard detection is performed by the caller via
// checkDataHazards before runDecode is invoked; runDecode itself is only
// reached when no hazard stalled this cycle.
func (p *Pipeline) runDecode(stage *PipelineStage) {
	p.lastForwarding = p.forwarding.Compute(stage, &p.exStage, &p.memStage)

	inst := stage.Inst
	if inst == nil || inst.Op != insts.OpBNEZ {
		return
	}

	if p.predictor.Predict(stage.PC) {
		p.branchTaken = true
		p.branchTarget = uint32(int32(stage.PC) + inst.Imm)
		p.lastBranchPC = stage.PC
	}
}

// runExecute dispatches the instruction in the EX latch to its
// architectural effect. Register commit for LUI/ADDI/FADD.S happens here,
// not in Writeback. On any recognized opcode, instructions_completed is
// incremented — in addition to the increment Writeback performs for the
// same instruction two stages later, reproducing the source's
// double-counting of completed instructions.
func (p *Pipeline) runExecute(stage *PipelineStage) {
	inst := stage.Inst
	if inst == nil {
		return
	}

	switch inst.Op {
	case insts.OpLUI:
		if inst.Rd != 0 {
			p.state.WriteX(inst.Rd, uint32(inst.Imm))
		}
	case insts.OpADDI:
		if inst.Rd != 0 {
			p.state.WriteX(inst.Rd, p.state.ReadX(inst.Rs1)+uint32(inst.Imm))
		}
	case insts.OpFADDS:
		p.state.WriteF(inst.Rd, p.state.ReadF(inst.Rs1)+p.state.ReadF(inst.Rs2))
	case insts.OpBNEZ:
		p.stats.TotalBranches++
		actualTaken := p.state.ReadX(inst.Rs1) != 0
		if actualTaken {
			p.branchTaken = true
			p.branchTarget = uint32(int32(stage.PC) + inst.Imm)
		} else if p.lastBranchPC == stage.PC {
			// Decode's last taken prediction was for this PC, so fetch may
			// have gone to the target; resume at the fall-through.
			p.branchTaken = true
			p.branchTarget = stage.PC + 4
		}
		p.predictor.Update(p.lastBranchPC, actualTaken)
	case insts.OpUnknown:
		return
	default:
		// FLW, FSW, and J have no Execute-stage effect of their own (FLW/FSW
		// commit in Memory; J is a terminator) but are still recognized
		// opcodes and count as completed below.
	}

	p.stats.InstructionsCompleted++
}

// runMemory dispatches the instruction in the MEM latch to its memory
// effect. If RAM is still waiting on a prior write, the access does not
// happen this cycle, memory_stalls is accounted, and the latch is bubbled
// so Writeback does not see it.
func (p *Pipeline) runMemory(stage *PipelineStage) {
	inst := stage.Inst
	if inst == nil {
		return
	}

	switch inst.Op {
	case insts.OpFLW:
		if p.ram.IsWaiting() {
			p.stats.MemoryStalls++
			stage.Bubble = true
			return
		}
		addr := p.state.ReadX(inst.Rs1) + uint32(inst.Imm)
		p.state.WriteF(inst.Rd, p.ram.ReadFloat(addr))
	case insts.OpFSW:
		if p.ram.IsWaiting() {
			p.stats.MemoryStalls++
			stage.Bubble = true
			return
		}
		addr := p.state.ReadX(inst.Rs1) + uint32(inst.Imm)
		p.ram.WriteFloat(addr, p.state.ReadF(inst.Rs2))
	}
}
