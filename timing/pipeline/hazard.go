package pipeline

// ForwardSource indicates where a forwarded value should come from.
type ForwardSource int

const (
	// ForwardNone means no forwarding needed - use the register file value.
	ForwardNone ForwardSource = iota
	// ForwardFromEXMEM means forward from the EX/MEM latch.
	ForwardFromEXMEM
	// ForwardFromMEMWB means forward from the MEM/WB latch.
	ForwardFromMEMWB
)

// ForwardingResult holds the forwarding unit's intent for both ID-stage
// source operands.
type ForwardingResult struct {
	ForwardA ForwardSource
	ForwardB ForwardSource
}

// ForwardingUnit is a pure function of (ID/EX, EX/MEM, MEM/WB) to forwarding
// intent. It reports intent only — it does not move data. Execute reads
// directly from the architectural register file and never consults this
// unit's output; this separation is preserved deliberately (see Pipeline).
type ForwardingUnit struct{}

// NewForwardingUnit creates a forwarding unit.
func NewForwardingUnit() *ForwardingUnit {
	return &ForwardingUnit{}
}

// Compute derives forwarding intent for id's source registers rs1/rs2
// against the exmem and memwb latches, in priority order: EX/MEM (more
// recent) before MEM/WB.
func (f *ForwardingUnit) Compute(id *PipelineStage, exmem, memwb *PipelineStage) ForwardingResult {
	result := ForwardingResult{}
	if id == nil || id.Bubble || id.Inst == nil {
		return result
	}

	rs1, rs2 := id.Inst.Rs1, id.Inst.Rs2

	result.ForwardA = f.sourceFor(rs1, exmem, memwb)
	result.ForwardB = f.sourceFor(rs2, exmem, memwb)

	return result
}

func (f *ForwardingUnit) sourceFor(reg uint8, exmem, memwb *PipelineStage) ForwardSource {
	if exmem != nil && !exmem.Bubble && exmem.Inst != nil &&
		exmem.Inst.WritesRd() && exmem.Inst.Rd != 0 && exmem.Inst.Rd == reg {
		return ForwardFromEXMEM
	}

	if memwb != nil && !memwb.Bubble && memwb.Inst != nil &&
		memwb.Inst.WritesRd() && memwb.Inst.Rd != 0 && memwb.Inst.Rd == reg {
		return ForwardFromMEMWB
	}

	return ForwardNone
}

// checkDataHazards returns true (stall) iff the instruction in id reads,
// via rs1 or rs2, a register the instruction currently in ex or mem will
// write to. Integer and float register namespaces are not distinguished,
// matching the shared rd/rs fields this architecture uses for both.
func checkDataHazards(id, ex, mem *PipelineStage) bool {
	if id == nil || id.Bubble || id.Inst == nil {
		return false
	}

	rs1, rs2 := id.Inst.Rs1, id.Inst.Rs2

	if hazardAgainst(ex, rs1, rs2) {
		return true
	}
	if hazardAgainst(mem, rs1, rs2) {
		return true
	}

	return false
}

func hazardAgainst(stage *PipelineStage, rs1, rs2 uint8) bool {
	if stage == nil || stage.Bubble || stage.Inst == nil {
		return false
	}
	if !stage.Inst.WritesRd() || stage.Inst.Rd == 0 {
		return false
	}

	return stage.Inst.Rd == rs1 || stage.Inst.Rd == rs2
}
