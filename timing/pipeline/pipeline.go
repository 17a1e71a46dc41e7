package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/riscv5sim/emu"
	"github.com/sarchlab/riscv5sim/insts"
	"github.com/sarchlab/riscv5sim/timing/cache"
)

// defaultControlHazardPenalty is the number of stall cycles charged when a
// branch redirects the PC, absent a WithControlHazardPenalty option.
const defaultControlHazardPenalty = 2

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline)

// WithTraceWriter directs exception diagnostics to w instead of os.Stderr.
func WithTraceWriter(w io.Writer) PipelineOption {
	return func(p *Pipeline) {
		p.trace = w
	}
}

// WithControlHazardPenalty overrides the stall cycles charged on a branch
// redirect. Used by timing/core to apply a latency.Config.
func WithControlHazardPenalty(cycles uint64) PipelineOption {
	return func(p *Pipeline) {
		p.controlHazardPenalty = cycles
	}
}

// Pipeline is the 5-stage in-order pipeline engine. It holds a non-owning
// reference to RAM (shared with the driver) and exclusively owns the CPU
// state, statistics, branch predictor, forwarding unit, and stage latches.
type Pipeline struct {
	ram   *emu.RAM
	state *emu.CPUState

	decoder    *insts.Decoder
	predictor  *BranchPredictor
	forwarding *ForwardingUnit

	// instrCache is owned per the ownership model but is not consulted by
	// Fetch in the current design; Fetch only checks ram.IsWaiting().
	instrCache *cache.Cache

	ifStage, idStage, exStage, memStage, wbStage PipelineStage

	stats Statistics

	// holdID carries a data-hazard stall from one tick's Decode evaluation
	// into the next tick's latch shift: when true, the shift does not
	// advance ID into EX (EX becomes a bubble instead) and ID retains its
	// current instruction for re-evaluation.
	holdID bool

	// branchTaken/branchTarget are shared, single-slot signals that either
	// Decode's prediction or Execute's resolution may set within the same
	// tick; Execute runs first, so a same-cycle prediction from Decode for
	// a different branch overwrites Execute's resolution. This mirrors the
	// documented behavior where Decode predicts and may redirect, and
	// Execute resolves and may redirect again.
	branchTaken  bool
	branchTarget uint32

	// lastBranchPC remembers the PC of the most recent Decode-time
	// prediction, so Execute can report the resolved outcome back to the
	// predictor and, when that branch resolves not taken, send fetch back
	// to its fall-through.
	lastBranchPC uint32

	// lastForwarding is the most recent forwarding intent the
	// ForwardingUnit computed. Execute never consults it — it reads
	// directly from the register file — so this is exposed only for
	// inspection (tracing, tests).
	lastForwarding ForwardingResult

	trace io.Writer

	controlHazardPenalty uint64
}

// LastForwarding returns the most recently computed forwarding intent.
func (p *Pipeline) LastForwarding() ForwardingResult {
	return p.lastForwarding
}

// NewPipeline constructs a Pipeline bound to ram, applying any options.
func NewPipeline(ram *emu.RAM, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		ram:        ram,
		state:      &emu.CPUState{},
		decoder:    insts.NewDecoder(),
		predictor:  NewBranchPredictor(),
		forwarding: NewForwardingUnit(),
		instrCache: cache.New(),
		trace:      os.Stderr,

		controlHazardPenalty: defaultControlHazardPenalty,
	}

	p.ifStage.Clear()
	p.idStage.Clear()
	p.exStage.Clear()
	p.memStage.Clear()
	p.wbStage.Clear()

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State returns the CPU's architectural state.
func (p *Pipeline) State() *emu.CPUState {
	return p.state
}

// Stats returns the current aggregate statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// IFStage gives read-only access to the IF latch.
func (p *Pipeline) IFStage() PipelineStage { return p.ifStage }

// IDStage gives read-only access to the ID latch.
func (p *Pipeline) IDStage() PipelineStage { return p.idStage }

// EXStage gives read-only access to the EX latch.
func (p *Pipeline) EXStage() PipelineStage { return p.exStage }

// MEMStage gives read-only access to the MEM latch.
func (p *Pipeline) MEMStage() PipelineStage { return p.memStage }

// WBStage gives read-only access to the WB latch.
func (p *Pipeline) WBStage() PipelineStage { return p.wbStage }

// Tick advances the pipeline by one cycle, following the fixed evaluation
// order: writeback side effect, backward latch shift, MEM, EX, ID, IF, then
// branch redirect and bookkeeping.
func (p *Pipeline) Tick() {
	if p.state.Exc.Pending() {
		p.handleException()
		return
	}

	if !p.wbStage.Bubble && !p.wbStage.Stall {
		p.stats.InstructionsCompleted++
	}

	prevHoldID := p.holdID
	p.holdID = false
	p.branchTaken = false
	p.branchTarget = 0

	oldMEM, oldEX, oldID := p.memStage, p.exStage, p.idStage

	p.wbStage = oldMEM
	p.memStage = oldEX
	if prevHoldID {
		p.exStage = NewBubble()
		p.idStage = oldID
	} else {
		p.exStage = oldID
		p.idStage = p.ifStage
	}
	p.ifStage = NewBubble()

	if !p.memStage.Bubble {
		p.runMemory(&p.memStage)
	}

	if !p.exStage.Bubble {
		p.runExecute(&p.exStage)
	}

	hazard := false
	predictedInID := false
	if !p.idStage.Bubble {
		hazard = checkDataHazards(&p.idStage, &p.exStage, &p.memStage)
		if hazard {
			p.stats.DataHazardStalls++
			p.idStage.Stall = true
		} else {
			p.idStage.Stall = false
			resolvedInEX := p.branchTaken
			p.runDecode(&p.idStage)
			predictedInID = p.branchTaken && !resolvedInEX
		}
	}
	p.holdID = hazard

	if !hazard {
		p.runFetch()
	}

	if p.branchTaken {
		p.state.PC = p.branchTarget
		// A branch Decode predicted taken is itself the ID instruction and
		// advances to EX to be resolved; only the instruction fetched
		// behind it is squashed.
		if !predictedInID {
			p.idStage = NewBubble()
		}
		p.ifStage = NewBubble()
		p.holdID = false
		p.stats.ControlHazardStalls += p.controlHazardPenalty
	}

	p.stats.CacheMisses = p.ram.CacheMisses()

	p.stats.TotalCycles++
	p.ram.Tick()
}

// handleException prints a diagnostic, accounts for the exception, and
// fully resets the pipeline. This is the only recovery path: a hard
// restart, not precise replay.
func (p *Pipeline) handleException() {
	exc := p.state.Exc
	fmt.Fprintf(p.trace, "exception: %s\n", exc.String())

	p.stats.Exceptions++

	p.state.Reset()
	p.ifStage.Clear()
	p.idStage.Clear()
	p.exStage.Clear()
	p.memStage.Clear()
	p.wbStage.Clear()
	p.holdID = false
	p.branchTaken = false
	p.branchTarget = 0
}
