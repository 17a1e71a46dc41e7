// Package core wraps RAM and the pipeline into the high-level object a
// driver constructs and drives.
package core

import (
	"github.com/sarchlab/riscv5sim/emu"
	"github.com/sarchlab/riscv5sim/timing/latency"
	"github.com/sarchlab/riscv5sim/timing/pipeline"
)

// Core binds a RAM to a Pipeline and drives ticks on behalf of a program
// loader/driver.
type Core struct {
	ram      *emu.RAM
	pipeline *pipeline.Pipeline
}

// NewCore allocates a RAM of the given byte size and a Pipeline bound to
// it, applying cfg's timing knobs and any pipeline options.
func NewCore(ramSize int, cfg latency.Config, opts ...pipeline.PipelineOption) *Core {
	ram := emu.NewRAM(ramSize)
	ram.SetWriteLatency(cfg.RAMWriteLatency)

	allOpts := append([]pipeline.PipelineOption{
		pipeline.WithControlHazardPenalty(cfg.ControlHazardPenalty),
	}, opts...)

	return &Core{
		ram:      ram,
		pipeline: pipeline.NewPipeline(ram, allOpts...),
	}
}

// RAM returns the shared RAM, for program loading and post-run validation.
func (c *Core) RAM() *emu.RAM {
	return c.ram
}

// Pipeline returns the underlying pipeline, for stage/state inspection.
func (c *Core) Pipeline() *pipeline.Pipeline {
	return c.pipeline
}

// Tick executes one cycle.
func (c *Core) Tick() {
	c.pipeline.Tick()
}

// Stats returns the pipeline's aggregate statistics.
func (c *Core) Stats() pipeline.Statistics {
	return c.pipeline.Stats()
}

// Run ticks until the PC reaches doneAddr after at least warmupCycles
// cycles have elapsed, or until cycleCap ticks have run, whichever comes
// first. It reports whether the program reached doneAddr.
func (c *Core) Run(cycleCap uint64, warmupCycles uint64, doneAddr uint32) bool {
	for cycles := uint64(0); cycles < cycleCap; cycles++ {
		c.pipeline.Tick()

		if cycles >= warmupCycles && c.pipeline.State().PC == doneAddr {
			return true
		}
	}

	return false
}
