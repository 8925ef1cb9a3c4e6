package simconfig

import (
	"fmt"
	"math/rand/v2"
)

// Step is one program instruction: touch a sector, either reading or
// writing it.
type Step struct {
	Sector int
	Write  bool
}

// ProcessSpec names a process and gives it a fixed program of steps.
type ProcessSpec struct {
	Name    string
	Program []Step
}

// Workload is the full input the kernel consumes: an ordered list of
// processes, each a finite sequence of (sector, mode) steps.
type Workload struct {
	Processes []ProcessSpec
}

// Validate checks that every step references a sector inside
// [0, cfg.TotalSectors()); anything else is a workload/config mismatch.
func (w Workload) Validate(cfg Config) error {
	total := cfg.TotalSectors()
	for _, p := range w.Processes {
		for i, step := range p.Program {
			if step.Sector < 0 || step.Sector >= total {
				return fmt.Errorf("%w: process %q step %d: sector %d outside [0,%d)",
					ErrSectorOutOfRange, p.Name, i, step.Sector, total)
			}
		}
	}
	return nil
}

// sampleSeed fixes the PRNG used by SampleWorkload so that the same
// configuration and workload always produce the same trace and
// statistics across runs.
const sampleSeed = 0x5A7EC0DE

// SampleWorkload rebuilds the eight canned workloads from the original
// coursework's create_sample_processes(): a deliberate mix of access
// patterns meant to exercise every cache and disk-scheduling behavior
// (sequential locality, pure randomness, hot-spot locality, write-only
// streams, bimodal seeks, reverse sweeps, long jumps, and repeats).
// Sample generation is an external-collaborator concern; the kernel
// never calls this, only the CLI does.
func SampleWorkload(cfg Config) Workload {
	src := rand.New(rand.NewPCG(sampleSeed, sampleSeed))
	total := cfg.TotalSectors()

	clampSector := func(s int) int {
		if s < 0 {
			return 0
		}
		if s >= total {
			return total - 1
		}
		return s
	}

	var processes []ProcessSpec

	// Sequential reader.
	var seqRead []Step
	for s := 1000; s < 1020; s++ {
		seqRead = append(seqRead, Step{Sector: clampSector(s), Write: false})
	}
	processes = append(processes, ProcessSpec{Name: "Sequential Reader", Program: seqRead})

	// Random access across the whole disk.
	var randomAccess []Step
	for i := 0; i < 25; i++ {
		sector := int(src.Int64N(int64(total)))
		randomAccess = append(randomAccess, Step{Sector: sector, Write: src.IntN(2) == 1})
	}
	processes = append(processes, ProcessSpec{Name: "Random Access", Program: randomAccess})

	// Local accesses clustered around a base sector.
	const localBase = 5000
	var local []Step
	for i := 0; i < 18; i++ {
		offset := int(src.Int64N(61)) - 30 // [-30, 30]
		local = append(local, Step{Sector: clampSector(localBase + offset), Write: i >= 12})
	}
	processes = append(processes, ProcessSpec{Name: "Local Access", Program: local})

	// Sequential writer.
	var seqWrite []Step
	for s := 2000; s < 2016; s++ {
		seqWrite = append(seqWrite, Step{Sector: clampSector(s), Write: true})
	}
	processes = append(processes, ProcessSpec{Name: "Sequential Writer", Program: seqWrite})

	// Two distant areas, alternating.
	var twoArea []Step
	for i := 0; i < 10; i++ {
		twoArea = append(twoArea,
			Step{Sector: clampSector(500 + i), Write: false},
			Step{Sector: clampSector(9500 + i), Write: true},
		)
	}
	processes = append(processes, ProcessSpec{Name: "Two-Area Access", Program: twoArea})

	// Reverse sequential sweep.
	var reverse []Step
	for s := 8000; s > 7985; s-- {
		reverse = append(reverse, Step{Sector: clampSector(s), Write: false})
	}
	processes = append(processes, ProcessSpec{Name: "Reverse Sequential", Program: reverse})

	// Long jumps between opposite ends of the disk.
	var jump []Step
	for i := 0; i < 10; i++ {
		jump = append(jump,
			Step{Sector: clampSector(1000 + i*200), Write: src.IntN(2) == 1},
			Step{Sector: clampSector(total - 1 - i*200), Write: src.IntN(2) == 1},
		)
	}
	processes = append(processes, ProcessSpec{Name: "Jump Pattern", Program: jump})

	// Repeated accesses to a small hot set (stresses promotion/counter
	// increment).
	repeated := []int{3000, 3001, 3000, 3002, 3001, 3000, 3003, 3002, 3001, 3000}
	var repeatedSteps []Step
	for _, s := range repeated {
		repeatedSteps = append(repeatedSteps, Step{Sector: clampSector(s), Write: false})
	}
	processes = append(processes, ProcessSpec{Name: "Repeated Access", Program: repeatedSteps})

	return Workload{Processes: processes}
}
