package simulator

import (
	"hash/fnv"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two
// runs with the same key and workload produce bit-for-bit identical
// results (spec.md §5's "Ordering guarantees").
type SimulationKey int64

// PartitionedRNG hands out a deterministically-seeded, independent
// *rand.Rand per named subsystem, derived from one master key. Not safe
// for concurrent use — the simulator is single-threaded (spec.md §5).
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the *rand.Rand dedicated to name, creating and
// caching it on first use. The same name always returns the same stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.streams[name]; ok {
		return r
	}
	seed := int64(p.key) ^ fnv1a64(name)
	r := rand.New(rand.NewSource(seed))
	p.streams[name] = r
	return r
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// ExecTimeSampler draws a job's actual execution time from a normal
// distribution truncated to [lowerBound, wcet] (spec.md §4.4 step 1), with
// one independent RNG stream per task id so a task's sampled sequence
// never depends on another task's release pattern.
type ExecTimeSampler struct {
	rng *PartitionedRNG
}

// NewExecTimeSampler builds a sampler seeded from seed.
func NewExecTimeSampler(seed int64) *ExecTimeSampler {
	return &ExecTimeSampler{rng: NewPartitionedRNG(SimulationKey(seed))}
}

// Sample returns a value in [lowerBound, wcet], rejection-sampling a
// normal distribution centered on the midpoint with sigma =
// (wcet-lowerBound)/6 until the draw lands in range. When lowerBound >=
// wcet the distribution is degenerate and the draw is always wcet,
// matching spec.md §4.4's "by default lower_bound = wcet (deterministic =
// WCET)".
func (s *ExecTimeSampler) Sample(taskID string, wcet, lowerBound float64) float64 {
	if lowerBound >= wcet {
		return wcet
	}
	r := s.rng.ForSubsystem("task:" + taskID)
	dist := distuv.Normal{
		Mu:    (wcet + lowerBound) / 2,
		Sigma: (wcet - lowerBound) / 6,
		Src:   r,
	}
	for {
		v := dist.Rand()
		if v >= lowerBound && v <= wcet {
			return v
		}
	}
}
