// Package simulator implements spec.md §4.4's tick-driven engine: release,
// budget-replenish, and dispatch phases run in strict order each tick,
// replaying the full workload for up to Config.MaxHyperperiods
// hyperperiods and accumulating response times across every replay.
package simulator

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hiersched/hiersched/internal/loader"
	"github.com/hiersched/hiersched/internal/mathutil"
	"github.com/hiersched/hiersched/internal/model"
	"github.com/hiersched/hiersched/internal/tableio"
)

// Config carries the knobs spec.md §4.4/§5 leave as configuration: the
// execution-time sampling seed, how far below WCET the sampled lower
// bound may fall, and the hard hyperperiod cap that bounds simulation
// runtime (spec.md §5 "Cancellation/timeouts").
type Config struct {
	Seed            int64
	LowerBoundRatio float64 // 0 < ratio <= 1; lower_bound = ratio*wcet. 1 = deterministic (= wcet).
	MaxHyperperiods int
	// OnTick, if set, is called once per simulated tick with the
	// cumulative tick count and the run's total tick budget — the same
	// shape as tableio.Progress.Advance, kept as a plain callback so this
	// package never refers to tableio.Progress itself.
	OnTick func(tick, totalTicks int64)
}

// DefaultConfig mirrors original_source/src/simulator.py's module
// constants (LOWER_BOUND_PERCENTAGE=1, SIMULATION_ITERATIONS=10).
func DefaultConfig() Config {
	return Config{Seed: 1, LowerBoundRatio: 1, MaxHyperperiods: 10}
}

// Result is the simulator's full output.
type Result struct {
	Rows []tableio.TaskResultRow
}

// Simulator runs the tick-driven engine over a validated Workload.
type Simulator struct {
	workload         loader.Workload
	config           Config
	sampler          *ExecTimeSampler
	componentsByCore map[int][]model.Component
	tasksByComponent map[string][]model.Task
	queues           map[string]*componentQueue
	remainingBudget  map[string]float64
	policies         map[int]CorePolicy
	metrics          *metricsCollector
	cores            []model.Core // sorted by id, for fixed per-tick processing order
}

// New builds a Simulator ready to Run. w must already be validated by
// internal/loader.
func New(w loader.Workload, cfg Config) *Simulator {
	if cfg.LowerBoundRatio <= 0 || cfg.LowerBoundRatio > 1 {
		cfg.LowerBoundRatio = 1
	}
	if cfg.MaxHyperperiods <= 0 {
		cfg.MaxHyperperiods = 10
	}

	s := &Simulator{
		workload:         w,
		config:           cfg,
		sampler:          NewExecTimeSampler(cfg.Seed),
		componentsByCore: make(map[int][]model.Component, len(w.Cores)),
		tasksByComponent: w.TasksByComponent(),
		queues:           make(map[string]*componentQueue, len(w.Components)),
		remainingBudget:  make(map[string]float64, len(w.Components)),
		policies:         make(map[int]CorePolicy, len(w.Cores)),
		metrics:          newMetricsCollector(w.Tasks),
		cores:            append([]model.Core(nil), w.Cores...),
	}

	sort.Slice(s.cores, func(i, j int) bool { return s.cores[i].ID < s.cores[j].ID })
	for _, c := range s.cores {
		s.policies[c.ID] = newCorePolicy(c.Scheduler)
	}
	for _, c := range w.Components {
		s.componentsByCore[c.CoreID] = append(s.componentsByCore[c.CoreID], c)
		s.queues[c.ID] = newComponentQueue(c.Scheduler)
		s.remainingBudget[c.ID] = c.Budget
	}
	for id, comps := range s.componentsByCore {
		sort.Slice(comps, func(i, j int) bool { return comps[i].ID < comps[j].ID })
		s.componentsByCore[id] = comps
	}

	return s
}

// Run executes spec.md §4.4's loop: replay the full workload for up to
// Config.MaxHyperperiods hyperperiods, accumulating response times and
// deadline outcomes across every replay.
func (s *Simulator) Run() Result {
	hyper := s.hyperperiod()
	if hyper <= 0 {
		return Result{Rows: s.metrics.Results(s.workload)}
	}
	totalTicks := int64(s.config.MaxHyperperiods) * hyper

	for iteration := 0; iteration < s.config.MaxHyperperiods; iteration++ {
		for t := int64(0); t < hyper; t++ {
			s.releasePhase(t)
			s.replenishPhase(t)
			s.dispatchPhase(t)
			if s.config.OnTick != nil {
				s.config.OnTick(int64(iteration)*hyper+t+1, totalTicks)
			}
		}
		logrus.Infof("simulator: hyperperiod %d/%d complete (%d ticks)", iteration+1, s.config.MaxHyperperiods, hyper)
		s.clearReplay()
	}

	return Result{Rows: s.metrics.Results(s.workload)}
}

// hyperperiod implements spec.md §4.4's hierarchical computation: per
// component, lcm of its tasks' periods (or its own period if it has none);
// system hyperperiod is the lcm of all component hyperperiods.
func (s *Simulator) hyperperiod() int64 {
	componentHypers := make([]int64, 0, len(s.workload.Components))
	for _, c := range s.workload.Components {
		tasks := s.tasksByComponent[c.ID]
		if len(tasks) == 0 {
			componentHypers = append(componentHypers, int64(c.Period))
			continue
		}
		periods := make([]int64, len(tasks))
		for i, task := range tasks {
			periods[i] = task.Period
		}
		componentHypers = append(componentHypers, mathutil.LCMAll(periods))
	}
	return mathutil.LCMAll(componentHypers)
}

// releasePhase implements spec.md §4.4 step 1.
func (s *Simulator) releasePhase(t int64) {
	for _, component := range s.workload.Components {
		queue := s.queues[component.ID]
		for _, task := range s.tasksByComponent[component.ID] {
			if t%task.Period != 0 {
				continue
			}
			if queue.RemoveTask(task.ID) {
				s.metrics.recordMiss(task.ID)
			}
			lowerBound := task.WCET * s.config.LowerBoundRatio
			execTime := s.sampler.Sample(task.ID, task.WCET, lowerBound)
			queue.Insert(model.NewJob(task, t, execTime))
		}
	}
}

// replenishPhase implements spec.md §4.4 step 2.
func (s *Simulator) replenishPhase(t int64) {
	for _, component := range s.workload.Components {
		periodTicks := int64(component.Period)
		if periodTicks > 0 && t%periodTicks == 0 {
			s.remainingBudget[component.ID] = component.Budget
		}
	}
}

// dispatchPhase implements spec.md §4.4 step 3, independently for each
// core in a fixed (sorted) order.
func (s *Simulator) dispatchPhase(t int64) {
	for _, core := range s.cores {
		components := s.componentsByCore[core.ID]
		var eligible []eligibleComponent
		for _, c := range components {
			queue := s.queues[c.ID]
			if s.remainingBudget[c.ID] <= 0 || queue.Len() == 0 {
				continue
			}
			priority := 0
			if c.Priority != nil {
				priority = *c.Priority
			}
			eligible = append(eligible, eligibleComponent{
				ID:           c.ID,
				HeadDeadline: queue.Head().AbsoluteDeadline,
				Priority:     priority,
			})
		}
		if len(eligible) == 0 {
			continue
		}

		winnerID := s.policies[core.ID].Select(eligible)
		queue := s.queues[winnerID]
		job := queue.Head()

		if job.RemainingTime == job.ExecutionTime {
			start := t
			job.StartTime = &start
		}
		job.RemainingTime--
		s.remainingBudget[winnerID]--

		if job.RemainingTime <= 0 {
			responseTime := float64(t+1-job.ReleaseTime)
			deadlineMet := t+1 <= job.AbsoluteDeadline
			s.metrics.recordCompletion(job.TaskID, responseTime, deadlineMet)
			queue.Pop()
		}
	}
}

// clearReplay resets every component's queue and budget at a hyperperiod
// replay boundary (original_source/src/simulator.py:_clear_component_queues).
func (s *Simulator) clearReplay() {
	for _, c := range s.workload.Components {
		s.queues[c.ID].Clear()
		s.remainingBudget[c.ID] = c.Budget
	}
}
