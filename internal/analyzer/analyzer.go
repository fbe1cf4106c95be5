// Package analyzer implements the analytic pipeline of spec.md §4.3:
// normalize, group, per-component local schedulability under the derived
// BDR interface, then the hierarchical per-core compositional test, ending
// in a system-wide verdict.
package analyzer

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/hiersched/hiersched/internal/bdr"
	"github.com/hiersched/hiersched/internal/dbf"
	"github.com/hiersched/hiersched/internal/loader"
	"github.com/hiersched/hiersched/internal/mathutil"
	"github.com/hiersched/hiersched/internal/model"
)

// ComponentVerdict is the analyzer's finding for one component: its derived
// BDR interface, the PRM pair recovered from it, and per-task
// schedulability.
type ComponentVerdict struct {
	Component        model.Component
	BDR              bdr.BDR
	BudgetQs         float64
	PeriodPs         float64
	TaskSchedulable  map[string]bool // task id -> schedulable
	LocalSchedulable bool
}

// CoreVerdict is the analyzer's finding for one core: whether every
// component on it is individually schedulable, whether the Theorem 1
// compositional test passes, and the conjunction of the two.
type CoreVerdict struct {
	CoreID          int
	IndivOK         bool
	CompositionalOK bool
	HierarchicalOK  bool
}

// Result is the analyzer's full verdict.
type Result struct {
	Components        map[string]*ComponentVerdict
	Cores             map[int]*CoreVerdict
	SystemSchedulable bool
}

// Analyze runs the full pipeline. Analysis is total: it never fails, only
// ever yields boolean verdicts with supporting values (spec.md §4.3
// "Failure semantics").
func Analyze(w loader.Workload) Result {
	tasksByComponent := w.TasksByComponent()

	result := Result{
		Components: make(map[string]*ComponentVerdict, len(w.Components)),
		Cores:      make(map[int]*CoreVerdict, len(w.Cores)),
	}

	for _, component := range w.Components {
		verdict := analyzeComponent(component, tasksByComponent[component.ID])
		result.Components[component.ID] = verdict
		logrus.Infof("analyzer: component %s schedulable=%t alpha=%.4f delta=%.4f",
			component.ID, verdict.LocalSchedulable, verdict.BDR.Alpha, verdict.BDR.Delta)
	}

	componentsByCore := make(map[int][]model.Component, len(w.Cores))
	for _, c := range w.Components {
		componentsByCore[c.CoreID] = append(componentsByCore[c.CoreID], c)
	}

	system := true
	for _, core := range w.Cores {
		coreVerdict := analyzeCore(core, componentsByCore[core.ID], result.Components)
		result.Cores[core.ID] = coreVerdict
		system = system && coreVerdict.HierarchicalOK
		logrus.Infof("analyzer: core %d indiv_ok=%t compositional_ok=%t hierarchical_ok=%t",
			core.ID, coreVerdict.IndivOK, coreVerdict.CompositionalOK, coreVerdict.HierarchicalOK)
	}
	result.SystemSchedulable = system

	return result
}

// analyzeComponent derives the component's BDR interface and checks local
// schedulability under its own scheduling policy (spec.md §4.3 steps 1-3).
func analyzeComponent(component model.Component, tasks []model.Task) *ComponentVerdict {
	supply := bdr.HalfHalf(component.Budget, component.Period)
	budgetQs, periodPs := supply.InverseHalfHalf()

	verdict := &ComponentVerdict{
		Component:       component,
		BDR:             supply,
		BudgetQs:        budgetQs,
		PeriodPs:        periodPs,
		TaskSchedulable: make(map[string]bool, len(tasks)),
	}

	if len(tasks) == 0 {
		verdict.LocalSchedulable = true
		return verdict
	}

	// Zero-budget guard (spec.md §4.3): a non-empty task set hosted by a
	// zero-rate supply can never be schedulable; no test is executed.
	if supply.Alpha == 0 {
		verdict.BDR = bdr.New(0, 0)
		for _, task := range tasks {
			verdict.TaskSchedulable[task.ID] = false
		}
		verdict.LocalSchedulable = false
		return verdict
	}

	dbfTasks := toDBFTasks(tasks)

	switch component.Scheduler {
	case model.EDF:
		verdict.LocalSchedulable = testEDF(dbfTasks, tasks, supply, verdict.TaskSchedulable)
	case model.RM:
		verdict.LocalSchedulable = testRM(dbfTasks, tasks, supply, verdict.TaskSchedulable)
	}

	return verdict
}

func toDBFTasks(tasks []model.Task) []dbf.Task {
	out := make([]dbf.Task, len(tasks))
	for i, t := range tasks {
		priority := 0
		if t.Priority != nil {
			priority = *t.Priority
		}
		out[i] = dbf.Task{WCET: t.WCET, Period: t.Period, Deadline: t.Deadline(), Priority: priority}
	}
	return out
}

// hyperperiod returns the LCM of the given task periods.
func hyperperiod(tasks []model.Task) int64 {
	periods := make([]int64, len(tasks))
	for i, t := range tasks {
		periods[i] = t.Period
	}
	return mathutil.LCMAll(periods)
}

// criticalTimePointsEDF returns every multiple k*T_tau <= hyper for each
// task period (spec.md §4.3 step 3), deduplicated and sorted.
func criticalTimePointsEDF(tasks []model.Task) []float64 {
	hyper := hyperperiod(tasks)
	return multiplesOfPeriodsUpTo(tasks, hyper)
}

// criticalTimePointsRM uses the same multiples-of-periods construction,
// bounded by the maximum task period — the conservative, equivalent
// alternative spec.md §4.3/§9 explicitly allows in place of enumerating a
// distinct per-task critical set.
func criticalTimePointsRM(tasks []model.Task) []float64 {
	maxPeriod := int64(0)
	for _, t := range tasks {
		if t.Period > maxPeriod {
			maxPeriod = t.Period
		}
	}
	return multiplesOfPeriodsUpTo(tasks, maxPeriod)
}

func multiplesOfPeriodsUpTo(tasks []model.Task, bound int64) []float64 {
	set := make(map[int64]struct{})
	for _, t := range tasks {
		for k := t.Period; k <= bound; k += t.Period {
			set[k] = struct{}{}
		}
	}
	points := make([]int64, 0, len(set))
	for p := range set {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p)
	}
	return out
}

// testEDF implements spec.md §4.3's EDF test: demand must not exceed supply
// at every critical time point. Per-task flags additionally verify
// demand-at-deadline <= sbf(deadline) for each task individually.
func testEDF(tasks []dbf.Task, modelTasks []model.Task, supply bdr.BDR, taskSchedulable map[string]bool) bool {
	points := criticalTimePointsEDF(modelTasks)

	setOK := true
	for _, t := range points {
		if dbf.EDF(tasks, t) > supply.SBF(t) {
			setOK = false
			break
		}
	}

	for _, task := range modelTasks {
		demandAtDeadline := dbf.EDF(tasks, float64(task.Deadline()))
		taskSchedulable[task.ID] = setOK && demandAtDeadline <= supply.SBF(float64(task.Deadline()))
	}
	return setOK
}

// testRM implements spec.md §4.3's RM test: for every task i, some critical
// point t <= T_i must satisfy dbf_RM(W,t,i) <= sbf(t). modelTasks must
// already be in priority order (internal/loader.Workload.TasksByComponent
// guarantees this for RM components).
func testRM(tasks []dbf.Task, modelTasks []model.Task, supply bdr.BDR, taskSchedulable map[string]bool) bool {
	points := criticalTimePointsRM(modelTasks)

	allOK := true
	for i, task := range modelTasks {
		ok := false
		for _, t := range points {
			if t > float64(task.Period) {
				break
			}
			if dbf.RM(tasks, t, i) <= supply.SBF(t) {
				ok = true
				break
			}
		}
		taskSchedulable[task.ID] = ok
		allOK = allOK && ok
	}
	return allOK
}

// analyzeCore implements spec.md §4.3 step 4: the Theorem 1 compositional
// test (with the Delta_p=0 relaxation) plus individual schedulability of
// every hosted component.
func analyzeCore(core model.Core, components []model.Component, verdicts map[string]*ComponentVerdict) *CoreVerdict {
	indivOK := true
	children := make([]bdr.BDR, 0, len(components))
	for _, c := range components {
		v := verdicts[c.ID]
		indivOK = indivOK && v.LocalSchedulable
		children = append(children, v.BDR)
	}

	parent := bdr.New(1, 0) // full CPU, root of the hierarchy
	compositionalOK := parent.CanSchedule(children)

	return &CoreVerdict{
		CoreID:          core.ID,
		IndivOK:         indivOK,
		CompositionalOK: compositionalOK,
		HierarchicalOK:  indivOK && compositionalOK,
	}
}
