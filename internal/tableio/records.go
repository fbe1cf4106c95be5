// Package tableio is the thin external-collaborator layer spec.md §1 keeps
// out of the core: delimited-text table parsing, path resolution, result
// serialization, console pretty-printing, and progress reporting. It
// consumes and produces only the typed records defined here. internal/model
// never imports it; internal/simulator imports it for TaskResultRow, and
// internal/analyzer reaches it only through internal/loader.
package tableio

// ArchitectureRow is one row of the architecture table (spec.md §6).
type ArchitectureRow struct {
	CoreID      int
	SpeedFactor float64
	Scheduler   string
}

// BudgetRow is one row of the budgets table (spec.md §6). Priority is nil
// when the column is empty.
type BudgetRow struct {
	ComponentID string
	Scheduler   string
	Budget      float64
	Period      float64
	CoreID      int
	Priority    *int
}

// TaskRow is one row of the tasks table (spec.md §6). Priority is nil when
// the column is empty.
type TaskRow struct {
	TaskName    string
	WCET        float64
	Period      int64
	ComponentID string
	Priority    *int
}

// ComponentReportRow is one row of the analyzer's per-component output
// (spec.md §6).
type ComponentReportRow struct {
	ComponentID      string
	CoreID           int
	Scheduler        string
	Alpha            float64
	Delta            float64
	BudgetQs         float64
	PeriodPs         float64
	LocalSchedulable bool
}

// CoreReportRow is one row of the analyzer's per-core output (spec.md §6).
type CoreReportRow struct {
	CoreID          int
	IndivOK         bool
	CompositionalOK bool
	HierarchicalOK  bool
}

// TaskResultRow is one row of the simulator's per-task output (spec.md §6).
type TaskResultRow struct {
	TaskName             string
	ComponentID          string
	TaskSchedulable      bool
	AvgResponseTime      float64
	MaxResponseTime      float64
	ComponentSchedulable bool
}
