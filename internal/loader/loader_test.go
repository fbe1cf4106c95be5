package loader

import (
	"errors"
	"testing"

	"github.com/hiersched/hiersched/internal/model"
	"github.com/hiersched/hiersched/internal/tableio"
)

func intp(v int) *int { return &v }

func TestLoad_HappyPath(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 2.0, Scheduler: "EDF"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "EDF", Budget: 5, Period: 10, CoreID: 0}}
	tasks := []tableio.TaskRow{{TaskName: "t1", WCET: 4, Period: 10, ComponentID: "c1"}}

	w, err := Load(arch, budgets, tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Cores) != 1 || len(w.Components) != 1 || len(w.Tasks) != 1 {
		t.Fatalf("unexpected workload shape: %+v", w)
	}

	grouped := w.TasksByComponent()
	got := grouped["c1"][0]
	if got.WCET != 2.0 {
		t.Errorf("normalized WCET = %v, want 2.0 (wcet=4 / speed_factor=2)", got.WCET)
	}
}

func TestLoad_UnknownCoreReference(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 1, Scheduler: "EDF"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "EDF", Budget: 5, Period: 10, CoreID: 9}}
	if _, err := Load(arch, budgets, nil); !errors.Is(err, model.ErrConstraintViolated) {
		t.Errorf("error = %v, want ErrConstraintViolated", err)
	}
}

func TestLoad_UnknownComponentReference(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 1, Scheduler: "EDF"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "EDF", Budget: 5, Period: 10, CoreID: 0}}
	tasks := []tableio.TaskRow{{TaskName: "t1", WCET: 4, Period: 10, ComponentID: "nope"}}
	if _, err := Load(arch, budgets, tasks); !errors.Is(err, model.ErrConstraintViolated) {
		t.Errorf("error = %v, want ErrConstraintViolated", err)
	}
}

func TestLoad_RMTaskMissingPriority(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "RM", Budget: 5, Period: 10, CoreID: 0, Priority: intp(1)}}
	tasks := []tableio.TaskRow{{TaskName: "t1", WCET: 4, Period: 10, ComponentID: "c1"}}
	if _, err := Load(arch, budgets, tasks); !errors.Is(err, model.ErrConstraintViolated) {
		t.Errorf("error = %v, want ErrConstraintViolated", err)
	}
}

func TestLoad_DuplicateRMPriority(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "RM", Budget: 6, Period: 10, CoreID: 0, Priority: intp(1)}}
	tasks := []tableio.TaskRow{
		{TaskName: "t1", WCET: 2, Period: 5, ComponentID: "c1", Priority: intp(1)},
		{TaskName: "t2", WCET: 2, Period: 10, ComponentID: "c1", Priority: intp(1)},
	}
	if _, err := Load(arch, budgets, tasks); !errors.Is(err, model.ErrConstraintViolated) {
		t.Errorf("error = %v, want ErrConstraintViolated", err)
	}
}

func TestTasksByComponent_RMOrderedByPriority(t *testing.T) {
	arch := []tableio.ArchitectureRow{{CoreID: 0, SpeedFactor: 1, Scheduler: "RM"}}
	budgets := []tableio.BudgetRow{{ComponentID: "c1", Scheduler: "RM", Budget: 6, Period: 10, CoreID: 0, Priority: intp(1)}}
	tasks := []tableio.TaskRow{
		{TaskName: "low", WCET: 2, Period: 10, ComponentID: "c1", Priority: intp(2)},
		{TaskName: "high", WCET: 2, Period: 5, ComponentID: "c1", Priority: intp(1)},
	}
	w, err := Load(arch, budgets, tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grouped := w.TasksByComponent()["c1"]
	if grouped[0].ID != "high" || grouped[1].ID != "low" {
		t.Errorf("RM ordering = %v, %v; want high then low", grouped[0].ID, grouped[1].ID)
	}
}
