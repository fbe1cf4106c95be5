// Package loader turns the thin tableio records into validated
// internal/model values, performing the cross-reference and constraint
// checks spec.md §7 requires before the analyzer or simulator ever runs:
// unknown core/component references, duplicate RM priorities, and the
// other input-boundary errors. This is the "parsed records → ..." arrow in
// spec.md §2's data-flow diagram.
package loader

import (
	"fmt"
	"sort"

	"github.com/hiersched/hiersched/internal/model"
	"github.com/hiersched/hiersched/internal/tableio"
)

// Workload is the fully validated, cross-referenced input to both the
// analyzer and the simulator.
type Workload struct {
	Cores      []model.Core
	Components []model.Component
	Tasks      []model.Task
}

// Load builds a Workload from the three input tables: cores first, then
// components (checked against the loaded core ids), then tasks (checked
// against the loaded components). Task WCETs are stored as given; they are
// divided by the core speed factor in TasksByComponent.
func Load(archRows []tableio.ArchitectureRow, budgetRows []tableio.BudgetRow, taskRows []tableio.TaskRow) (Workload, error) {
	cores, coreByID, err := loadCores(archRows)
	if err != nil {
		return Workload{}, err
	}

	components, componentByID, err := loadComponents(budgetRows, coreByID)
	if err != nil {
		return Workload{}, err
	}

	tasks, err := loadTasks(taskRows, componentByID)
	if err != nil {
		return Workload{}, err
	}

	return Workload{Cores: cores, Components: components, Tasks: tasks}, nil
}

func loadCores(rows []tableio.ArchitectureRow) ([]model.Core, map[int]model.Core, error) {
	cores := make([]model.Core, 0, len(rows))
	byID := make(map[int]model.Core, len(rows))
	for _, row := range rows {
		scheduler, err := model.ParseScheduler(row.Scheduler)
		if err != nil {
			return nil, nil, fmt.Errorf("core %d: %w", row.CoreID, err)
		}
		core, err := model.NewCore(row.CoreID, row.SpeedFactor, scheduler)
		if err != nil {
			return nil, nil, err
		}
		if _, exists := byID[core.ID]; exists {
			return nil, nil, fmt.Errorf("core %d: %w: duplicate core id", core.ID, model.ErrConstraintViolated)
		}
		cores = append(cores, core)
		byID[core.ID] = core
	}
	return cores, byID, nil
}

func loadComponents(rows []tableio.BudgetRow, coreByID map[int]model.Core) ([]model.Component, map[string]model.Component, error) {
	components := make([]model.Component, 0, len(rows))
	byID := make(map[string]model.Component, len(rows))
	for _, row := range rows {
		if _, ok := coreByID[row.CoreID]; !ok {
			return nil, nil, fmt.Errorf("component %s references unknown core %d: %w", row.ComponentID, row.CoreID, model.ErrConstraintViolated)
		}
		scheduler, err := model.ParseScheduler(row.Scheduler)
		if err != nil {
			return nil, nil, fmt.Errorf("component %s: %w", row.ComponentID, err)
		}
		component, err := model.NewComponent(row.ComponentID, row.CoreID, scheduler, row.Budget, row.Period, row.Priority)
		if err != nil {
			return nil, nil, err
		}
		if _, exists := byID[component.ID]; exists {
			return nil, nil, fmt.Errorf("component %s: %w: duplicate component id", component.ID, model.ErrConstraintViolated)
		}
		components = append(components, component)
		byID[component.ID] = component
	}
	return components, byID, nil
}

func loadTasks(rows []tableio.TaskRow, componentByID map[string]model.Component) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(rows))
	prioritiesByComponent := make(map[string]map[int]string) // component -> priority -> owning task id, for duplicate detection

	for _, row := range rows {
		component, ok := componentByID[row.ComponentID]
		if !ok {
			return nil, fmt.Errorf("task %s references unknown component %s: %w", row.TaskName, row.ComponentID, model.ErrConstraintViolated)
		}
		if component.Scheduler == model.RM && row.Priority == nil {
			return nil, fmt.Errorf("task %s: %w: RM component %s requires a task priority", row.TaskName, model.ErrConstraintViolated, row.ComponentID)
		}

		task, err := model.NewTask(row.TaskName, row.WCET, row.Period, row.ComponentID, row.Priority)
		if err != nil {
			return nil, err
		}

		if component.Scheduler == model.RM {
			seen, ok := prioritiesByComponent[component.ID]
			if !ok {
				seen = make(map[int]string)
				prioritiesByComponent[component.ID] = seen
			}
			if owner, dup := seen[*row.Priority]; dup {
				return nil, fmt.Errorf("component %s: tasks %s and %s: %w: duplicate RM priority %d", component.ID, owner, task.ID, model.ErrConstraintViolated, *row.Priority)
			}
			seen[*row.Priority] = task.ID
		}

		tasks = append(tasks, task)
	}
	return tasks, nil
}

// TasksByComponent groups the workload's tasks by component, normalizing
// WCET by the parent core's speed factor (spec.md §4.3 step 1) and ordering
// them per spec.md §4.3 step 2: RM components sorted by ascending priority
// number (highest priority first), EDF components sorted by task id for a
// stable, deterministic order.
func (w Workload) TasksByComponent() map[string][]model.Task {
	coreByID := make(map[int]model.Core, len(w.Cores))
	for _, c := range w.Cores {
		coreByID[c.ID] = c
	}
	componentByID := make(map[string]model.Component, len(w.Components))
	for _, c := range w.Components {
		componentByID[c.ID] = c
	}

	grouped := make(map[string][]model.Task)
	for _, task := range w.Tasks {
		component := componentByID[task.ComponentID]
		core := coreByID[component.CoreID]
		grouped[task.ComponentID] = append(grouped[task.ComponentID], task.Normalized(core.SpeedFactor))
	}

	for componentID, tasks := range grouped {
		component := componentByID[componentID]
		tasksCopy := tasks
		if component.Scheduler == model.RM {
			sort.SliceStable(tasksCopy, func(i, j int) bool {
				return *tasksCopy[i].Priority < *tasksCopy[j].Priority
			})
		} else {
			sort.SliceStable(tasksCopy, func(i, j int) bool {
				return tasksCopy[i].ID < tasksCopy[j].ID
			})
		}
		grouped[componentID] = tasksCopy
	}

	return grouped
}
