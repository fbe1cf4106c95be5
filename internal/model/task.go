package model

// Task is a periodic task with an implicit deadline (Deadline == Period).
// Post-normalization, WCET has already been divided by the parent core's
// SpeedFactor (spec.md §3).
type Task struct {
	ID          string
	WCET        float64
	Period      int64
	ComponentID string
	Priority    *int // required iff parent component is RM
}

// Deadline returns the task's implicit relative deadline, equal to Period.
func (t Task) Deadline() int64 {
	return t.Period
}

// NewTask validates and constructs a Task: 0 < wcet <= period (spec.md §3,
// §7). RM-priority presence is validated once the parent component's
// scheduler is known (internal/loader), since Task alone can't see it.
func NewTask(id string, wcet float64, period int64, componentID string, priority *int) (Task, error) {
	if period <= 0 {
		return Task{}, wrap(ErrConfigOutOfRange, "task %s: period %d must be > 0", id, period)
	}
	if wcet <= 0 || wcet > float64(period) {
		return Task{}, wrap(ErrConfigOutOfRange, "task %s: wcet %g must satisfy 0 < wcet <= period (period=%d)", id, wcet, period)
	}
	return Task{ID: id, WCET: wcet, Period: period, ComponentID: componentID, Priority: priority}, nil
}

// Normalized returns a copy of t with WCET divided by the core's
// speed_factor (spec.md §4.3 step 1). speedFactor must be > 0, which
// NewCore already guarantees for any speedFactor taken from a loaded Core.
func (t Task) Normalized(speedFactor float64) Task {
	t.WCET = t.WCET / speedFactor
	return t
}
