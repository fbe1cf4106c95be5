package simulator

import (
	"sort"

	"github.com/hiersched/hiersched/internal/model"
)

// componentQueue holds one component's ordered jobs, per spec.md §4.4's
// insertion rule: RM by ascending priority number, EDF by ascending
// absolute deadline, ties broken by task priority then task id.
type componentQueue struct {
	scheduler model.Scheduler
	jobs      []model.Job
}

func newComponentQueue(scheduler model.Scheduler) *componentQueue {
	return &componentQueue{scheduler: scheduler}
}

// Len returns the number of queued jobs.
func (q *componentQueue) Len() int { return len(q.jobs) }

// Head returns a pointer to the head job for in-place mutation
// (RemainingTime, StartTime), or nil if the queue is empty. The pointer
// is only valid until the next Insert or Pop call.
func (q *componentQueue) Head() *model.Job {
	if len(q.jobs) == 0 {
		return nil
	}
	return &q.jobs[0]
}

// RemoveTask drops any queued job belonging to taskID, reporting whether
// one was found. A still-queued prior instance about to be superseded by
// a new release is a deadline-miss event (spec.md §4.4 step 1).
func (q *componentQueue) RemoveTask(taskID string) bool {
	for i, j := range q.jobs {
		if j.TaskID == taskID {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Insert places job in the queue's priority order.
func (q *componentQueue) Insert(job model.Job) {
	idx := sort.Search(len(q.jobs), func(i int) bool {
		return q.less(job, q.jobs[i])
	})
	q.jobs = append(q.jobs, model.Job{})
	copy(q.jobs[idx+1:], q.jobs[idx:])
	q.jobs[idx] = job
}

func (q *componentQueue) less(a, b model.Job) bool {
	if q.scheduler == model.RM {
		if pa, pb := priorityOf(a), priorityOf(b); pa != pb {
			return pa < pb
		}
		return a.TaskID < b.TaskID
	}
	// EDF: ascending absolute deadline, tie-broken by task priority then id.
	if a.AbsoluteDeadline != b.AbsoluteDeadline {
		return a.AbsoluteDeadline < b.AbsoluteDeadline
	}
	if pa, pb := priorityOf(a), priorityOf(b); pa != pb {
		return pa < pb
	}
	return a.TaskID < b.TaskID
}

func priorityOf(j model.Job) int {
	if j.TaskPriority == nil {
		return 0
	}
	return *j.TaskPriority
}

// Pop removes and returns the head job.
func (q *componentQueue) Pop() model.Job {
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job
}

// Clear empties the queue at a hyperperiod replay boundary.
func (q *componentQueue) Clear() {
	q.jobs = nil
}
