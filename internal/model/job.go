package model

import "fmt"

// Job is one periodic instance of a Task, released at ReleaseTime and
// destroyed once RemainingTime <= 0. Jobs are created and owned by the
// simulator (spec.md §3's ownership rule); model.Job only captures state,
// not queue membership.
type Job struct {
	ID               string
	TaskID           string
	TaskPriority     *int // copied from the owning Task, for queue tie-breaks
	ReleaseTime      int64
	AbsoluteDeadline int64
	ExecutionTime    float64
	RemainingTime    float64
	StartTime        *int64 // nil until the job first runs
}

// NewJob creates a released Job for task at release time t with implicit
// deadline t+task.Period (spec.md §3) and the given sampled execution time.
func NewJob(task Task, releaseTime int64, executionTime float64) Job {
	return Job{
		ID:               fmt.Sprintf("%s@%d", task.ID, releaseTime),
		TaskID:           task.ID,
		TaskPriority:     task.Priority,
		ReleaseTime:      releaseTime,
		AbsoluteDeadline: releaseTime + task.Period,
		ExecutionTime:    executionTime,
		RemainingTime:    executionTime,
	}
}

// Completed reports whether the job has finished executing.
func (j Job) Completed() bool {
	return j.RemainingTime <= 0
}

// Started reports whether the job has begun executing.
func (j Job) Started() bool {
	return j.StartTime != nil
}
