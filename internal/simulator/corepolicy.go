package simulator

import (
	"sort"

	"github.com/hiersched/hiersched/internal/model"
)

// eligibleComponent is what a core-level policy needs to pick this tick's
// winner among the components that have budget and queued work.
type eligibleComponent struct {
	ID           string
	HeadDeadline int64
	Priority     int
}

// CorePolicy selects, among a core's eligible components, the one that
// runs this tick (spec.md §4.4 step 3's dispatch rule).
type CorePolicy interface {
	Select(eligible []eligibleComponent) string
}

// edfCorePolicy picks the eligible component with the earliest
// head-of-queue absolute deadline, ties broken by smallest component id.
type edfCorePolicy struct{}

func (edfCorePolicy) Select(eligible []eligibleComponent) string {
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].HeadDeadline != eligible[j].HeadDeadline {
			return eligible[i].HeadDeadline < eligible[j].HeadDeadline
		}
		return eligible[i].ID < eligible[j].ID
	})
	return eligible[0].ID
}

// rmCorePolicy picks the eligible component with the smallest priority
// number, ties broken by smallest component id.
type rmCorePolicy struct{}

func (rmCorePolicy) Select(eligible []eligibleComponent) string {
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Priority != eligible[j].Priority {
			return eligible[i].Priority < eligible[j].Priority
		}
		return eligible[i].ID < eligible[j].ID
	})
	return eligible[0].ID
}

// newCorePolicy builds the CorePolicy matching a core's scheduler. Panics
// on an unhandled Scheduler value — reaching this with anything but EDF or
// RM is a programming error, not a runtime-recoverable condition (spec.md
// §4.4 "Failure semantics").
func newCorePolicy(scheduler model.Scheduler) CorePolicy {
	switch scheduler {
	case model.EDF:
		return edfCorePolicy{}
	case model.RM:
		return rmCorePolicy{}
	default:
		panic("simulator: unhandled core scheduler " + scheduler.String())
	}
}
