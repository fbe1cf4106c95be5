package simulator

import (
	"testing"

	"github.com/hiersched/hiersched/internal/model"
)

func TestEDFCorePolicy_PicksEarliestDeadline(t *testing.T) {
	p := edfCorePolicy{}
	eligible := []eligibleComponent{
		{ID: "c2", HeadDeadline: 20},
		{ID: "c1", HeadDeadline: 10},
	}
	if got := p.Select(eligible); got != "c1" {
		t.Errorf("Select = %s, want c1", got)
	}
}

func TestEDFCorePolicy_TieBreakByID(t *testing.T) {
	p := edfCorePolicy{}
	eligible := []eligibleComponent{
		{ID: "cb", HeadDeadline: 10},
		{ID: "ca", HeadDeadline: 10},
	}
	if got := p.Select(eligible); got != "ca" {
		t.Errorf("Select = %s, want ca", got)
	}
}

func TestRMCorePolicy_PicksSmallestPriority(t *testing.T) {
	p := rmCorePolicy{}
	eligible := []eligibleComponent{
		{ID: "low", Priority: 2},
		{ID: "high", Priority: 1},
	}
	if got := p.Select(eligible); got != "high" {
		t.Errorf("Select = %s, want high", got)
	}
}

func TestNewCorePolicy_PanicsOnUnknownScheduler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for an unhandled scheduler value")
		}
	}()
	newCorePolicy(model.Scheduler(99))
}
