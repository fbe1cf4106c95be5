package model

import (
	"errors"
	"testing"
)

func TestParseScheduler(t *testing.T) {
	cases := map[string]Scheduler{"EDF": EDF, "edf": EDF, " RM ": RM, "rm": RM}
	for tag, want := range cases {
		got, err := ParseScheduler(tag)
		if err != nil {
			t.Fatalf("ParseScheduler(%q): unexpected error %v", tag, err)
		}
		if got != want {
			t.Errorf("ParseScheduler(%q) = %v, want %v", tag, got, want)
		}
	}

	if _, err := ParseScheduler("FIFO"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ParseScheduler(\"FIFO\") error = %v, want ErrMalformedInput", err)
	}
}

func TestNewCore_RejectsNonPositiveSpeedFactor(t *testing.T) {
	if _, err := NewCore(0, 0, EDF); !errors.Is(err, ErrConfigOutOfRange) {
		t.Errorf("speed_factor=0 error = %v, want ErrConfigOutOfRange", err)
	}
	if _, err := NewCore(0, -1, EDF); !errors.Is(err, ErrConfigOutOfRange) {
		t.Errorf("speed_factor=-1 error = %v, want ErrConfigOutOfRange", err)
	}
	c, err := NewCore(1, 2.0, RM)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 1 || c.SpeedFactor != 2.0 || c.Scheduler != RM {
		t.Errorf("unexpected core: %+v", c)
	}
}

func TestNewComponent_BudgetPeriodInvariant(t *testing.T) {
	if _, err := NewComponent("c1", 0, EDF, 6, 5, nil); !errors.Is(err, ErrConstraintViolated) {
		t.Errorf("Q>P error = %v, want ErrConstraintViolated", err)
	}
	if _, err := NewComponent("c1", 0, EDF, 0, 5, nil); !errors.Is(err, ErrConstraintViolated) {
		t.Errorf("Q=0 error = %v, want ErrConstraintViolated", err)
	}
}

func TestNewComponent_RMRequiresPriority(t *testing.T) {
	if _, err := NewComponent("c1", 0, RM, 5, 10, nil); !errors.Is(err, ErrConstraintViolated) {
		t.Errorf("RM without priority error = %v, want ErrConstraintViolated", err)
	}
	prio := 1
	c, err := NewComponent("c1", 0, RM, 5, 10, &prio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Alpha() != 0.5 {
		t.Errorf("Alpha() = %v, want 0.5", c.Alpha())
	}
}

func TestNewTask_WCETInvariant(t *testing.T) {
	if _, err := NewTask("t1", 0, 10, "c1", nil); !errors.Is(err, ErrConfigOutOfRange) {
		t.Errorf("wcet=0 error = %v, want ErrConfigOutOfRange", err)
	}
	if _, err := NewTask("t1", 11, 10, "c1", nil); !errors.Is(err, ErrConfigOutOfRange) {
		t.Errorf("wcet>period error = %v, want ErrConfigOutOfRange", err)
	}
	task, err := NewTask("t1", 4, 10, "c1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Deadline() != 10 {
		t.Errorf("Deadline() = %d, want 10", task.Deadline())
	}
}

func TestTask_Normalized(t *testing.T) {
	task, err := NewTask("t1", 4, 10, "c1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	normalized := task.Normalized(2.0)
	if normalized.WCET != 2.0 {
		t.Errorf("Normalized WCET = %v, want 2.0", normalized.WCET)
	}
	if task.WCET != 4.0 {
		t.Errorf("Normalized mutated receiver: WCET = %v, want 4.0", task.WCET)
	}
}

func TestNewJob_ImplicitDeadline(t *testing.T) {
	prio := 3
	task, err := NewTask("t1", 4, 10, "c1", &prio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job := NewJob(task, 20, 4)
	if job.AbsoluteDeadline != 30 {
		t.Errorf("AbsoluteDeadline = %d, want 30", job.AbsoluteDeadline)
	}
	if job.Completed() {
		t.Errorf("freshly released job should not be completed")
	}
	if job.Started() {
		t.Errorf("freshly released job should not be started")
	}
	if job.TaskPriority == nil || *job.TaskPriority != 3 {
		t.Errorf("TaskPriority = %v, want 3", job.TaskPriority)
	}
}
