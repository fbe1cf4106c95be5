package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// InputError marks a malformed-input condition discovered while reading a
// table: a missing column or an unparsable value (spec.md §7).
type InputError struct {
	File string
	Msg  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// tableReader wraps a CSV reader with header-name column lookup so table
// layout (column order) doesn't matter, only column presence does.
type tableReader struct {
	file    string
	header  map[string]int
	records [][]string
}

func newTableReader(path string) (*tableReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{File: path, Msg: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &InputError{File: path, Msg: fmt.Sprintf("could not read header: %v", err)}
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &InputError{File: path, Msg: err.Error()}
		}
		rows = append(rows, row)
	}

	return &tableReader{file: path, header: idx, records: rows}, nil
}

func (t *tableReader) col(row []string, name string) (string, error) {
	i, ok := t.header[name]
	if !ok {
		return "", &InputError{File: t.file, Msg: fmt.Sprintf("missing required column %q", name)}
	}
	if i >= len(row) {
		return "", &InputError{File: t.file, Msg: fmt.Sprintf("row has no value for column %q", name)}
	}
	return strings.TrimSpace(row[i]), nil
}

func (t *tableReader) optionalCol(row []string, name string) (string, bool) {
	i, ok := t.header[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (t *tableReader) floatCol(row []string, name string) (float64, error) {
	s, err := t.col(row, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InputError{File: t.file, Msg: fmt.Sprintf("column %q: %v", name, err)}
	}
	return v, nil
}

func (t *tableReader) intCol(row []string, name string) (int, error) {
	s, err := t.col(row, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InputError{File: t.file, Msg: fmt.Sprintf("column %q: %v", name, err)}
	}
	return v, nil
}

func (t *tableReader) int64Col(row []string, name string) (int64, error) {
	s, err := t.col(row, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InputError{File: t.file, Msg: fmt.Sprintf("column %q: %v", name, err)}
	}
	return v, nil
}

func (t *tableReader) optionalPriority(row []string, name string) (*int, error) {
	s, ok := t.optionalCol(row, name)
	if !ok || s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, &InputError{File: t.file, Msg: fmt.Sprintf("column %q: %v", name, err)}
	}
	return &v, nil
}

// ReadArchitecture reads the architecture table (spec.md §6): core_id,
// speed_factor, scheduler.
func ReadArchitecture(path string) ([]ArchitectureRow, error) {
	tr, err := newTableReader(path)
	if err != nil {
		return nil, err
	}
	rows := make([]ArchitectureRow, 0, len(tr.records))
	for _, rec := range tr.records {
		coreID, err := tr.intCol(rec, "core_id")
		if err != nil {
			return nil, err
		}
		speedFactor, err := tr.floatCol(rec, "speed_factor")
		if err != nil {
			return nil, err
		}
		scheduler, err := tr.col(rec, "scheduler")
		if err != nil {
			return nil, err
		}
		rows = append(rows, ArchitectureRow{CoreID: coreID, SpeedFactor: speedFactor, Scheduler: scheduler})
	}
	return rows, nil
}

// ReadBudgets reads the budgets table (spec.md §6): component_id,
// scheduler, budget, period, core_id, priority.
func ReadBudgets(path string) ([]BudgetRow, error) {
	tr, err := newTableReader(path)
	if err != nil {
		return nil, err
	}
	rows := make([]BudgetRow, 0, len(tr.records))
	for _, rec := range tr.records {
		componentID, err := tr.col(rec, "component_id")
		if err != nil {
			return nil, err
		}
		scheduler, err := tr.col(rec, "scheduler")
		if err != nil {
			return nil, err
		}
		budget, err := tr.floatCol(rec, "budget")
		if err != nil {
			return nil, err
		}
		period, err := tr.floatCol(rec, "period")
		if err != nil {
			return nil, err
		}
		coreID, err := tr.intCol(rec, "core_id")
		if err != nil {
			return nil, err
		}
		priority, err := tr.optionalPriority(rec, "priority")
		if err != nil {
			return nil, err
		}
		rows = append(rows, BudgetRow{
			ComponentID: componentID,
			Scheduler:   scheduler,
			Budget:      budget,
			Period:      period,
			CoreID:      coreID,
			Priority:    priority,
		})
	}
	return rows, nil
}

// ReadTasks reads the tasks table (spec.md §6): task_name, wcet, period,
// component_id, priority.
func ReadTasks(path string) ([]TaskRow, error) {
	tr, err := newTableReader(path)
	if err != nil {
		return nil, err
	}
	rows := make([]TaskRow, 0, len(tr.records))
	for _, rec := range tr.records {
		taskName, err := tr.col(rec, "task_name")
		if err != nil {
			return nil, err
		}
		wcet, err := tr.floatCol(rec, "wcet")
		if err != nil {
			return nil, err
		}
		period, err := tr.int64Col(rec, "period")
		if err != nil {
			return nil, err
		}
		componentID, err := tr.col(rec, "component_id")
		if err != nil {
			return nil, err
		}
		priority, err := tr.optionalPriority(rec, "priority")
		if err != nil {
			return nil, err
		}
		rows = append(rows, TaskRow{
			TaskName:    taskName,
			WCET:        wcet,
			Period:      period,
			ComponentID: componentID,
			Priority:    priority,
		})
	}
	return rows, nil
}
