package tableio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func boolCol(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// WriteAnalyzerReport writes the per-component and per-core analyzer
// verdicts to two delimited files (spec.md §6): <pathPrefix>.components.csv
// and <pathPrefix>.cores.csv.
func WriteAnalyzerReport(pathPrefix string, components []ComponentReportRow, cores []CoreReportRow) error {
	if err := writeComponentReport(pathPrefix+".components.csv", components); err != nil {
		return err
	}
	return writeCoreReport(pathPrefix+".cores.csv", cores)
}

func writeComponentReport(path string, rows []ComponentReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing analyzer component report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"component_id", "core_id", "scheduler", "alpha", "delta", "budget_qs", "period_ps", "local_schedulable"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing analyzer component report: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ComponentID,
			strconv.Itoa(r.CoreID),
			r.Scheduler,
			strconv.FormatFloat(r.Alpha, 'f', -1, 64),
			strconv.FormatFloat(r.Delta, 'f', -1, 64),
			strconv.FormatFloat(r.BudgetQs, 'f', -1, 64),
			strconv.FormatFloat(r.PeriodPs, 'f', -1, 64),
			boolCol(r.LocalSchedulable),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing analyzer component report: %w", err)
		}
	}
	return nil
}

func writeCoreReport(path string, rows []CoreReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing analyzer core report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"core_id", "indiv_ok", "compositional_ok", "hierarchical_ok"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing analyzer core report: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.CoreID),
			boolCol(r.IndivOK),
			boolCol(r.CompositionalOK),
			boolCol(r.HierarchicalOK),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing analyzer core report: %w", err)
		}
	}
	return nil
}

// WriteSimulatorReport writes the per-task simulator results table
// (spec.md §6): task_name, component_id, task_schedulable, avg_response_time,
// max_response_time, component_schedulable.
func WriteSimulatorReport(path string, rows []TaskResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing simulator report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"task_name", "component_id", "task_schedulable", "avg_response_time", "max_response_time", "component_schedulable"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing simulator report: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.TaskName,
			r.ComponentID,
			boolCol(r.TaskSchedulable),
			strconv.FormatFloat(r.AvgResponseTime, 'f', -1, 64),
			strconv.FormatFloat(r.MaxResponseTime, 'f', -1, 64),
			boolCol(r.ComponentSchedulable),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing simulator report: %w", err)
		}
	}
	return nil
}
