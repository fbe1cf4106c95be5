package tableio

import (
	"fmt"
	"io"
	"sort"
)

// PrintAnalyzerReport pretty-prints the analyzer verdict tree to w: one
// block per component (BDR interface, derived PRM pair, then each task's
// schedulability in task-name order), followed by the per-core and system verdicts. Mirrors
// original_source/src/analysis.py:print_results.
func PrintAnalyzerReport(w io.Writer, components []ComponentReportRow, taskSchedulable map[string]map[string]bool, cores []CoreReportRow, systemSchedulable bool) {
	for _, c := range components {
		fmt.Fprintf(w, "Component %s: schedulable = %t\n", c.ComponentID, c.LocalSchedulable)
		fmt.Fprintf(w, "  BDR interface (alpha,delta) = (%.4f, %.4f)\n", c.Alpha, c.Delta)
		fmt.Fprintf(w, "  Supply task (Q,P)           = (%.4f, %.4f)\n", c.BudgetQs, c.PeriodPs)
		taskNames := make([]string, 0, len(taskSchedulable[c.ComponentID]))
		for taskName := range taskSchedulable[c.ComponentID] {
			taskNames = append(taskNames, taskName)
		}
		sort.Strings(taskNames)
		for _, taskName := range taskNames {
			fmt.Fprintf(w, "    Task %-20s schedulable = %t\n", taskName, taskSchedulable[c.ComponentID][taskName])
		}
		fmt.Fprintln(w)
	}

	for _, c := range cores {
		fmt.Fprintf(w, "Core %d: indiv_ok=%t compositional_ok=%t hierarchical_ok=%t\n",
			c.CoreID, c.IndivOK, c.CompositionalOK, c.HierarchicalOK)
	}
	fmt.Fprintf(w, "System schedulable = %t\n", systemSchedulable)
}

// PrintSimulatorReport pretty-prints the per-task simulator results.
func PrintSimulatorReport(w io.Writer, rows []TaskResultRow) {
	fmt.Fprintln(w, "=== Simulation Results ===")
	for _, r := range rows {
		fmt.Fprintf(w, "Task %-20s component=%-12s schedulable=%t avg=%.2f max=%.2f (component schedulable=%t)\n",
			r.TaskName, r.ComponentID, r.TaskSchedulable, r.AvgResponseTime, r.MaxResponseTime, r.ComponentSchedulable)
	}
}
