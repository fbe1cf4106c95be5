package simulator

import (
	"github.com/hiersched/hiersched/internal/loader"
	"github.com/hiersched/hiersched/internal/model"
	"github.com/hiersched/hiersched/internal/tableio"
)

// taskMetrics accumulates one task's observed response times and
// deadline-met flags across every hyperperiod replay (spec.md §4.5).
// responseTimes only grows on completion; deadlineMet also grows on a
// displaced-by-re-release miss, where no response time is known.
type taskMetrics struct {
	responseTimes []float64
	deadlineMet   []bool
}

// metricsCollector aggregates per-task outcomes into the simulator report.
type metricsCollector struct {
	byTask map[string]*taskMetrics
}

func newMetricsCollector(tasks []model.Task) *metricsCollector {
	c := &metricsCollector{byTask: make(map[string]*taskMetrics, len(tasks))}
	for _, t := range tasks {
		c.byTask[t.ID] = &taskMetrics{}
	}
	return c
}

// recordMiss records a deadline-miss event for a job displaced by a new
// release while still queued (spec.md §4.4 step 1).
func (c *metricsCollector) recordMiss(taskID string) {
	c.byTask[taskID].deadlineMet = append(c.byTask[taskID].deadlineMet, false)
}

// recordCompletion records a job that ran to completion this tick.
func (c *metricsCollector) recordCompletion(taskID string, responseTime float64, deadlineMet bool) {
	m := c.byTask[taskID]
	m.responseTimes = append(m.responseTimes, responseTime)
	m.deadlineMet = append(m.deadlineMet, deadlineMet)
}

// Results aggregates accumulated metrics into spec.md §6's simulator
// report rows, one per task: avg/max response time over completions,
// task_schedulable true only if at least one job completed and every
// recorded deadline (completion or miss) was met, component_schedulable
// true only if every task in the component is schedulable (spec.md §4.5).
func (c *metricsCollector) Results(w loader.Workload) []tableio.TaskResultRow {
	componentSchedulable := make(map[string]bool, len(w.Components))
	for _, comp := range w.Components {
		componentSchedulable[comp.ID] = true
	}

	rows := make([]tableio.TaskResultRow, 0, len(w.Tasks))
	for _, task := range w.Tasks {
		m := c.byTask[task.ID]

		var avg, max float64
		if len(m.responseTimes) > 0 {
			sum := 0.0
			max = m.responseTimes[0]
			for _, r := range m.responseTimes {
				sum += r
				if r > max {
					max = r
				}
			}
			avg = sum / float64(len(m.responseTimes))
		}

		schedulable := len(m.responseTimes) > 0
		for _, ok := range m.deadlineMet {
			schedulable = schedulable && ok
		}
		if !schedulable {
			componentSchedulable[task.ComponentID] = false
		}

		rows = append(rows, tableio.TaskResultRow{
			TaskName:        task.ID,
			ComponentID:     task.ComponentID,
			TaskSchedulable: schedulable,
			AvgResponseTime: avg,
			MaxResponseTime: max,
		})
	}

	for i := range rows {
		rows[i].ComponentSchedulable = componentSchedulable[rows[i].ComponentID]
	}
	return rows
}
