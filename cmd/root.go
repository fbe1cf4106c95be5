// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hiersched/hiersched/internal/analyzer"
	"github.com/hiersched/hiersched/internal/loader"
	"github.com/hiersched/hiersched/internal/simulator"
	"github.com/hiersched/hiersched/internal/tableio"
)

var (
	configPath      string
	outputPrefix    string
	logLevel        string
	seed            int64
	lowerBoundRatio float64
	maxHyperperiods int
	showProgress    bool
	skipSimulate    bool
)

var rootCmd = &cobra.Command{
	Use:   "hiersched <architecture-file> <budgets-file> <tasks-file>",
	Short: "Analyze and simulate hierarchical real-time scheduling",
	Args:  cobra.ExactArgs(3),
	RunE:  runAnalyze,
}

// Execute runs the root command, exiting non-zero on any error reaching
// the CLI boundary (spec.md §6's exit-code contract). Cobra already
// writes the usage message to stderr on argument errors; RunE errors are
// logged here before exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML run-config file")
	rootCmd.Flags().StringVar(&outputPrefix, "output", "", "report output path prefix (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "simulator RNG seed (overrides config)")
	rootCmd.Flags().Float64Var(&lowerBoundRatio, "lower-bound-ratio", 0, "sampled execution time lower bound as a fraction of WCET (overrides config)")
	rootCmd.Flags().IntVar(&maxHyperperiods, "max-hyperperiods", 0, "number of hyperperiods to replay (overrides config)")
	rootCmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress bar while simulating")
	rootCmd.Flags().BoolVar(&skipSimulate, "analyze-only", false, "run the analyzer only, skip the simulator")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := LoadRunConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading run config: %w", err)
	}
	applyFlagOverrides(cmd, &cfg)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)

	archPath, err := tableio.ResolvePath(args[0], ".")
	if err != nil {
		return err
	}
	budgetsPath, err := tableio.ResolvePath(args[1], ".")
	if err != nil {
		return err
	}
	tasksPath, err := tableio.ResolvePath(args[2], ".")
	if err != nil {
		return err
	}

	archRows, err := tableio.ReadArchitecture(archPath)
	if err != nil {
		return err
	}
	budgetRows, err := tableio.ReadBudgets(budgetsPath)
	if err != nil {
		return err
	}
	taskRows, err := tableio.ReadTasks(tasksPath)
	if err != nil {
		return err
	}

	w, err := loader.Load(archRows, budgetRows, taskRows)
	if err != nil {
		return err
	}
	logrus.Infof("loaded %d cores, %d components, %d tasks", len(w.Cores), len(w.Components), len(w.Tasks))

	result := analyzer.Analyze(w)
	componentRows, coreRows, taskSchedulable := buildAnalyzerRows(result)

	tableio.PrintAnalyzerReport(os.Stdout, componentRows, taskSchedulable, coreRows, result.SystemSchedulable)
	if cfg.OutputPrefix != "" {
		if err := tableio.WriteAnalyzerReport(cfg.OutputPrefix+".analysis", componentRows, coreRows); err != nil {
			return err
		}
	}

	if skipSimulate {
		return nil
	}

	simConfig := simulator.Config{
		Seed:            cfg.Seed,
		LowerBoundRatio: cfg.LowerBoundRatio,
		MaxHyperperiods: cfg.MaxHyperperiods,
	}
	var progress *tableio.Progress
	if cfg.Progress {
		hyper := totalTicksHint(w, cfg.MaxHyperperiods)
		progress = tableio.NewProgress(os.Stderr, hyper, "simulating")
		simConfig.OnTick = progress.Advance
	}

	sim := simulator.New(w, simConfig)
	simResult := sim.Run()
	if progress != nil {
		progress.Finish()
	}

	tableio.PrintSimulatorReport(os.Stdout, simResult.Rows)
	if cfg.OutputPrefix != "" {
		if err := tableio.WriteSimulatorReport(cfg.OutputPrefix+".simulation.csv", simResult.Rows); err != nil {
			return err
		}
	}

	return nil
}

// applyFlagOverrides layers explicitly-set CLI flags over the loaded
// config, matching the teacher's flag-wins-over-config precedence
// (cmd/hfconfig.go): a flag the user never passed must not clobber the
// YAML value with its zero default.
func applyFlagOverrides(cmd *cobra.Command, cfg *RunConfig) {
	if cmd.Flags().Changed("output") {
		cfg.OutputPrefix = outputPrefix
	}
	if cmd.Flags().Changed("log") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("lower-bound-ratio") {
		cfg.LowerBoundRatio = lowerBoundRatio
	}
	if cmd.Flags().Changed("max-hyperperiods") {
		cfg.MaxHyperperiods = maxHyperperiods
	}
	if cmd.Flags().Changed("progress") {
		cfg.Progress = showProgress
	}
}

// buildAnalyzerRows flattens analyzer.Result's maps into the ordering-
// stable row slices tableio expects, using Result's own sorted-id helpers
// so report output is deterministic across runs.
func buildAnalyzerRows(result analyzer.Result) ([]tableio.ComponentReportRow, []tableio.CoreReportRow, map[string]map[string]bool) {
	componentRows := make([]tableio.ComponentReportRow, 0, len(result.Components))
	taskSchedulable := make(map[string]map[string]bool, len(result.Components))
	for _, id := range result.SortedComponentIDs() {
		v := result.Components[id]
		componentRows = append(componentRows, tableio.ComponentReportRow{
			ComponentID:      v.Component.ID,
			CoreID:           v.Component.CoreID,
			Scheduler:        v.Component.Scheduler.String(),
			Alpha:            v.BDR.Alpha,
			Delta:            v.BDR.Delta,
			BudgetQs:         v.BudgetQs,
			PeriodPs:         v.PeriodPs,
			LocalSchedulable: v.LocalSchedulable,
		})
		taskSchedulable[id] = v.TaskSchedulable
	}

	coreRows := make([]tableio.CoreReportRow, 0, len(result.Cores))
	for _, id := range result.SortedCoreIDs() {
		c := result.Cores[id]
		coreRows = append(coreRows, tableio.CoreReportRow{
			CoreID:          c.CoreID,
			IndivOK:         c.IndivOK,
			CompositionalOK: c.CompositionalOK,
			HierarchicalOK:  c.HierarchicalOK,
		})
	}

	return componentRows, coreRows, taskSchedulable
}

// totalTicksHint estimates the progress bar's total for display purposes
// only; the simulator computes the authoritative hyperperiod internally.
func totalTicksHint(w loader.Workload, maxHyperperiods int) int64 {
	tasksByComponent := w.TasksByComponent()
	longest := int64(0)
	for _, tasks := range tasksByComponent {
		for _, t := range tasks {
			if t.Period > longest {
				longest = t.Period
			}
		}
	}
	if longest == 0 {
		longest = 1
	}
	return longest * int64(maxHyperperiods)
}
