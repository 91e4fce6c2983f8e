package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"pv-battery-estimator/internal/analysis"
	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/simulator"
	"pv-battery-estimator/internal/strategy"

	"github.com/spf13/cobra"
)

var compareOpts struct {
	systems  []string
	date     string
	costMode string
}

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Simulate several household systems for one day and rank them by savings",
	Example: `  pv-cli compare --date 2024-06-21 --system examples/systems/madrid_house.yaml --system examples/systems/madrid_flat.yaml`,
	RunE:    runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringArrayVar(&compareOpts.systems, "system", nil, "household system YAML file (repeatable) or a directory of them")
	f.StringVar(&compareOpts.date, "date", "", "estimation date (YYYY-MM-DD)")
	f.StringVar(&compareOpts.costMode, "cost-mode", strategy.Default, "grid cost accounting: reference or hourly")
	_ = compareCmd.MarkFlagRequired("system")
	_ = compareCmd.MarkFlagRequired("date")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	date, err := forecast.ParseDate(compareOpts.date)
	if err != nil {
		return err
	}
	cost, err := strategy.Lookup(compareOpts.costMode)
	if err != nil {
		return err
	}
	p, err := newProvider()
	if err != nil {
		return err
	}

	files := expandSystemPaths(compareOpts.systems)

	var scenarios []analysis.Scenario
	for _, path := range files {
		sys, err := config.LoadSystemUnchecked(path)
		if err != nil {
			return fmt.Errorf("load system %s: %w", path, err)
		}
		name := sys.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		res, err := simulator.Estimate(cmd.Context(), p, requestFor(*sys, date), sys.ToModel(), simulator.WithCostStrategy(cost))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", name, err)
			continue
		}
		scenarios = append(scenarios, analysis.Scenario{Name: name, Capacity: sys.BatteryCapacity, Result: res})
	}

	ranked := analysis.RankBySavings(scenarios)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-4s %-24s %-10s %-10s %-10s %-10s %-8s %-8s\n", "rank", "system", "savings", "with_pv", "sold_kwh", "grid_kwh", "self%", "cycles")
	for _, r := range ranked {
		fmt.Fprintf(w, "%-4d %-24s %-10.4f %-10.4f %-10.3f %-10.3f %-8.1f %-8.2f\n",
			r.Rank,
			r.Name,
			r.Result.TotalSavings,
			r.Result.CostWithPV,
			r.Result.Totals.Sold,
			r.Result.Totals.GridImport,
			r.KPIs.SelfSufficiency*100,
			r.KPIs.BatteryCycles,
		)
	}
	if len(ranked) == 0 {
		return fmt.Errorf("no system could be simulated")
	}
	return nil
}

// expandSystemPaths replaces directories by the presets they contain.
func expandSystemPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		presets, _, err := config.ListSystems(p)
		if err != nil {
			// not a directory: a single file
			out = append(out, p)
			continue
		}
		for _, preset := range presets {
			out = append(out, preset.File)
		}
	}
	return out
}
