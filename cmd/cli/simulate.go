package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"pv-battery-estimator/internal/analysis"
	"pv-battery-estimator/internal/config"
	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/simulator"
	"pv-battery-estimator/internal/strategy"

	"github.com/spf13/cobra"
)

var simulateOpts struct {
	system   string
	date     string
	costMode string
	out      string
	asJSON   bool
	override config.SystemConfig
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one day for a household system",
	Example: `  pv-cli simulate --system examples/systems/madrid_house.yaml --date 2024-06-21
  pv-cli simulate --system examples/systems/madrid_house.yaml --date 2024-06-21 --battery-capacity 10 --out results/hours.csv`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateOpts.system, "system", "", "household system YAML file")
	f.StringVar(&simulateOpts.date, "date", "", "estimation date (YYYY-MM-DD)")
	f.StringVar(&simulateOpts.costMode, "cost-mode", strategy.Default, "grid cost accounting: reference or hourly")
	f.StringVar(&simulateOpts.out, "out", "", "optional path to write the hourly CSV")
	f.BoolVar(&simulateOpts.asJSON, "json", false, "print the result as JSON")
	addSystemFlags(simulateCmd, &simulateOpts.override)
	_ = simulateCmd.MarkFlagRequired("system")
	_ = simulateCmd.MarkFlagRequired("date")
}

// systemFlags maps override flags to the system fields they set.
var systemFlags = map[string]string{
	"city":                "city",
	"orientation":         "orientation",
	"tilt":                "tilt",
	"area":                "area_available",
	"battery-capacity":    "battery_capacity",
	"initial-charge":      "initial_battery_charge",
	"monthly-consumption": "monthly_consumption",
}

// addSystemFlags registers flags that override fields of the loaded system.
func addSystemFlags(cmd *cobra.Command, o *config.SystemConfig) {
	f := cmd.Flags()
	f.StringVar(&o.City, "city", "", "override the system's city")
	f.Float64Var(&o.Orientation, "orientation", 0, "override the panel azimuth (degrees)")
	f.Float64Var(&o.Tilt, "tilt", 0, "override the panel slope (degrees)")
	f.Float64Var(&o.AreaAvailable, "area", 0, "override the available area (m²)")
	f.Float64Var(&o.BatteryCapacity, "battery-capacity", 0, "override the battery capacity (kWh)")
	f.Float64Var(&o.InitialBatteryCharge, "initial-charge", 0, "override the initial battery charge (kWh)")
	f.Float64Var(&o.MonthlyConsumption, "monthly-consumption", 0, "override the monthly consumption (kWh)")
}

// changedSystemFields lists the system fields whose flags were given,
// so that an explicit 0 still overrides the loaded system.
func changedSystemFields(cmd *cobra.Command) []string {
	var fields []string
	for flag, field := range systemFlags {
		if cmd.Flags().Changed(flag) {
			fields = append(fields, field)
		}
	}
	return fields
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	date, err := forecast.ParseDate(simulateOpts.date)
	if err != nil {
		return err
	}
	cost, err := strategy.Lookup(simulateOpts.costMode)
	if err != nil {
		return err
	}
	base, err := config.LoadSystemUnchecked(simulateOpts.system)
	if err != nil {
		return fmt.Errorf("load system: %w", err)
	}
	sys := *base
	if fields := changedSystemFields(cmd); len(fields) > 0 {
		sys = config.MergeSystem(sys, simulateOpts.override, fields...)
	}

	p, err := newProvider()
	if err != nil {
		return err
	}
	res, err := simulator.Estimate(cmd.Context(), p, requestFor(sys, date), sys.ToModel(), simulator.WithCostStrategy(cost))
	if err != nil {
		return err
	}

	if simulateOpts.out != "" {
		if err := os.MkdirAll(filepath.Dir(simulateOpts.out), 0o755); err != nil {
			return err
		}
		if err := simulator.WriteHoursCSV(simulateOpts.out, res.Hours); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(res.Hours), simulateOpts.out)
	}

	if simulateOpts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(cmd.OutOrStdout(), sys, res)
	return nil
}

func requestFor(sys config.SystemConfig, date time.Time) forecast.Request {
	return forecast.Request{City: sys.City, Date: date, Orientation: sys.Orientation, Tilt: sys.Tilt}
}

func printResult(w io.Writer, sys config.SystemConfig, res *simulator.Result) {
	fmt.Fprintf(w, "%s  %s  (%.0f panels, %.1f m², battery %.1f kWh, cost mode %s)\n",
		res.Date.Format(forecast.DateLayout), sys.City, res.PanelCount, res.TotalPanelArea, sys.BatteryCapacity, res.CostMode)
	fmt.Fprintf(w, "%-4s %-12s %-9s %-9s %-9s %-9s %-9s %-9s %-9s\n",
		"hour", "action", "gen", "cons", "self", "stored", "sold", "used", "charge")
	for _, h := range res.Hours {
		fmt.Fprintf(w, "%-4d %-12s %-9.3f %-9.3f %-9.3f %-9.3f %-9.3f %-9.3f %-9.3f\n",
			h.Hour, h.Action, h.Generated, h.Consumption, h.SelfConsumed, h.Stored, h.Sold, h.BatteryUsed, h.BatteryCharge)
	}
	t := res.Totals
	fmt.Fprintf(w, "totals: generated=%.3f consumption=%.3f self=%.3f stored=%.3f sold=%.3f used=%.3f grid=%.3f kWh\n",
		t.Generated, t.Consumption, t.SelfConsumed, t.Stored, t.Sold, t.BatteryUsed, t.GridImport)

	prices := analysis.ComputePriceStats(res.TariffKWh)
	fmt.Fprintf(w, "tariff: mean=%.4f min=%.4f (h%d) max=%.4f (h%d) per kWh\n",
		prices.Mean, prices.Min, prices.CheapestHour, prices.Max, prices.DearestHour)
	fmt.Fprintf(w, "cost without PV=%.4f with PV=%.4f sale revenue=%.4f initial charge cost=%.4f\n",
		res.CostWithoutPV, res.CostWithPV, res.SaleRevenue, res.InitialChargeCost)
	fmt.Fprintf(w, "Total savings=%.4f Final charge=%.3f kWh\n", res.TotalSavings, res.FinalCharge)
}
