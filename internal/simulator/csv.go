package simulator

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"pv-battery-estimator/internal/model"
)

// WriteHoursCSV writes the hourly breakdown to path.
func WriteHoursCSV(path string, hours []model.HourResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeHoursCSV(f, hours)
}

// EncodeHoursCSV writes the hourly breakdown as CSV to w.
func EncodeHoursCSV(w io.Writer, hours []model.HourResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"hour",
		"action",
		"generated_kwh",
		"consumption_kwh",
		"self_consumed_kwh",
		"stored_kwh",
		"sold_kwh",
		"battery_used_kwh",
		"grid_import_kwh",
		"battery_charge_kwh",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, h := range hours {
		row := []string{
			strconv.Itoa(h.Hour),
			string(h.Action),
			fmtFloat(h.Generated),
			fmtFloat(h.Consumption),
			fmtFloat(h.SelfConsumed),
			fmtFloat(h.Stored),
			fmtFloat(h.Sold),
			fmtFloat(h.BatteryUsed),
			fmtFloat(h.GridImport),
			fmtFloat(h.BatteryCharge),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
