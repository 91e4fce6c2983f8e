package main

import (
	"fmt"
	"time"

	"pv-battery-estimator/internal/data"

	"github.com/spf13/cobra"
)

var citiesOpts struct {
	output string
	seed   string
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Manage the city catalogue",
}

var citiesUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the city catalogue from the forecast directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		scanned, err := data.ScanCities(forecastDir)
		if err != nil {
			return fmt.Errorf("scan %s: %w", forecastDir, err)
		}

		seedPath := citiesOpts.seed
		if seedPath == "" {
			seedPath = citiesOpts.output
		}
		var seed []data.City
		if list, err := data.LoadCities(seedPath); err == nil {
			seed = list.Cities
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d existing cities from %s\n", len(seed), seedPath)
		}

		list := &data.CityList{
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
			Cities:    data.MergeCities(seed, scanned),
		}
		if err := data.SaveCities(list, citiesOpts.output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d cities to %s\n", len(list.Cities), citiesOpts.output)
		return nil
	},
}

var citiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cities of the catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := data.LoadCities(citiesOpts.output)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, c := range list.Cities {
			fmt.Fprintf(w, "%-20s %-24s %s\n", c.ID, c.Name, c.Province)
		}
		return nil
	},
}

func init() {
	citiesCmd.PersistentFlags().StringVar(&citiesOpts.output, "file", "data/cities.json", "city catalogue JSON file")
	citiesUpdateCmd.Flags().StringVar(&citiesOpts.seed, "seed", "", "existing catalogue to take names and coordinates from (default: --file)")
	citiesCmd.AddCommand(citiesUpdateCmd, citiesListCmd)
}
