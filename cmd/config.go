package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teemow/hebcal/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the hebcal profile",
		Long: `Manage the YAML profile holding the default location, preferences and
export settings. The profile lives at $XDG_CONFIG_HOME/hebcal/config.yaml
unless --config is given.`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func profilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the profile location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := profilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		profile = config.DefaultConfig()

		geonameID     int
		latitude      float64
		longitude     float64
		havdalah      int
		candleMinutes int
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a new profile",
		Long: `Write a new profile from the given flags. An existing profile is only
replaced with --force.

Example:
  hebcal config init --zip 90210 --candle-minutes 18 --leyning on`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := profilePath()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("profile %s already exists, use --force to replace it", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			fl := cmd.Flags()
			if fl.Changed("geonameid") {
				profile.Location.GeonameID = &geonameID
			}
			if fl.Changed("latitude") {
				profile.Location.Latitude = &latitude
			}
			if fl.Changed("longitude") {
				profile.Location.Longitude = &longitude
			}
			if fl.Changed("havdalah") {
				profile.Preferences.Havdalah = &havdalah
			}
			if fl.Changed("candle-minutes") {
				profile.Preferences.CandleMinutes = &candleMinutes
			}

			profile.Normalize()
			if err := profile.Validate(); err != nil {
				return fmt.Errorf("invalid profile: %w", err)
			}
			if err := profile.Save(path); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing profile")
	cmd.Flags().IntVar(&geonameID, "geonameid", 0, "GeoNames.org location ID")
	cmd.Flags().StringVar(&profile.Location.Zip, "zip", "", "US zip code")
	cmd.Flags().StringVar(&profile.Location.City, "city", "", "Legacy city identifier")
	cmd.Flags().Float64Var(&latitude, "latitude", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "Longitude in decimal degrees")
	cmd.Flags().StringVar(&profile.Location.TZID, "tzid", "", "Olson timezone for coordinates")
	cmd.Flags().IntVar(&havdalah, "havdalah", 0, "Havdalah minutes after sundown")
	cmd.Flags().IntVar(&candleMinutes, "candle-minutes", 0, "Candle-lighting minutes before sunset")
	cmd.Flags().StringVar(&profile.Preferences.Transliteration, "transliteration", "", "ashkenazic or sephardic")
	cmd.Flags().StringVar(&profile.Preferences.Leyning, "leyning", "", "on or off")
	cmd.Flags().StringVar(&profile.Export.Path, "export-path", config.DefaultExportPath, "Default export file")
	cmd.Flags().StringVar(&profile.Export.CalendarName, "calendar-name", "", "Default calendar name")
	cmd.Flags().StringVar(&profile.Export.Schedule, "schedule", "", "Default export cron schedule")

	return cmd
}
