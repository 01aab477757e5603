package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teemow/hebcal/internal/config"
	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/ics"
)

// Output formats of the shabbat command
const (
	outputText = "text"
	outputJSON = "json"
	outputICS  = "ics"
)

// requestFlags are the request options accepted on the command line. Only
// flags the user changed are applied, on top of the profile.
type requestFlags struct {
	geonameID       int
	zip             string
	city            string
	latitude        float64
	longitude       float64
	tzid            string
	havdalah        int
	candleMinutes   int
	transliteration string
	leyning         string
	date            string
	year            int
	month           int
	day             int
}

func (f *requestFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.geonameID, "geonameid", 0, "GeoNames.org location ID, e.g. 281184 for Jerusalem")
	fs.StringVar(&f.zip, "zip", "", "US zip code")
	fs.StringVar(&f.city, "city", "", "Legacy city identifier, e.g. IL-Jerusalem")
	fs.Float64Var(&f.latitude, "latitude", 0, "Latitude in decimal degrees (with --longitude and --tzid)")
	fs.Float64Var(&f.longitude, "longitude", 0, "Longitude in decimal degrees (with --latitude and --tzid)")
	fs.StringVar(&f.tzid, "tzid", "", "Olson timezone for coordinates, e.g. America/New_York")
	fs.IntVar(&f.havdalah, "havdalah", 0, "Havdalah minutes after sundown (default: tzeit hakochavim)")
	fs.IntVar(&f.candleMinutes, "candle-minutes", 0, "Candle-lighting minutes before sunset (service default: 18)")
	fs.StringVar(&f.transliteration, "transliteration", "", "Transliteration: ashkenazic or sephardic")
	fs.StringVar(&f.leyning, "leyning", "", "Torah reading details: on or off")
	fs.StringVar(&f.date, "date", "", "Any date in the week to look up (YYYY-MM-DD)")
	fs.IntVar(&f.year, "gy", 0, "Gregorian year")
	fs.IntVar(&f.month, "gm", 0, "Gregorian month (1-12)")
	fs.IntVar(&f.day, "gd", 0, "Gregorian day of month")
}

// apply sets the changed flags on h. Location flags go in a fixed order,
// so the last location flag in that order selects the location method.
func (f *requestFlags) apply(fs *pflag.FlagSet, h *hebcal.ShabbatHandler) error {
	if fs.Changed("geonameid") {
		h.GeonameID(f.geonameID)
	}
	if fs.Changed("zip") {
		h.Zip(f.zip)
	}
	if fs.Changed("city") {
		h.City(f.city)
	}
	if fs.Changed("latitude") {
		h.Latitude(f.latitude)
	}
	if fs.Changed("longitude") {
		h.Longitude(f.longitude)
	}
	if fs.Changed("tzid") {
		h.TZID(f.tzid)
	}

	if fs.Changed("havdalah") {
		h.Havdalah(f.havdalah)
	}
	if fs.Changed("candle-minutes") {
		h.MinutesBeforeSunset(f.candleMinutes)
	}
	if fs.Changed("transliteration") {
		t, err := hebcal.ParseTransliteration(f.transliteration)
		if err != nil {
			return err
		}
		h.Transliteration(t)
	}
	if fs.Changed("leyning") {
		l, err := hebcal.ParseLeyning(f.leyning)
		if err != nil {
			return err
		}
		h.Leyning(l)
	}

	if fs.Changed("date") {
		date, err := time.Parse(time.DateOnly, f.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", f.date)
		}
		h.Date(date)
	}
	if fs.Changed("gy") {
		h.GregorianYear(f.year)
	}
	if fs.Changed("gm") {
		h.GregorianMonth(f.month)
	}
	if fs.Changed("gd") {
		h.GregorianDay(f.day)
	}
	return nil
}

// buildRequest creates a request from the profile and the changed flags.
func buildRequest(fs *pflag.FlagSet, client *hebcal.Client, profile *config.Config, flags *requestFlags) (*hebcal.ShabbatHandler, error) {
	h := client.Shabbat()
	if err := profile.Apply(h); err != nil {
		return nil, err
	}
	if err := flags.apply(fs, h); err != nil {
		return nil, err
	}
	return h, nil
}

func newShabbatCmd() *cobra.Command {
	var (
		flags  requestFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "shabbat",
		Short: "Show candle-lighting, parashat and havdalah times",
		Long: `Look up this week's Shabbat times on hebcal.com.

The location and preferences come from the profile (see "hebcal config")
and are overridden by any flag given on the command line. Give one
location: --geonameid, --zip, --city, or --latitude/--longitude/--tzid.

Examples:
  hebcal shabbat --zip 90210
  hebcal shabbat --geonameid 281184 --leyning on --output json
  hebcal shabbat --latitude 40.7128 --longitude -74.006 --tzid America/New_York --date 2024-03-08`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShabbat(cmd, &flags, output)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or ics")

	return cmd
}

func runShabbat(cmd *cobra.Command, flags *requestFlags, output string) error {
	switch output {
	case outputText, outputJSON, outputICS:
	default:
		return fmt.Errorf("invalid output %q, must be one of: text, json, ics", output)
	}

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	client, err := newClient(slog.Default(), nil)
	if err != nil {
		return err
	}

	h, err := buildRequest(cmd.Flags(), client, profile, flags)
	if err != nil {
		return err
	}

	result, err := h.Send(cmd.Context())
	if err != nil {
		return requestError(err)
	}

	return writeShabbat(cmd.OutOrStdout(), result, output)
}

// writeShabbat renders result to w in the given output format.
func writeShabbat(w io.Writer, result *hebcal.Shabbat, output string) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case outputICS:
		data, err := ics.Encode(result, ics.Options{})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, data)
		return err
	default:
		_, err := io.WriteString(w, result.Text())
		return err
	}
}
