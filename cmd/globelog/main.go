package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	globelog "github.com/NourAshoush/GlobeLogAssets"
	"github.com/NourAshoush/GlobeLogAssets/internal/normalize"
	"github.com/NourAshoush/GlobeLogAssets/internal/verify"
	"github.com/lmittmann/tint"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	flagsDir string
	verbose  bool
)

var errValidationFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:           "globelog",
	Short:         "Curate and verify the GlobeLog airport/country dataset",
	Long:          `globelog normalizes raw airport and country extracts into curated CSVs, builds a SQLite store with a full-text airport search index, and verifies that the curated files, the store, the timezone feed and the flag assets all agree.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory holding raw and curated data files")
	rootCmd.PersistentFlags().StringVar(&flagsDir, "flags-dir", "flags", "directory holding per-country flag assets")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set debug logging level")

	rootCmd.AddCommand(
		newCountriesCmd(),
		newAirportsCmd(),
		newBuildCmd(),
		newVerifyCmd(),
		newInspectCmd(),
	)
}

func pipelineConfig() globelog.Config {
	return globelog.Config{
		Logger: newLogger(verbose),
		Paths:  globelog.Paths{DataDir: dataDir, FlagsDir: flagsDir},
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "Normalize the raw countries extract into curated countries and continents",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := globelog.CurateCountries(pipelineConfig())
			if err != nil {
				return err
			}
			fmt.Printf("Processed %d countries -> curated_countries.csv and %d continents -> curated_continents.csv.\n",
				result.Countries, result.Continents)
			return nil
		},
	}
}

func newAirportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "airports",
		Short: "Normalize the raw airports extract and attach resolved timezones",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := globelog.CurateAirports(pipelineConfig())
			if err != nil {
				return err
			}

			stats := result.Stats
			fmt.Printf("Read %d airports. Wrote %d -> curated_airports.csv.\n", stats.Read, stats.Kept)
			fmt.Printf("Kept %d airports (medium: %d, large: %d). Skipped %d medium/large airports without IATA codes.\n",
				stats.Kept, stats.TypeCounts["medium_airport"], stats.TypeCounts["large_airport"], stats.MissingIATA)
			fmt.Printf("Airports without municipality: %d, without timezone: %d.\n",
				stats.MissingMunicipality, stats.MissingTimezone)
			fmt.Printf("Top countries by count: %s.\n", formatTopCountries(result.TopCountries))

			if len(result.Sample) > 0 {
				fmt.Println("Sample (first 5):")
				for _, a := range result.Sample {
					fmt.Printf("  %3s | %s | %s | %s | %s, %s\n",
						a.IATA, a.Name, a.CountryCode, a.Continent, a.LatitudeDeg, a.LongitudeDeg)
				}
			}
			return nil
		},
	}
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the SQLite store from the curated CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := globelog.BuildStore(cmd.Context(), pipelineConfig())
			if err != nil {
				return err
			}
			fmt.Printf("Built %s: %d continents, %d countries, %d airports.\n",
				result.Path, result.Continents, result.Countries, result.Airports)
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the consistency validators",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "datasets",
			Short: "Check curated airports against curated countries",
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := globelog.VerifyDatasets(pipelineConfig())
				if err != nil {
					return err
				}
				return printReport(report)
			},
		},
		&cobra.Command{
			Use:   "store",
			Short: "Compare the curated CSVs against the built store",
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := globelog.VerifyStore(cmd.Context(), pipelineConfig())
				if err != nil {
					return err
				}
				return printReport(report)
			},
		},
		&cobra.Command{
			Use:   "timezones",
			Short: "Report timezone coverage of the curated airports",
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := globelog.VerifyTimezones(pipelineConfig())
				if err != nil {
					return err
				}
				return printReport(report)
			},
		},
		&cobra.Command{
			Use:   "flags",
			Short: "Check flag-asset coverage and normalize asset filenames",
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := globelog.VerifyFlags(pipelineConfig())
				if err != nil {
					return err
				}
				return printReport(report)
			},
		},
	)
	return cmd
}

func newInspectCmd() *cobra.Command {
	var rowLimit int
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Preview the tables of the built store",
		RunE: func(cmd *cobra.Command, args []string) error {
			previews, err := globelog.Inspect(cmd.Context(), pipelineConfig(), rowLimit)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(previews))
			for _, p := range previews {
				names = append(names, p.Table)
			}
			fmt.Printf("Tables (%d): %s\n\n", len(previews), strings.Join(names, ", "))

			for _, preview := range previews {
				fmt.Printf("Table: %s\n", preview.Table)
				if len(preview.Rows) == 0 {
					fmt.Println("  [no preview shown]")
					fmt.Println()
					continue
				}
				table := tablewriter.NewWriter(os.Stdout)
				table.SetAutoWrapText(false)
				table.SetAutoFormatHeaders(false)
				table.SetHeader(preview.Columns)
				for _, row := range preview.Rows {
					table.Append(row)
				}
				table.Render()
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rowLimit, "rows", 10, "maximum rows to preview per table")
	return cmd
}

func printReport(report *verify.Report) error {
	if _, err := report.WriteTo(os.Stdout); err != nil {
		return err
	}
	if !report.OK() {
		return errValidationFailed
	}
	return nil
}

func formatTopCountries(top []normalize.CountryCount) string {
	if len(top) == 0 {
		return "n/a"
	}
	parts := make([]string, 0, len(top))
	for _, c := range top {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Code, c.Count))
	}
	return strings.Join(parts, ", ")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
