package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geoscope/internal/config"
	"geoscope/internal/logging"
	"geoscope/internal/tui"
)

var (
	flagConfig        string
	flagCenter        string
	flagZoom          float64
	flagClusterRadius float64
	flagWatch         bool
	flagLogFile       string
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "geoscope [file]",
	Short: "Terminal geospatial viewer",
	Long: `geoscope renders GeoJSON, CSV, KML and WKT datasets as an interactive
terminal map with marker clustering, tap selection and chart summaries.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if cmd.Flags().Changed("cluster-radius") {
			cfg.Cluster.RadiusMeters = flagClusterRadius
		}
		if cmd.Flags().Changed("watch") {
			cfg.Watch = flagWatch
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Log.File = flagLogFile
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = flagLogLevel
		}

		log, err := logging.New(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("logging: %w", err)
		}
		defer log.Sync()

		var m tui.Model
		if len(args) == 1 {
			m = tui.NewWithPath(cfg, log, args[0])
		} else {
			m = tui.New(cfg, log)
		}
		if flagCenter != "" || cmd.Flags().Changed("zoom") {
			lat, lon, err := parseCenter(flagCenter)
			if err != nil {
				return err
			}
			m = m.WithViewport(lat, lon, flagZoom, flagCenter != "", cmd.Flags().Changed("zoom"))
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
		_, err = p.Run()
		return err
	},
}

// parseCenter splits "lat,lon". An empty value is valid and means no
// override.
func parseCenter(s string) (lat, lon float64, err error) {
	if s == "" {
		return 0, 0, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --center %q, want lat,lon", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --center latitude: %w", err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --center longitude: %w", err)
	}
	return lat, lon, nil
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default geoscope.yaml)")
	rootCmd.Flags().StringVar(&flagCenter, "center", "", "initial viewport center as lat,lon")
	rootCmd.Flags().Float64Var(&flagZoom, "zoom", 2, "initial zoom level")
	rootCmd.Flags().Float64Var(&flagClusterRadius, "cluster-radius", 200, "cluster radius in meters")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the dataset when its file changes")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "debug log file (empty disables logging)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
