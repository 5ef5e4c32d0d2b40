package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	chronos "github.com/chronos-analytics/chronos-go"
)

var (
	verbose    bool
	host       string
	configPath string
	emulate    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "Command-line client for the Chronos analytics platform",
	Long: `Chronos talks to the datamodel, time-series database and operator
catalog services of an analytics platform through one facade.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newAPI builds the API from the persistent flags. Config file values
// apply first, explicit flags win.
func newAPI() *chronos.API {
	opts := []chronos.Option{
		chronos.WithLogger(slog.Default()),
	}
	if host != "" {
		opts = append(opts, chronos.WithHost(host))
	}
	if emulate {
		opts = append(opts, chronos.WithEmulation(true))
	}

	api, err := chronos.Open(configPath, opts...)
	if err != nil {
		fatal("Error connecting", err)
	}
	return api
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fatal("Error encoding JSON", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Platform entry URL (defaults to CHRONOS_HOST)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (defaults to CHRONOS_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&emulate, "emulate", false, "Use in-memory backends instead of the platform")
}
