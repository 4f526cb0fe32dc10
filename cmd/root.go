/*
	Copyright 2023 Markus Papenbrock
*/

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	analyzeCmd "github.com/mpapenbr/f1-interval-tracker-go/pkg/cmd/analyze"
	pitstopsCmd "github.com/mpapenbr/f1-interval-tracker-go/pkg/cmd/pitstops"
	recordingsCmd "github.com/mpapenbr/f1-interval-tracker-go/pkg/cmd/recordings"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/version"
)

const envPrefix = "F1I"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "f1interval",
	Short:   "Interval and event analysis for F1 timing data",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag setup
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.f1interval.yml)")

	rootCmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat,
		"log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogFilters,
		"log-filters",
		"",
		"zapfilter rules limiting output to certain named loggers")
	rootCmd.PersistentFlags().StringVar(&config.RecordingsDir,
		"recordings-dir",
		"recorded_sessions",
		"directory containing recorded session files")

	rootCmd.PersistentFlags().Float64Var(&config.LapTimeMinSec,
		"lap-time-min",
		0,
		"lower plausibility bound for a lap duration in seconds (default 60)")
	rootCmd.PersistentFlags().Float64Var(&config.LapTimeMaxSec,
		"lap-time-max",
		0,
		"upper plausibility bound for a lap duration in seconds (default 150)")
	rootCmd.PersistentFlags().Float64Var(&config.PitMarginSec,
		"pit-margin",
		0,
		"excess over the average lap time that flags a pit stop (default 30)")
	rootCmd.PersistentFlags().IntVar(&config.TrendWindow,
		"trend-window",
		0,
		"number of interval deltas used for trend and closing rate (default 3)")
	rootCmd.PersistentFlags().Float64Var(&config.TrendThreshold,
		"trend-threshold",
		0,
		"band in seconds within which the gap counts as stable (default 0.1)")
	rootCmd.PersistentFlags().Float64Var(&config.DrsWindowSec,
		"drs-window",
		0,
		"max trailing gap in seconds enabling DRS (default 1.0)")

	// add commands here
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(pitstopsCmd.NewPitstopsCmd())
	rootCmd.AddCommand(recordingsCmd.NewRecordingsCmd())
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithFilters(config.LogFilters))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithFilters(config.LogFilters))
	}
	log.ResetDefault(logger)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".f1interval" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".f1interval")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --favorite-color to STING_FAVORITE_COLOR
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
