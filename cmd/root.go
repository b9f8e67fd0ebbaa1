package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/peekknuf/eda-cli/internal/config"
	"github.com/peekknuf/eda-cli/internal/quality"
)

var (
	cfgFile string
	verbose bool

	cfg *cfgpkg.Global
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eda",
	Short: "Exploratory data analysis for CSV files",
	Long: `A CLI for quick exploratory data analysis of CSV files:
summary statistics, data-quality heuristics and Markdown reports
with embedded charts`,
	SilenceUsage: true,
}

func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.eda.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func initConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Error().Err(err).Msg("failed to load config, using defaults")
		def := defaultGlobal()
		c = &def
	}
	cfg = c

	level := parseLogLevel(cfg.LogLevel)
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func defaultGlobal() cfgpkg.Global {
	return cfgpkg.Global{
		HighCardinalityThreshold: 100,
		ZeroThreshold:            0.5,
		OutDir:                   "reports",
		MaxHistColumns:           6,
		TopKCategories:           10,
		MinMissingShare:          0.1,
		LogLevel:                 "info",
	}
}

func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// analyzerConfig builds the analyzer config from the loaded global
// config, rejecting thresholds a config file may have corrupted.
func analyzerConfig() (quality.Config, error) {
	return quality.ConfigFromOptions(map[string]any{
		"high_cardinality_threshold": cfg.HighCardinalityThreshold,
		"zero_threshold":             cfg.ZeroThreshold,
	})
}

// parseSep turns a --sep flag value into a delimiter rune. Empty means
// auto-detect.
func parseSep(s string) rune {
	switch s {
	case "", "auto":
		return 0
	case "\\t", "tab":
		return '\t'
	default:
		return []rune(s)[0]
	}
}
