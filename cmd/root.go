package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pable/go-versus-stats/internal/aggregator"
	"github.com/pable/go-versus-stats/internal/config"
	"github.com/pable/go-versus-stats/internal/model"
	"github.com/pable/go-versus-stats/internal/parser"
)

var (
	configPath string
	logLevel   string
	workers    int

	settings config.Settings
	logger   = zap.NewNop()
)

var cWarn = color.New(color.FgYellow)

var rootCmd = &cobra.Command{
	Use:   "vsstats",
	Short: "Versus replay statistics tool",
	Long: `Replay recorded versus matches round by round and compute per-player
placement, garbage, surge and death statistics.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaults := config.Defaults()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", defaults.Workers, "rounds simulated concurrently per replay")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(summaryCmd)
}

// setup resolves settings from defaults, the config file and flags, in that
// order, and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	file, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings = file.Apply(config.Defaults())
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = logLevel
	}
	if cmd.Flags().Changed("workers") {
		if workers <= 0 {
			return fmt.Errorf("--workers must be positive, got %d", workers)
		}
		settings.Workers = workers
	}

	l, err := newLogger(settings.LogLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

func aggregatorOptions() aggregator.Options {
	opts := settings.Options()
	opts.Logger = logger
	return opts
}

// analyzed is one replay file and its aggregate.
type analyzed struct {
	path   string
	replay *model.Replay
	result *model.MatchResult
}

// analyze loads and aggregates every path. Unparseable replays are reported
// and skipped; any other error aborts.
func analyze(paths []string) ([]analyzed, error) {
	opts := aggregatorOptions()
	var out []analyzed
	for _, path := range paths {
		replay, err := parser.LoadReplay(path)
		if errors.Is(err, parser.ErrUnparseable) {
			cWarn.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			logger.Warn("skipping unparseable replay", zap.String("path", path), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load replay: %w", err)
		}
		res, err := aggregator.Aggregate(replay, opts)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", path, err)
		}
		out = append(out, analyzed{path: path, replay: replay, result: res})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no parseable replays among %d file(s)", len(paths))
	}
	return out, nil
}

// merged folds the per-player totals of every analyzed replay.
func merged(all []analyzed) (map[string]*model.PlayerGameStats, []string) {
	results := make([]*model.MatchResult, len(all))
	for i, a := range all {
		results[i] = a.result
	}
	return aggregator.Merge(results...)
}
