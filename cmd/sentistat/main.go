package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/sentistat/pkg/sentistat/config"
	"github.com/cognicore/sentistat/pkg/sentistat/corpus"
	"github.com/cognicore/sentistat/pkg/sentistat/report"
	"github.com/cognicore/sentistat/pkg/sentistat/store"
	"github.com/cognicore/sentistat/pkg/sentistat/store/sqlite"
)

// app carries the global flags and the logger shared by all subcommands.
type app struct {
	configPath string
	input      string
	sheet      string
	skipRows   int
	format     string
	dbPath     string
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "sentistat",
		Short: "Agreement and corpus statistics for a sentiment-annotated spreadsheet",
		Long: `sentistat reads an annotated spreadsheet of social-media posts and reports:

  kappa         Cohen's kappa between the two annotators
  overview      lexical statistics broken down by sentiment label
  distribution  label counts and percentages per annotator and combined`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.input, "input", "", "annotated corpus (.xlsx, .csv, .tsv, .jsonl)")
	pf.StringVar(&a.sheet, "sheet", "", "worksheet name (xlsx only)")
	pf.IntVar(&a.skipRows, "skip-rows", 0, "legend rows above the header")
	pf.StringVar(&a.format, "format", "text", "output format: text or json")
	pf.StringVar(&a.dbPath, "db", "", "record results in this SQLite run history")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newKappaCmd(a),
		newOverviewCmd(a),
		newDistributionCmd(a),
		newRunsCmd(a),
	)
	return root
}

// loadConfig reads the config file (or defaults) and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(a.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("sheet") {
		cfg.Sheet = a.sheet
	}
	if flags.Changed("skip-rows") {
		cfg.SkipRows = a.skipRows
	}
	if flags.Changed("db") {
		cfg.DB = a.dbPath
	}
	return cfg, cfg.Validate()
}

func (a *app) loadTable(cfg config.Config) (*corpus.Table, error) {
	a.logger.Info("loading corpus", zap.String("input", cfg.Input), zap.String("sheet", cfg.Sheet))
	tbl, err := corpus.Load(cfg.Input, corpus.Options{
		Sheet:    cfg.Sheet,
		SkipRows: cfg.SkipRows,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return tbl, nil
}

func (a *app) outputFormat() (report.Format, error) {
	return report.ParseFormat(a.format)
}

// record stores a run in the history database when one is configured.
func (a *app) record(ctx context.Context, cfg config.Config, kind store.Kind, result any) error {
	if cfg.DB == "" {
		return nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	st, err := sqlite.OpenSQLite(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer st.Close()

	run := store.NewRun(kind, cfg.Input, payload)
	if err := st.Save(ctx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	a.logger.Info("run recorded", zap.String("id", run.ID), zap.String("kind", string(kind)), zap.String("db", cfg.DB))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
