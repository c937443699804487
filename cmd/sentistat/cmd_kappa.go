package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/sentistat/pkg/sentistat/agreement"
	"github.com/cognicore/sentistat/pkg/sentistat/report"
	"github.com/cognicore/sentistat/pkg/sentistat/store"
)

func newKappaCmd(a *app) *cobra.Command {
	var weighting string
	cmd := &cobra.Command{
		Use:   "kappa",
		Short: "Cohen's kappa between annotator1 and annotator2",
		Long: `Coerces both annotator columns to numbers, drops rows where either value is
missing or not a single number, and computes Cohen's kappa over the rest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("weighting") {
				cfg.Weighting = weighting
			}
			w, err := agreement.ParseWeighting(cfg.Weighting)
			if err != nil {
				return err
			}
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			tbl, err := a.loadTable(cfg)
			if err != nil {
				return err
			}
			col1, err := tbl.Column(cfg.Columns.Annotator1)
			if err != nil {
				return err
			}
			col2, err := tbl.Column(cfg.Columns.Annotator2)
			if err != nil {
				return err
			}

			res, err := agreement.FromColumns(col1, col2, w)
			if err != nil {
				return fmt.Errorf("compute kappa: %w", err)
			}
			a.logger.Debug("kappa computed",
				zap.Int("pairs", res.Pairs),
				zap.Int("dropped", res.Dropped),
				zap.Float64("kappa", res.Kappa))

			if err := report.Kappa(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			return a.record(cmd.Context(), cfg, store.KindKappa, res)
		},
	}
	cmd.Flags().StringVar(&weighting, "weighting", "none", "disagreement weights: none, linear or quadratic")
	return cmd
}
