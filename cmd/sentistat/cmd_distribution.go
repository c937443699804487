package main

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/sentistat/pkg/sentistat/distribution"
	"github.com/cognicore/sentistat/pkg/sentistat/report"
	"github.com/cognicore/sentistat/pkg/sentistat/store"
)

func newDistributionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "distribution",
		Short: "Label counts and percentages per annotator and combined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			comp, err := cfg.Load()
			if err != nil {
				return err
			}
			tbl, err := a.loadTable(cfg)
			if err != nil {
				return err
			}

			// a sheet narrower than the annotator columns counts nothing
			res := distribution.Tabulate(
				tbl.OptionalColumn(cfg.Columns.Annotator1),
				tbl.OptionalColumn(cfg.Columns.Annotator2),
				comp.Scheme,
			)
			res.Rows, res.Columns = tbl.Shape()
			res.Header = tbl.Header

			if err := report.Distribution(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			return a.record(cmd.Context(), cfg, store.KindDistribution, res)
		},
	}
}
