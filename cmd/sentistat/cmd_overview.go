package main

import (
	"github.com/spf13/cobra"

	"github.com/cognicore/sentistat/pkg/sentistat/overview"
	"github.com/cognicore/sentistat/pkg/sentistat/report"
	"github.com/cognicore/sentistat/pkg/sentistat/store"
)

func newOverviewCmd(a *app) *cobra.Command {
	var (
		stripMarkup bool
		topWords    int
	)
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Corpus statistics broken down by sentiment label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strip-markup") {
				cfg.StripMarkup = stripMarkup
			}
			if cmd.Flags().Changed("top-words") {
				cfg.TopWords = topWords
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

			res, err := overview.Compute(tbl, overview.Options{
				Title:         cfg.Columns.Title,
				Selftext:      cfg.Columns.Selftext,
				Annotator1:    cfg.Columns.Annotator1,
				URL:           cfg.Columns.URL,
				DefaultSource: cfg.DefaultSource,
				TopWords:      cfg.TopWords,
				TopBigrams:    cfg.TopBigrams,
				TopLabelWords: cfg.TopLabelWords,
				Normalizer:    comp.Normalizer,
				Stoplist:      comp.Stoplist,
				Scheme:        comp.Scheme,
				Logger:        a.logger,
			})
			if err != nil {
				return err
			}

			if err := report.Overview(cmd.OutOrStdout(), res, format); err != nil {
				return err
			}
			return a.record(cmd.Context(), cfg, store.KindOverview, res)
		},
	}
	cmd.Flags().BoolVar(&stripMarkup, "strip-markup", false, "remove HTML tags and entities before cleaning")
	cmd.Flags().IntVar(&topWords, "top-words", 20, "number of most frequent content words to report")
	return cmd
}
