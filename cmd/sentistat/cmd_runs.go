package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/sentistat/pkg/sentistat/report"
	"github.com/cognicore/sentistat/pkg/sentistat/store"
	"github.com/cognicore/sentistat/pkg/sentistat/store/sqlite"
)

func newRunsCmd(a *app) *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run history recorded with --db",
	}

	var (
		kind  string
		limit int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, format, err := a.openHistory(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			recorded, err := st.List(cmd.Context(), store.Kind(kind), limit)
			if err != nil {
				return err
			}
			if format == report.JSON {
				type entry struct {
					ID        string    `json:"id"`
					Kind      string    `json:"kind"`
					Input     string    `json:"input"`
					CreatedAt time.Time `json:"created_at"`
				}
				out := make([]entry, 0, len(recorded))
				for _, r := range recorded {
					out = append(out, entry{r.ID, string(r.Kind), r.Input, r.CreatedAt})
				}
				return report.WriteJSON(cmd.OutOrStdout(), out)
			}
			for _, r := range recorded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %s  %s\n",
					r.ID, r.Kind, r.CreatedAt.Format(time.RFC3339), r.Input)
			}
			return nil
		},
	}
	list.Flags().StringVar(&kind, "kind", "", "only runs of this kind (kappa, overview, distribution)")
	list.Flags().IntVar(&limit, "limit", 20, "maximum number of runs (0 for all)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the stored result of a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.openHistory(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			r, err := st.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no run with id %s", args[0])
			}
			if err != nil {
				return err
			}
			return report.WriteJSON(cmd.OutOrStdout(), json.RawMessage(r.Result))
		},
	}

	runs.AddCommand(list, show)
	return runs
}

func (a *app) openHistory(cmd *cobra.Command) (store.Store, report.Format, error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	if cfg.DB == "" {
		return nil, "", errors.New("--db (or db in the config file) is required")
	}
	format, err := a.outputFormat()
	if err != nil {
		return nil, "", err
	}
	st, err := sqlite.OpenSQLite(cmd.Context(), cfg.DB)
	if err != nil {
		return nil, "", fmt.Errorf("open run history: %w", err)
	}
	return st, format, nil
}
