package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate empresa statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		page, err := env.svc.List(ctx, model.ListFilter{Limit: limit})
		if err != nil {
			return eris.Wrap(err, "stats")
		}

		formatStats(os.Stdout, stats.Compute(page.Empresas, time.Now()))
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 1000, "max records to aggregate")
	rootCmd.AddCommand(statsCmd)
}

// formatStats writes the aggregates to w.
func formatStats(out io.Writer, s stats.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Total:\t%d\n", s.Total)
	_, _ = fmt.Fprintf(w, "Ativas:\t%d\n", s.Ativas)
	_, _ = fmt.Fprintf(w, "Novas este ano:\t%d\n", s.NovasEsteAno)

	ufs := make([]string, 0, len(s.PorUF))
	for uf := range s.PorUF {
		ufs = append(ufs, uf)
	}
	sort.Strings(ufs)
	for _, uf := range ufs {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", uf, s.PorUF[uf])
	}
	_ = w.Flush()
}
