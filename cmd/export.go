package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/felipegalvaoz/zemdocs-admin/internal/export"
	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export empresas to an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		page, err := env.svc.List(ctx, model.ListFilter{Limit: limit, Search: search})
		if err != nil {
			return eris.Wrap(err, "export: list")
		}

		f, err := os.Create(args[0])
		if err != nil {
			return eris.Wrap(err, "export: create file")
		}
		defer f.Close()

		if err := export.WriteXLSX(f, page.Empresas); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Exported %d empresas to %s\n", len(page.Empresas), args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().String("search", "", "backend search filter")
	exportCmd.Flags().Int("limit", 1000, "max records to export")
	rootCmd.AddCommand(exportCmd)
}
