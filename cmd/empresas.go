package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/felipegalvaoz/zemdocs-admin/internal/empresa"
	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
	"github.com/felipegalvaoz/zemdocs-admin/internal/tableview"
)

var empresasCmd = &cobra.Command{
	Use:   "empresas",
	Short: "Manage registered empresas",
	Long:  "Commands for listing, viewing, creating, updating, and deleting empresas in the zemdocs registry.",
}

// -- empresas list --

var empresasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List empresas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		page, err := env.svc.List(ctx, model.ListFilter{
			Limit:  limit,
			Offset: offset,
			Search: search,
		})
		if err != nil {
			return eris.Wrap(err, "empresas list")
		}

		// Refinements past what the backend filters happen client-side,
		// same as the dashboard table.
		view := tableview.NewState()
		view.SetPageSize(50)
		if uf, _ := cmd.Flags().GetString("uf"); uf != "" {
			view.ToggleUF(uf)
		}
		if sit, _ := cmd.Flags().GetString("situacao"); sit != "" {
			view.ToggleSituacao(sit)
		}
		if col, _ := cmd.Flags().GetString("sort"); col != "" {
			dir := tableview.Asc
			if desc, _ := cmd.Flags().GetBool("desc"); desc {
				dir = tableview.Desc
			}
			view.SetSort(col, dir)
		}

		res := view.Apply(page.Empresas)
		if res.Total == 0 {
			fmt.Fprintln(os.Stderr, "No empresas found.")
			return nil
		}

		formatEmpresasList(os.Stdout, res.Rows)
		fmt.Fprintf(os.Stdout, "\nShowing %d of %d (backend total %d)\n",
			len(res.Rows), res.Total, page.Total)
		return nil
	},
}

// -- empresas show --

var empresasShowCmd = &cobra.Command{
	Use:   "show <id|cnpj>",
	Short: "Show full details of one empresa",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		var e *model.Empresa
		if id, convErr := strconv.Atoi(args[0]); convErr == nil && len(args[0]) < 14 {
			e, err = env.svc.Get(ctx, id)
		} else {
			e, err = env.svc.GetByCNPJ(ctx, args[0])
		}
		if err != nil {
			if errors.Is(err, empresa.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "Empresa não encontrada.")
				return nil
			}
			return eris.Wrap(err, "empresas show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	},
}

// -- empresas create --

var empresasCreateCmd = &cobra.Command{
	Use:   "create <cnpj>",
	Short: "Create an empresa from a registry lookup",
	Long:  "Consults the public registry for the CNPJ and registers the resulting record in one step.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		e, err := env.svc.CreateFromCNPJ(ctx, args[0])
		if err != nil {
			var dup *empresa.DuplicateCNPJError
			if errors.As(err, &dup) {
				fmt.Fprintf(os.Stderr, "Empresa com CNPJ %s já cadastrada. Use `empresas show %s` para vê-la.\n",
					model.FormatCNPJ(dup.CNPJ), dup.CNPJ)
				return nil
			}
			return eris.Wrap(err, "empresas create")
		}

		fmt.Fprintf(os.Stdout, "Criada empresa %d: %s (%s)\n", e.ID, e.RazaoSocial, model.FormatCNPJ(e.CNPJ))
		return nil
	},
}

// -- empresas update --

var empresasUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the mutable fields of one empresa",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Errorf("empresas update: invalid id %q", args[0])
		}

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		// Start from the current record so unset flags keep their value.
		current, err := env.svc.Get(ctx, id)
		if err != nil {
			return eris.Wrap(err, "empresas update: fetch current")
		}

		req := &model.EmpresaUpdate{
			RazaoSocial:  current.RazaoSocial,
			NomeFantasia: current.NomeFantasia,
			Email:        current.Email,
			Telefone:     current.Telefone,
			Ativa:        current.Ativa,
		}
		if cmd.Flags().Changed("razao-social") {
			req.RazaoSocial, _ = cmd.Flags().GetString("razao-social")
		}
		if cmd.Flags().Changed("nome-fantasia") {
			req.NomeFantasia, _ = cmd.Flags().GetString("nome-fantasia")
		}
		if cmd.Flags().Changed("email") {
			req.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("telefone") {
			req.Telefone, _ = cmd.Flags().GetString("telefone")
		}
		if cmd.Flags().Changed("ativa") {
			req.Ativa, _ = cmd.Flags().GetBool("ativa")
		}

		e, err := env.svc.Update(ctx, id, req)
		if err != nil {
			return eris.Wrap(err, "empresas update")
		}

		fmt.Fprintf(os.Stdout, "Atualizada empresa %d: %s\n", e.ID, e.RazaoSocial)
		return nil
	},
}

// -- empresas delete --

var empresasDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more empresas",
	Long:  "Deletes the given ids one at a time, stopping at the first failure.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ids := make([]int, 0, len(args))
		for _, a := range args {
			id, err := strconv.Atoi(a)
			if err != nil {
				return eris.Errorf("empresas delete: invalid id %q", a)
			}
			ids = append(ids, id)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintf(os.Stdout, "Delete %d empresa(s)? [y/N] ", len(ids))
			var answer string
			fmt.Fscanln(os.Stdin, &answer)
			if answer != "y" && answer != "Y" {
				fmt.Fprintln(os.Stderr, "Aborted.")
				return nil
			}
		}

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		deleted, err := env.svc.DeleteMany(ctx, ids)
		fmt.Fprintf(os.Stdout, "Excluídas %d de %d empresas.\n", deleted, len(ids))
		if err != nil {
			return eris.Wrap(err, "empresas delete")
		}
		return nil
	},
}

func init() {
	empresasListCmd.Flags().String("search", "", "backend search over razão social and CNPJ")
	empresasListCmd.Flags().Int("limit", 50, "max records to fetch")
	empresasListCmd.Flags().Int("offset", 0, "records to skip")
	empresasListCmd.Flags().String("uf", "", "filter by state (client-side)")
	empresasListCmd.Flags().String("situacao", "", "filter by registration status (client-side)")
	empresasListCmd.Flags().String("sort", "", "sort column (razao_social, data_abertura, capital_social, ...)")
	empresasListCmd.Flags().Bool("desc", false, "sort descending")

	empresasUpdateCmd.Flags().String("razao-social", "", "new razão social")
	empresasUpdateCmd.Flags().String("nome-fantasia", "", "new nome fantasia")
	empresasUpdateCmd.Flags().String("email", "", "new email")
	empresasUpdateCmd.Flags().String("telefone", "", "new telefone")
	empresasUpdateCmd.Flags().Bool("ativa", false, "active flag")

	empresasDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation")

	empresasCmd.AddCommand(empresasListCmd)
	empresasCmd.AddCommand(empresasShowCmd)
	empresasCmd.AddCommand(empresasCreateCmd)
	empresasCmd.AddCommand(empresasUpdateCmd)
	empresasCmd.AddCommand(empresasDeleteCmd)
	rootCmd.AddCommand(empresasCmd)
}

// formatEmpresasList writes a tabular listing to w.
func formatEmpresasList(out io.Writer, empresas []model.Empresa) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCNPJ\tRAZAO_SOCIAL\tMUNICIPIO\tUF\tSITUACAO\tATIVA")
	_, _ = fmt.Fprintln(w, "--\t----\t------------\t---------\t--\t--------\t-----")

	for _, e := range empresas {
		name := e.RazaoSocial
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			model.FormatCNPJ(e.CNPJ),
			name,
			e.Municipio,
			e.UF,
			e.SituacaoCadastral,
			boolMark(e.Ativa),
		)
	}
	_ = w.Flush()
}

func boolMark(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}
