package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/felipegalvaoz/zemdocs-admin/pkg/cnpja"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <cnpj>",
	Short: "Consult a CNPJ in the public registry",
	Long:  "Fetches the registry record for a CNPJ and prints the creation draft it would produce. Nothing is persisted; results are cached locally to spare the open API quota.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		draft, err := env.svc.Lookup(ctx, args[0])
		if err != nil {
			switch {
			case errors.Is(err, cnpja.ErrNotFound):
				fmt.Fprintln(os.Stderr, "CNPJ não encontrado na Receita.")
				return nil
			case errors.Is(err, cnpja.ErrRateLimited):
				fmt.Fprintln(os.Stderr, "Limite de consultas excedido. Tente novamente em alguns minutos.")
				return nil
			}
			return eris.Wrap(err, "lookup")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

var lookupCacheCmd = &cobra.Command{
	Use:   "cache-prune",
	Short: "Remove expired entries from the lookup cache",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initService()
		if err != nil {
			return err
		}
		defer env.Close()

		if env.cache == nil {
			fmt.Fprintln(os.Stderr, "Lookup cache unavailable.")
			return nil
		}

		n, err := env.cache.DeleteExpired(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "lookup cache-prune")
		}
		fmt.Fprintf(os.Stdout, "Removed %d expired entries.\n", n)
		return nil
	},
}

func init() {
	lookupCmd.AddCommand(lookupCacheCmd)
	rootCmd.AddCommand(lookupCmd)
}
