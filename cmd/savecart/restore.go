package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MosheOgalbo/boa-home-assignment/checkout"
)

func newRestoreCmd(opts *options) *cobra.Command {
	var (
		dryRun      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Add the saved list back into the storefront cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			restorer := checkout.NewRestoreCoordinator(opts.backend(), concurrency)
			items, err := restorer.Load(cmd.Context(), opts.identity())
			if err != nil {
				return fmt.Errorf("load saved cart: %w", err)
			}

			w := cmd.OutOrStdout()
			if dryRun {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(checkout.Snapshot{Items: items})
			}
			if len(items) == 0 {
				fmt.Fprintln(w, "No saved items")
				return nil
			}

			report := restorer.Restore(cmd.Context(), checkout.NewHTTPCart(opts.cartURL, opts.timeout))
			for _, id := range report.Added {
				fmt.Fprintf(w, "added  %s\n", id)
			}
			for _, f := range report.Failed {
				fmt.Fprintf(w, "failed %s: %v\n", f.VariantID, f.Err)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d of %d items could not be restored", len(report.Failed), len(items))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the saved list without touching the cart")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "parallel cart additions")
	return cmd
}
