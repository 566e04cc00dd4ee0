package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MosheOgalbo/boa-home-assignment/checkout"
	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
)

func newShowLocalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show-local",
		Short: "Print the snapshot cached by the last save",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := checkout.ReadSnapshot(cmd.Context(), opts.store())
			if errors.Is(err, errors.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "No local snapshot")
				return nil
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
}
