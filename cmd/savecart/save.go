package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MosheOgalbo/boa-home-assignment/checkout"
)

type criticalError struct {
	msg *checkout.Message
}

func (e criticalError) Error() string {
	return e.msg.Content
}

func newSaveCmd(opts *options) *cobra.Command {
	var (
		lineFlags   []string
		selectFlags []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save selected cart lines for later",
		Long: `Save the selected lines of a cart. Lines are given as ID=QUANTITY.
Without --select every line is selected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := parseLines(lineFlags)
			if err != nil {
				return err
			}

			selection := checkout.NewSelection()
			if len(selectFlags) == 0 {
				for _, line := range lines {
					selection.Toggle(line.MerchandiseID)
				}
			}
			for _, id := range selectFlags {
				selection.Toggle(id)
			}

			saver := checkout.NewSaveCoordinator(selection, opts.store(), opts.backend())
			msg := saver.Save(cmd.Context(), lines, opts.identity())
			if msg == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing selected")
				return nil
			}
			if msg.Status == checkout.StatusCritical {
				return criticalError{msg: msg}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", msg.Status, msg.Content)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&lineFlags, "line", nil, "cart line as ID=QUANTITY (repeatable)")
	cmd.Flags().StringArrayVar(&selectFlags, "select", nil, "merchandise id to select (repeatable)")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

func parseLines(raw []string) ([]checkout.CartLine, error) {
	lines := make([]checkout.CartLine, 0, len(raw))
	for _, r := range raw {
		id, qty, ok := strings.Cut(r, "=")
		if !ok {
			qty = "1"
		}
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("invalid --line %q: empty id", r)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid --line %q: quantity must be a positive integer", r)
		}
		lines = append(lines, checkout.CartLine{MerchandiseID: id, Quantity: n})
	}
	return lines, nil
}
