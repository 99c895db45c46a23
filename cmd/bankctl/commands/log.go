package commands

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Print the saved account log",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := appCtx.accountLog.Entries()
			if errors.Is(err, os.ErrNotExist) {
				fprintln(cmd.OutOrStdout(), "No accounts saved yet.")
				return nil
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ACCOUNT\tHOLDER\tBALANCE")
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Holder, e.Balance.StringFixed(2))
			}
			return w.Flush()
		},
	}
}
