package commands

import (
	"github.com/spf13/cobra"

	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/in/console"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive account menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}
}

func runMenu(cmd *cobra.Command) error {
	m := console.NewMenu(appCtx.core, cmd.InOrStdin(), cmd.OutOrStdout())
	return m.Run(cmd.Context())
}
