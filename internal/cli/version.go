package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kanbo/internal/update"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kanbo version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "kanbo", update.Version)
		},
	}
}
