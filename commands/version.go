package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var Version = "v1.0.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of profilebench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "profilebench %s\n", Version)
		},
	}
}
