package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/appinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the program version and exit",
		Args:  argsExact(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", appinfo.ProgramName, appinfo.Version)
			return nil
		},
	}
}
