package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/docx"
	"github.com/docsight/docsight/internal/listing"
	"github.com/docsight/docsight/internal/paths"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list FILE",
		Aliases: []string{"ls", "browse"},
		Short:   "Print the paragraph structure of a document and exit",
		Args:    argsExact(1),
		RunE:    runList,
	}
	cmd.Flags().String("format", string(listing.FormatTable), "Output format: table, json or yaml")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := listing.ParseFormat(formatFlag)
	if err != nil {
		return Exitf(appinfo.ExitBadArgs, "%v", err)
	}

	abs, err := filepath.Abs(args[0])
	if err != nil {
		return Exitf(appinfo.ExitBadArgs, "invalid file path: %v", err)
	}

	doc, err := docx.Open(paths.NormRealPath(abs))
	if err != nil {
		return Exitf(appinfo.ExitError, "%v", err)
	}

	if err := listing.Write(cmd.OutOrStdout(), doc, format); err != nil {
		return Exitf(appinfo.ExitError, "write listing: %v", err)
	}
	return nil
}
