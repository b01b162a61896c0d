package internal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goplus/easyblocks/easyblocks"
	"github.com/goplus/easyblocks/easyconfig"
	"github.com/spf13/cobra"
)

var availOptionsCmd = &cobra.Command{
	Use:   "avail-options [easyblock]",
	Short: "List the easyconfig parameters an easyblock understands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := easyblocks.Lookup(args[0])
		if err != nil {
			return err
		}
		return printOptions(cmd.OutOrStdout(), easyconfig.Base().Merge(entry.Options))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available easyblocks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range easyblocks.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(availOptionsCmd)
	rootCmd.AddCommand(listCmd)
}

// printOptions writes opts grouped by category, one aligned row per option.
func printOptions(w io.Writer, opts easyconfig.Options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	categories := []easyconfig.Category{easyconfig.Mandatory, easyconfig.Toolchain, easyconfig.Build, easyconfig.Custom}
	for _, cat := range categories {
		var rows []string
		for _, name := range opts.Names() {
			if o := opts[name]; o.Category == cat {
				rows = append(rows, fmt.Sprintf("%s\t%s (default: %v)", name, o.Help, o.Default))
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\n", cat)
		for _, row := range rows {
			fmt.Fprintf(tw, "  %s\n", row)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
