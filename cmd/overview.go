package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/peekknuf/eda-cli/internal/dataset"
	"github.com/peekknuf/eda-cli/internal/quality"
	"github.com/peekknuf/eda-cli/internal/summary"
)

var (
	overviewSep     string
	overviewMaxRows int
)

var overviewCmd = &cobra.Command{
	Use:   "overview [file]",
	Short: "Print a quick overview of a CSV file",
	Long: `Print a quick overview of a dataset:
row and column counts, per-column types and statistics,
and the data-quality flags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		tbl, err := dataset.LoadCSV(path, dataset.Options{
			Delimiter: parseSep(overviewSep),
			MaxRows:   overviewMaxRows,
		})
		if err != nil {
			return err
		}

		qcfg, err := analyzerConfig()
		if err != nil {
			return err
		}

		ds := summary.Describe(tbl)
		rep, err := quality.Analyze(tbl, qcfg)
		if err != nil {
			return err
		}

		fmt.Printf("File: %s\n", path)
		fmt.Printf("Rows: %s\n", humanize.Comma(int64(ds.NRows)))
		fmt.Printf("Columns: %d\n\n", ds.NCols)

		fmt.Printf("%-24s %-12s %10s %10s %10s\n",
			"Column", "Kind", "Non-null", "Missing", "Distinct")
		for _, c := range ds.Columns {
			fmt.Printf("%-24s %-12s %10d %9.1f%% %10d\n",
				c.Name, c.Kind, c.NonNull, c.MissingShare*100, c.Distinct)
		}

		fmt.Printf("\nQuality score: %.2f\n", rep.Score)
		for _, f := range rep.OrderedFlags() {
			fmt.Printf("- %s: %v\n", f.Name, f.Set)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&overviewSep, "sep", "",
		"CSV delimiter (default: auto-detect)")
	overviewCmd.Flags().IntVar(&overviewMaxRows, "max-rows", 0,
		"Maximum rows to load (0 = all)")
}
