package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/peekknuf/eda-cli/internal/dataset"
	"github.com/peekknuf/eda-cli/internal/quality"
	"github.com/peekknuf/eda-cli/internal/report"
)

var (
	reportOutDir          string
	reportSep             string
	reportTitle           string
	reportMaxHistColumns  int
	reportTopKCategories  int
	reportMinMissingShare float64
	reportHighCardinality int
	reportZeroThreshold   float64
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Generate a full EDA report",
	Long: `Generate a full EDA report for a CSV file:
a Markdown report with quality flags and embedded charts,
plus summary, missingness, correlation and top-category CSVs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		f := cmd.Flags()
		if !f.Changed("out-dir") {
			reportOutDir = cfg.OutDir
		}
		if !f.Changed("max-hist-columns") {
			reportMaxHistColumns = cfg.MaxHistColumns
		}
		if !f.Changed("top-k-categories") {
			reportTopKCategories = cfg.TopKCategories
		}
		if !f.Changed("min-missing-share") {
			reportMinMissingShare = cfg.MinMissingShare
		}
		if !f.Changed("high-cardinality-threshold") {
			reportHighCardinality = cfg.HighCardinalityThreshold
		}
		if !f.Changed("zero-threshold") {
			reportZeroThreshold = cfg.ZeroThreshold
		}

		qcfg, err := quality.ConfigFromOptions(map[string]any{
			"high_cardinality_threshold": reportHighCardinality,
			"zero_threshold":             reportZeroThreshold,
		})
		if err != nil {
			return err
		}

		log.Debug().Str("file", path).Msg("loading csv")
		tbl, err := dataset.LoadCSV(path, dataset.Options{
			Delimiter: parseSep(reportSep),
			MaxRows:   cfg.MaxRows,
		})
		if err != nil {
			return err
		}
		log.Debug().
			Int("rows", tbl.NumRows()).
			Int("cols", tbl.NumCols()).
			Msg("csv loaded")

		rep, err := quality.Analyze(tbl, qcfg)
		if err != nil {
			return err
		}

		bar := progressbar.NewOptions(report.Steps,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Rendering report..."),
			progressbar.OptionSetWidth(20),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)

		w := &report.Writer{
			OutDir:   reportOutDir,
			Progress: func() { bar.Add(1) },
		}
		mdPath, err := w.Write(tbl, rep, report.Params{
			Title:           reportTitle,
			Source:          filepath.Base(path),
			MaxHistColumns:  reportMaxHistColumns,
			TopKCategories:  reportTopKCategories,
			MinMissingShare: reportMinMissingShare,
		})
		bar.Finish()
		if err != nil {
			return err
		}

		if info, err := os.Stat(mdPath); err == nil {
			log.Info().
				Str("path", mdPath).
				Str("size", humanize.Bytes(uint64(info.Size()))).
				Float64("score", rep.Score).
				Msg("report generated")
		}

		fmt.Printf("Report generated in %s\n", reportOutDir)
		fmt.Printf("- Markdown: %s\n", mdPath)
		fmt.Println("- Tables: summary.csv, missing.csv, correlation.csv, top_categories/*.csv")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutDir, "out-dir", "o", "reports",
		"Output directory for report files")
	reportCmd.Flags().StringVar(&reportSep, "sep", "",
		"CSV delimiter (default: auto-detect)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "EDA Report",
		"Title of the report")
	reportCmd.Flags().IntVar(&reportMaxHistColumns, "max-hist-columns", 6,
		"Maximum numeric columns to plot histograms for")
	reportCmd.Flags().IntVar(&reportTopKCategories, "top-k-categories", 10,
		"Top categories to show per categorical column")
	reportCmd.Flags().Float64Var(&reportMinMissingShare, "min-missing-share", 0.1,
		"Threshold for highlighting columns with many missing values")
	reportCmd.Flags().IntVar(&reportHighCardinality, "high-cardinality-threshold", 100,
		"Max distinct values before a categorical column is flagged")
	reportCmd.Flags().Float64Var(&reportZeroThreshold, "zero-threshold", 0.5,
		"Max share of zeros before a numeric column is flagged")
}
