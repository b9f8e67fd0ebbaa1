package cmd

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/peekknuf/eda-cli/internal/connectors"
	"github.com/peekknuf/eda-cli/internal/dataset"
	"github.com/peekknuf/eda-cli/internal/quality"
)

var (
	checkMinScore  float64
	checkRecursive bool
	checkWorkers   int
	checkSep       string
)

type checkResult struct {
	Path  string
	Size  int64
	Score float64
	Flags []quality.Flag
	Err   error
}

var checkCmd = &cobra.Command{
	Use:   "check [file or directory]",
	Short: "Check data quality and fail below a score threshold",
	Long: `Run the quality checks over one CSV file or every CSV file in a
directory and exit with a non-zero status when any file scores below
--min-score. Intended for CI pipelines.

Examples:
  eda check data.csv --min-score 0.8
  eda check ./data --recursive --min-score 0.9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]

		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("access %s: %w", target, err)
		}

		var files []connectors.FileMeta
		if info.IsDir() {
			discovered, count, err := connectors.DiscoverFiles(target, "csv", connectors.DiscoveryOptions{
				Recursive: checkRecursive,
			})
			if err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("no CSV files found in %s", target)
			}
			files = discovered
		} else {
			files = []connectors.FileMeta{{Path: target, Size: info.Size()}}
		}

		qcfg, err := analyzerConfig()
		if err != nil {
			return err
		}

		results := checkFiles(files, qcfg)

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("%s: error: %v\n", r.Path, r.Err)
				continue
			}

			var raised []string
			for _, f := range r.Flags {
				if f.Set {
					raised = append(raised, f.Name)
				}
			}
			status := "ok"
			if r.Score < checkMinScore {
				status = "FAIL"
				failed++
			}
			fmt.Printf("%s: score %.2f [%s] (%s)\n",
				r.Path, r.Score, status, humanize.Bytes(uint64(r.Size)))
			if len(raised) > 0 {
				fmt.Printf("  flags: %s\n", strings.Join(raised, ", "))
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files below score %.2f", failed, len(results), checkMinScore)
		}
		log.Info().Int("files", len(results)).Msg("all files passed")
		return nil
	},
}

// checkFiles analyzes files concurrently with a bounded worker pool. Each
// analysis only reads its own table, so the runs are independent.
func checkFiles(files []connectors.FileMeta, qcfg quality.Config) []checkResult {
	workers := checkWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Checking files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	sem := make(chan struct{}, workers)
	out := make(chan checkResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			out <- checkFile(f, qcfg)
			bar.Add(1)
		}(file)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []checkResult
	for r := range out {
		results = append(results, r)
	}
	bar.Finish()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

func checkFile(f connectors.FileMeta, qcfg quality.Config) checkResult {
	res := checkResult{Path: f.Path, Size: f.Size}

	tbl, err := dataset.LoadCSV(f.Path, dataset.Options{Delimiter: parseSep(checkSep)})
	if err != nil {
		res.Err = err
		return res
	}

	rep, err := quality.Analyze(tbl, qcfg)
	if err != nil {
		res.Err = err
		return res
	}
	res.Score = rep.Score
	res.Flags = rep.OrderedFlags()
	return res
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Float64Var(&checkMinScore, "min-score", 0.8,
		"Minimum acceptable quality score")
	checkCmd.Flags().BoolVarP(&checkRecursive, "recursive", "r", false,
		"Search directories recursively")
	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0,
		"Number of parallel workers (default: CPU cores)")
	checkCmd.Flags().StringVar(&checkSep, "sep", "",
		"CSV delimiter (default: auto-detect)")
}
