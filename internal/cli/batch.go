package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grantsift/grantsift/internal/pipeline"
)

var batchOutputDir string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Parse every XML corpus in a directory",
	Long: `Batch processes every .xml file in a directory, one at a time:
- Each corpus is parsed, classified, and written to its own CSV
- Output files are named after the input (ipg250819.xml -> ipg250819.csv)
- A corpus that fails to parse is reported and skipped; the run continues

Example:
  grantsift batch ./corpora
  grantsift batch ./corpora --output-dir data/raw`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./grantsift-output", "output directory for CSV files")
	batchCmd.Flags().StringVar(&rulesPath, "rules", "", "classification rule set YAML (default: built-in rules)")
	batchCmd.Flags().IntVar(&progressEvery, "progress-every", 1000, "report progress every N kept records (0 disables)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable per-code rule memoization")
	batchCmd.Flags().StringVar(&grantElement, "grant-element", "us-patent-grant", "tag name of top-level patent elements")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	inputs, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return fmt.Errorf("list corpora: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no .xml files found in %q", dir)
	}

	cfg, rules, err := buildConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d corpus files from %s\n\n", len(inputs), dir)

	p := pipeline.NewPipeline(cfg, rules)
	failures := 0

	for _, input := range inputs {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output := filepath.Join(batchOutputDir, base+".csv")

		fmt.Fprintf(os.Stderr, "--- %s\n", filepath.Base(input))
		result, err := p.Run(input, output)
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n\n", filepath.Base(input), err)
			continue
		}
		result.PrintSummary(output)
		fmt.Fprintln(os.Stderr)
	}

	fmt.Fprintf(os.Stderr, "Batch complete: %d files, %d failures\n", len(inputs), failures)
	if failures == len(inputs) {
		return fmt.Errorf("all %d corpus files failed", failures)
	}
	return nil
}
