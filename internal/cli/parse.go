package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grantsift/grantsift/internal/classify"
	"github.com/grantsift/grantsift/internal/model"
	"github.com/grantsift/grantsift/internal/pipeline"
)

var (
	outPath       string
	rulesPath     string
	progressEvery int
	noCache       bool
	grantElement  string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <xml-file>",
	Short: "Parse a patent-grant XML corpus and write the classified CSV",
	Long: `Parse reads a USPTO full-text patent-grant XML file, classifies every
grant with the layered CPC/keyword rule set, and writes records labeled
AI or Control to a CSV dataset. Ignored grants are dropped.

The corpus may be a raw weekly file: concatenated documents with repeated
prolog and doctype declarations are repaired before parsing.

Example:
  grantsift parse ipg250819.xml
  grantsift parse ipg250819.xml --out data/raw/patent_applications.csv
  grantsift parse ipg250819.xml --rules myrules.yaml --progress-every 500`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&outPath, "out", "patent_applications.csv", "output CSV path")
	parseCmd.Flags().StringVar(&rulesPath, "rules", "", "classification rule set YAML (default: built-in rules)")
	parseCmd.Flags().IntVar(&progressEvery, "progress-every", 1000, "report progress every N kept records (0 disables)")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable per-code rule memoization")
	parseCmd.Flags().StringVar(&grantElement, "grant-element", "us-patent-grant", "tag name of top-level patent elements")
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("XML file %q not found", input)
	}

	cfg, rules, err := buildConfig()
	if err != nil {
		return err
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing XML file: %s\n", input)
		fmt.Fprintf(os.Stderr, "This may take a few minutes for large files...\n\n")
	}

	p := pipeline.NewPipeline(cfg, rules)
	result, err := p.Run(input, cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	result.PrintSummary(cfg.Output.Path)
	return nil
}

// buildConfig assembles the run configuration and rule set from defaults,
// the viper config file and flags. Flags win over the config file.
func buildConfig() (*model.Config, *classify.RuleSet, error) {
	cfg := model.DefaultConfig()

	if path := viper.GetString("rules.path"); path != "" {
		cfg.Rules.Path = path
	}

	cfg.Output.ProgressEvery = progressEvery
	cfg.Output.Verbose = verbose
	cfg.Cache.Enabled = !noCache
	cfg.Input.GrantElement = grantElement
	if rulesPath != "" {
		cfg.Rules.Path = rulesPath
	}

	rules := classify.DefaultRuleSet()
	if cfg.Rules.Path != "" {
		loaded, err := classify.LoadRules(cfg.Rules.Path)
		if err != nil {
			return nil, nil, err
		}
		rules = loaded
	}

	return cfg, rules, nil
}
