package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grantsift/grantsift/internal/classify"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and export classification rule sets",
	Long: `Inspect the built-in classification rule set or export it as a YAML
file to use as a starting point for a customized rule set.

A rule set holds five ordered CPC prefix lists (hard-control, exclusion,
AI-core, AI-adjacent, software-control) and the AI keyword list. Pass a
customized file to 'parse' or 'batch' with --rules.`,
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the built-in rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		yamlData, err := yaml.Marshal(classify.DefaultRuleSet())
		if err != nil {
			return fmt.Errorf("error marshaling rules: %w", err)
		}
		fmt.Println(string(yamlData))
		return nil
	},
}

var rulesInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the built-in rule set to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("rules file already exists: %s", path)
		}

		yamlData, err := yaml.Marshal(classify.DefaultRuleSet())
		if err != nil {
			return fmt.Errorf("error marshaling rules: %w", err)
		}

		header := "# Grantsift classification rule set\n" +
			"#\n" +
			"# Prefixes are matched against normalized CPC codes (uppercase,\n" +
			"# whitespace removed). Keywords are matched as case-insensitive\n" +
			"# substrings of the combined title and abstract.\n\n"

		if err := os.WriteFile(path, append([]byte(header), yamlData...), 0644); err != nil {
			return fmt.Errorf("error writing rules: %w", err)
		}

		fmt.Printf("✓ Wrote rule set: %s\n", path)
		fmt.Printf("\nTo classify with it:\n")
		fmt.Printf("  grantsift parse <xml-file> --rules %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
}
