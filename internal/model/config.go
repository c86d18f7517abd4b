package model

// Config holds the complete grantsift configuration
type Config struct {
	Input  InputConfig  `yaml:"input" json:"input"`
	Output OutputConfig `yaml:"output" json:"output"`
	Rules  RulesConfig  `yaml:"rules" json:"rules"`
	Cache  CacheConfig  `yaml:"cache" json:"cache"`
}

// InputConfig controls corpus reading
type InputConfig struct {
	// GrantElement is the tag name of the top-level patent elements
	GrantElement string `yaml:"grant_element" json:"grant_element"`
}

// OutputConfig controls the CSV sink and console reporting
type OutputConfig struct {
	Path          string `yaml:"path" json:"path"`
	ProgressEvery int    `yaml:"progress_every" json:"progress_every"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// RulesConfig points at an alternative classification rule file
type RulesConfig struct {
	// Path to a YAML rule set; empty means the built-in default rules
	Path string `yaml:"path" json:"path"`
}

// CacheConfig controls per-code rule memoization
type CacheConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			GrantElement: "us-patent-grant",
		},
		Output: OutputConfig{
			Path:          "patent_applications.csv",
			ProgressEvery: 1000,
			Verbose:       false,
		},
		Rules: RulesConfig{
			Path: "",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}
