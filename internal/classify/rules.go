package classify

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// RuleSet holds the ordered classification rule tables. The five prefix
// lists and the keyword list are matched in the fixed order implemented by
// Engine.Classify; the set itself is immutable for the lifetime of a run.
type RuleSet struct {
	// AIKeywords confirm AI-adjacent codes (substring match over title+abstract)
	AIKeywords []string `yaml:"ai_keywords"`

	// HardControlPrefixes force Control, overriding every later rule
	HardControlPrefixes []string `yaml:"hard_control_prefixes"`

	// ExclusionPrefixes drop unrelated technical fields
	ExclusionPrefixes []string `yaml:"exclusion_prefixes"`

	// AICorePrefixes are high-confidence AI classes, no keyword needed
	AICorePrefixes []string `yaml:"ai_core_prefixes"`

	// AIAdjacentPrefixes count as AI only together with a keyword
	AIAdjacentPrefixes []string `yaml:"ai_adjacent_prefixes"`

	// SoftwareControlPrefixes form the non-AI software control group
	SoftwareControlPrefixes []string `yaml:"software_control_prefixes"`
}

// DefaultRuleSet returns the built-in rule tables, already normalized.
func DefaultRuleSet() *RuleSet {
	rs := &RuleSet{
		AIKeywords: []string{
			"machine learning", "artificial intelligence", "neural network",
			"deep learning", "computer vision", "decision tree",
			"random forest", "support vector", "bayesian",
		},
		HardControlPrefixes: []string{"G06F8", "G06F40"},
		ExclusionPrefixes:   []string{"A", "C"},
		AICorePrefixes:      []string{"G06N"},
		AIAdjacentPrefixes: []string{
			"G06K", "G06T", "G06V", "G05B", "G05D",
			"G10L", "B60R", "G06F", "H04L",
		},
		SoftwareControlPrefixes: []string{
			"G06F9/", "G06F11/", "G06F12/", "G06F15/", "G06F16/",
			"G06F17/", "G06F19/", "G06F21/", "G06Q10/", "G06Q20/",
			"G06Q30/", "G06Q40/", "G06Q50/", "H04L9/", "H04L12/",
			"H04L29/", "H04N21/", "H04W4/", "G06F7/", "H04L63/",
			"H04L67/", "G06F38/",
		},
	}
	rs.normalize()
	return rs
}

// LoadRules reads an alternative rule set from a YAML file.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	rs.normalize()
	return &rs, nil
}

// normalize prepares the tables for matching: prefixes are uppercased with
// all whitespace removed, keywords are lowercased. Empty entries are dropped.
func (rs *RuleSet) normalize() {
	rs.HardControlPrefixes = normalizePrefixes(rs.HardControlPrefixes)
	rs.ExclusionPrefixes = normalizePrefixes(rs.ExclusionPrefixes)
	rs.AICorePrefixes = normalizePrefixes(rs.AICorePrefixes)
	rs.AIAdjacentPrefixes = normalizePrefixes(rs.AIAdjacentPrefixes)
	rs.SoftwareControlPrefixes = normalizePrefixes(rs.SoftwareControlPrefixes)

	keywords := rs.AIKeywords[:0]
	for _, kw := range rs.AIKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	rs.AIKeywords = keywords
}

func normalizePrefixes(prefixes []string) []string {
	out := prefixes[:0]
	for _, p := range prefixes {
		p = NormalizeCode(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeCode uppercases a classification code and removes all whitespace,
// so "g06n 3/08" and "G06N3/08" compare equal.
func NormalizeCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// hasAnyPrefix reports whether the normalized code starts with any prefix
// in the set.
func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// containsAnyKeyword reports whether the lowercased text blob contains any
// keyword as a substring. No word-boundary enforcement.
func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
