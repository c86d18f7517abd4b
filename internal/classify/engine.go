package classify

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/grantsift/grantsift/internal/model"
)

// ruleMask marks which rule tables a single normalized code matches.
type ruleMask uint8

const (
	maskHardControl ruleMask = 1 << iota
	maskExclusion
	maskAICore
	maskAIAdjacent
	maskSoftwareControl
)

// Engine classifies patent records against an injected RuleSet. It is a
// pure function of its inputs: identical (title, abstract, codes) always
// yield the same Group.
type Engine struct {
	rules *RuleSet
	codes *gocache.Cache // normalized code -> ruleMask; nil when disabled
}

// NewEngine creates an engine over the given rule set. With memoize set,
// per-code rule membership is cached; CPC codes repeat heavily across a
// weekly grant file, and membership depends only on the immutable rule set.
func NewEngine(rules *RuleSet, memoize bool) *Engine {
	e := &Engine{rules: rules}
	if memoize {
		e.codes = gocache.New(gocache.NoExpiration, 0)
	}
	return e
}

// Classify assigns a treatment group. Rules are evaluated in fixed order
// and the first match wins:
//
//  1. empty or whitespace-only abstract  -> Ignore (data-quality gate)
//  2. any code in hard-control prefixes  -> Control (overrides exclusion)
//  3. any code in exclusion prefixes     -> Ignore
//  4. any code in AI-core prefixes       -> AI
//  5. any code in AI-adjacent prefixes
//     AND an AI keyword in title+abstract -> AI
//  6. any code in software prefixes      -> Control
//  7. otherwise                          -> Ignore
//
// The hard-control check deliberately runs before exclusion so that a
// hard-control code rescues an otherwise excluded record.
func (e *Engine) Classify(title, abstract string, codes []string) model.Group {
	if strings.TrimSpace(abstract) == "" {
		return model.GroupIgnore
	}

	var mask ruleMask
	for _, entry := range codes {
		// Entries may themselves be comma-joined lists.
		for _, raw := range strings.Split(entry, ",") {
			code := NormalizeCode(raw)
			if code == "" {
				continue
			}
			mask |= e.codeMask(code)
		}
	}

	switch {
	case mask&maskHardControl != 0:
		return model.GroupControl
	case mask&maskExclusion != 0:
		return model.GroupIgnore
	case mask&maskAICore != 0:
		return model.GroupAI
	case mask&maskAIAdjacent != 0 && e.hasKeyword(title, abstract):
		return model.GroupAI
	case mask&maskSoftwareControl != 0:
		return model.GroupControl
	default:
		return model.GroupIgnore
	}
}

func (e *Engine) hasKeyword(title, abstract string) bool {
	text := strings.ToLower(title + " " + abstract)
	return containsAnyKeyword(text, e.rules.AIKeywords)
}

// codeMask computes (or recalls) which rule tables a normalized code matches.
func (e *Engine) codeMask(code string) ruleMask {
	if e.codes != nil {
		if cached, found := e.codes.Get(code); found {
			return cached.(ruleMask)
		}
	}

	var mask ruleMask
	if hasAnyPrefix(code, e.rules.HardControlPrefixes) {
		mask |= maskHardControl
	}
	if hasAnyPrefix(code, e.rules.ExclusionPrefixes) {
		mask |= maskExclusion
	}
	if hasAnyPrefix(code, e.rules.AICorePrefixes) {
		mask |= maskAICore
	}
	if hasAnyPrefix(code, e.rules.AIAdjacentPrefixes) {
		mask |= maskAIAdjacent
	}
	if hasAnyPrefix(code, e.rules.SoftwareControlPrefixes) {
		mask |= maskSoftwareControl
	}

	if e.codes != nil {
		e.codes.Set(code, mask, gocache.NoExpiration)
	}
	return mask
}
