package pipeline

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/grantsift/grantsift/internal/classify"
	"github.com/grantsift/grantsift/internal/corpus"
	"github.com/grantsift/grantsift/internal/extract"
	"github.com/grantsift/grantsift/internal/model"
)

// counts prints comma-grouped integers for progress and summary lines.
var counts = message.NewPrinter(language.English)

// Pipeline orchestrates the complete corpus run: load, extract, classify,
// write. Processing is strictly sequential; each record runs to completion
// before the next begins.
type Pipeline struct {
	engine *classify.Engine
	cfg    *model.Config
}

// NewPipeline creates a pipeline over the given configuration and rule set.
func NewPipeline(cfg *model.Config, rules *classify.RuleSet) *Pipeline {
	return &Pipeline{
		engine: classify.NewEngine(rules, cfg.Cache.Enabled),
		cfg:    cfg,
	}
}

// Result carries end-of-run counters.
type Result struct {
	Scanned int // grant elements seen
	Written int // rows written (AI + Control)
	AI      int
	Control int
	Failed  int // records with extraction errors (still classified)
}

// Run processes one corpus file into one CSV. A missing input or an
// unparseable corpus is fatal and returns before the output file is
// created; per-record extraction errors are logged and the run continues.
func (p *Pipeline) Run(inputPath, outputPath string) (*Result, error) {
	doc, err := corpus.Load(inputPath)
	if err != nil {
		return nil, err
	}

	writer, err := NewCSVWriter(outputPath)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	scanned := rate.Sometimes{Interval: 2 * time.Second}

	for _, el := range doc.Elements(p.cfg.Input.GrantElement) {
		res.Scanned++
		if p.cfg.Output.Verbose {
			scanned.Do(func() {
				counts.Fprintf(os.Stderr, "Scanned %d grant elements...\n", res.Scanned)
			})
		}

		rec, err := extract.Record(el)
		if err != nil {
			res.Failed++
			fmt.Fprintf(os.Stderr, "Error extracting patent data: %v\n", err)
		}

		rec.Group = p.engine.Classify(rec.InventionTitle, rec.AbstractText, rec.CPCCodes)
		if !rec.Kept() {
			continue
		}

		if err := writer.Write(&rec); err != nil {
			_ = writer.Close()
			return res, err
		}

		res.Written++
		if rec.Group == model.GroupAI {
			res.AI++
		} else {
			res.Control++
		}

		if p.cfg.Output.ProgressEvery > 0 && res.Written%p.cfg.Output.ProgressEvery == 0 {
			counts.Fprintf(os.Stderr, "Written %d relevant patents to CSV...\n", res.Written)
		}
	}

	if err := writer.Close(); err != nil {
		return res, err
	}
	return res, nil
}

// PrintSummary writes the end-of-run report to stderr.
func (r *Result) PrintSummary(outputPath string) {
	fmt.Fprintf(os.Stderr, "\nParsing complete!\n")
	if r.Written > 0 {
		counts.Fprintf(os.Stderr, "Total relevant patents written to CSV: %d\n", r.Written)
		counts.Fprintf(os.Stderr, "  - AI-related patents (treatment): %d (%.1f%%)\n",
			r.AI, float64(r.AI)/float64(r.Written)*100)
		counts.Fprintf(os.Stderr, "  - Non-AI software patents (control): %d (%.1f%%)\n",
			r.Control, float64(r.Control)/float64(r.Written)*100)
	} else {
		fmt.Fprintln(os.Stderr, "No patents classified as 'AI' or 'Control' were found to write to the CSV.")
	}
	fmt.Fprintf(os.Stderr, "Data saved to: %s\n", outputPath)
}
