package model

import "strings"

// Group is the treatment group assigned to a patent record
type Group string

const (
	GroupAI      Group = "AI"      // AI-treatment group
	GroupControl Group = "Control" // Non-AI software control group
	GroupIgnore  Group = "Ignore"  // Dropped from the output dataset
)

// PatentRecord represents one patent grant extracted from the corpus
type PatentRecord struct {
	ApplicationNumber string   `json:"application_number"`
	Assignee          string   `json:"assignee,omitempty"`
	FilingDate        string   `json:"filing_date,omitempty"` // YYYY-MM-DD, or raw when not 8 digits
	InventionTitle    string   `json:"invention_title,omitempty"`
	AbstractText      string   `json:"abstract_text,omitempty"`
	CPCCodes          []string `json:"cpc_codes,omitempty"` // source order preserved
	Group             Group    `json:"group"`
}

// CSVHeader is the fixed column layout of the output dataset.
// Downstream analysis scripts key on these exact names.
var CSVHeader = []string{
	"applicationNumber",
	"assignee",
	"filingDate",
	"inventionTitle",
	"abstractText",
	"cpcClassifications",
	"treatmentGroup",
}

// CSVRow renders the record in CSVHeader column order.
func (r *PatentRecord) CSVRow() []string {
	return []string{
		r.ApplicationNumber,
		r.Assignee,
		r.FilingDate,
		r.InventionTitle,
		r.AbstractText,
		strings.Join(r.CPCCodes, ", "),
		string(r.Group),
	}
}

// Kept reports whether the record belongs in the output dataset.
func (r *PatentRecord) Kept() bool {
	return r.Group == GroupAI || r.Group == GroupControl
}
