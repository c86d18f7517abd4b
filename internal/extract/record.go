// Package extract turns raw patent-grant elements into PatentRecords.
//
// Extraction is lenient: missing elements yield empty-string defaults and
// never abort the run. An error is returned alongside the partial record so
// the caller can log it and still classify whatever was populated.
package extract

import (
	"errors"
	"fmt"

	"github.com/grantsift/grantsift/internal/corpus"
	"github.com/grantsift/grantsift/internal/model"
)

// ErrNilElement is returned when a grant element is absent entirely.
var ErrNilElement = errors.New("nil grant element")

// Record extracts a PatentRecord from one patent-grant element. The record
// is always usable; a non-nil error marks it as partially populated.
func Record(el *corpus.Node) (model.PatentRecord, error) {
	rec := model.PatentRecord{Group: model.GroupIgnore}
	if el == nil {
		return rec, ErrNilElement
	}

	if appRef := el.First("application-reference"); appRef != nil {
		if docNumber := appRef.First("doc-number"); docNumber != nil {
			rec.ApplicationNumber = docNumber.Text()
		}
		if date := appRef.First("date"); date != nil {
			rec.FilingDate = formatFilingDate(date.Text())
		}
	}

	if orgName := el.FindPath("assignees", "assignee", "addressbook", "orgname"); orgName != nil {
		rec.Assignee = orgName.Text()
	}

	if title := el.First("invention-title"); title != nil {
		rec.InventionTitle = title.Text()
	}

	if abstract := el.First("abstract"); abstract != nil {
		rec.AbstractText = abstract.Text()
	}

	for _, cpc := range el.All("classification-cpc-text") {
		if text := cpc.Text(); text != "" {
			rec.CPCCodes = append(rec.CPCCodes, text)
		}
	}

	return rec, nil
}

// formatFilingDate converts an 8-digit date to YYYY-MM-DD. Anything of a
// different length passes through raw.
func formatFilingDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	return fmt.Sprintf("%s-%s-%s", raw[:4], raw[4:6], raw[6:8])
}
