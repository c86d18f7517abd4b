package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grantsift/grantsift/internal/model"
)

// CSVWriter writes kept records to the output dataset.
type CSVWriter struct {
	file *os.File
	csv  *csv.Writer
}

// NewCSVWriter creates the output file (and its directory) and writes the
// header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	w := &CSVWriter{file: f, csv: csv.NewWriter(f)}
	if err := w.csv.Write(model.CSVHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// Write appends one record row.
func (w *CSVWriter) Write(rec *model.PatentRecord) error {
	if err := w.csv.Write(rec.CSVRow()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
