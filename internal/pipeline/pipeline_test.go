package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grantsift/grantsift/internal/classify"
	"github.com/grantsift/grantsift/internal/model"
)

const testCorpus = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE us-patent-grant SYSTEM "us-patent-grant-v49-2025-01-01.dtd" [ ]>
<us-patent-grant>
  <application-reference><doc-number>11111111</doc-number><date>20230110</date></application-reference>
  <invention-title>Learning apparatus</invention-title>
  <abstract><p>An apparatus for training models.</p></abstract>
  <classification-cpc-text>G06N 3/08</classification-cpc-text>
</us-patent-grant>
<?xml version="1.0" encoding="UTF-8"?>
<us-patent-grant>
  <application-reference><doc-number>22222222</doc-number><date>20230211</date></application-reference>
  <invention-title>Database engine</invention-title>
  <abstract><p>A transactional storage engine.</p></abstract>
  <classification-cpc-text>G06F 16/20</classification-cpc-text>
</us-patent-grant>
<us-patent-grant>
  <application-reference><doc-number>33333333</doc-number></application-reference>
  <invention-title>No abstract at all</invention-title>
  <classification-cpc-text>G06N 3/08</classification-cpc-text>
</us-patent-grant>
<us-patent-grant>
  <application-reference><doc-number>44444444</doc-number></application-reference>
  <invention-title>Bicycle frame</invention-title>
  <abstract><p>A lightweight frame.</p></abstract>
  <classification-cpc-text>B62K 19/02</classification-cpc-text>
</us-patent-grant>
`

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return rows
}

func newTestPipeline() *Pipeline {
	cfg := model.DefaultConfig()
	return NewPipeline(cfg, classify.DefaultRuleSet())
}

func TestPipeline_Run(t *testing.T) {
	input := writeCorpus(t, testCorpus)
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := newTestPipeline().Run(input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Scanned != 4 {
		t.Errorf("Scanned = %d, want 4", result.Scanned)
	}
	if result.Written != 2 || result.AI != 1 || result.Control != 1 {
		t.Errorf("Counts = %+v, want Written=2 AI=1 Control=1", result)
	}

	rows := readCSV(t, output)
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}

	if strings.Join(rows[0], ",") != strings.Join(model.CSVHeader, ",") {
		t.Errorf("Unexpected header: %v", rows[0])
	}

	// Missing-abstract and unmatched grants are dropped silently.
	for _, row := range rows[1:] {
		group := row[len(row)-1]
		if group != "AI" && group != "Control" {
			t.Errorf("Unexpected group in output: %q", group)
		}
	}

	if rows[1][0] != "11111111" || rows[1][6] != "AI" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "22222222" || rows[2][6] != "Control" {
		t.Errorf("Unexpected second row: %v", rows[2])
	}
	if rows[1][2] != "2023-01-10" {
		t.Errorf("Unexpected filing date: %q", rows[1][2])
	}
}

func TestPipeline_MissingInputCreatesNoOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.csv")

	_, err := newTestPipeline().Run(filepath.Join(dir, "absent.xml"), output)
	if err == nil {
		t.Fatal("Expected error for missing input")
	}

	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("Expected no output file after missing input")
	}
}

func TestPipeline_ParseFailureCreatesNoOutput(t *testing.T) {
	input := writeCorpus(t, "<us-patent-grant><broken></us-patent-grant>")
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := newTestPipeline().Run(input, output)
	if err == nil {
		t.Fatal("Expected error for unparseable corpus")
	}
	if result != nil {
		t.Errorf("Expected nil result, got %+v", result)
	}

	// The writer opens only after a successful parse.
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("Expected no output file after parse failure")
	}
}

func TestPipeline_MalformedRecordDoesNotAbort(t *testing.T) {
	// The middle grant lacks every known element; the later valid grant is
	// still processed and counted.
	corpus := `
<us-patent-grant>
  <application-reference><doc-number>11111111</doc-number></application-reference>
  <invention-title>Learning apparatus</invention-title>
  <abstract><p>An apparatus for training models.</p></abstract>
  <classification-cpc-text>G06N 3/08</classification-cpc-text>
</us-patent-grant>
<us-patent-grant><unrelated/></us-patent-grant>
<us-patent-grant>
  <application-reference><doc-number>22222222</doc-number></application-reference>
  <invention-title>Database engine</invention-title>
  <abstract><p>A storage engine.</p></abstract>
  <classification-cpc-text>G06F 16/20</classification-cpc-text>
</us-patent-grant>
`
	input := writeCorpus(t, corpus)
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := newTestPipeline().Run(input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Scanned != 3 || result.Written != 2 {
		t.Errorf("Counts = %+v, want Scanned=3 Written=2", result)
	}
}

func TestPipeline_NoKeptRecords(t *testing.T) {
	corpus := `
<us-patent-grant>
  <invention-title>Bicycle frame</invention-title>
  <abstract><p>A lightweight frame.</p></abstract>
  <classification-cpc-text>B62K 19/02</classification-cpc-text>
</us-patent-grant>
`
	input := writeCorpus(t, corpus)
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := newTestPipeline().Run(input, output)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Written != 0 {
		t.Errorf("Written = %d, want 0", result.Written)
	}

	// Header-only output.
	rows := readCSV(t, output)
	if len(rows) != 1 {
		t.Errorf("Expected header only, got %d rows", len(rows))
	}
}
