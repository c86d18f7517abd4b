package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

const twoGrantCorpus = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE us-patent-grant SYSTEM "us-patent-grant-v49-2025-01-01.dtd" [ ]>
<us-patent-grant>
  <invention-title>First invention</invention-title>
</us-patent-grant>
<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE us-patent-grant SYSTEM "us-patent-grant-v49-2025-01-01.dtd" [ ]>
<us-patent-grant>
  <invention-title>Second invention</invention-title>
</us-patent-grant>
`

func TestParse_ConcatenatedDocuments(t *testing.T) {
	doc, err := Parse(twoGrantCorpus)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	grants := doc.Elements("us-patent-grant")
	if len(grants) != 2 {
		t.Fatalf("Expected 2 grants, got %d", len(grants))
	}

	first := grants[0].First("invention-title")
	if first == nil || first.Text() != "First invention" {
		t.Errorf("Unexpected first title: %v", first)
	}
	second := grants[1].First("invention-title")
	if second == nil || second.Text() != "Second invention" {
		t.Errorf("Unexpected second title: %v", second)
	}
}

func TestParse_UnparseableCorpusIsFatal(t *testing.T) {
	if _, err := Parse("<us-patent-grant><broken></us-patent-grant>"); err == nil {
		t.Error("Expected parse error for malformed corpus")
	}
}

func TestParse_HTMLEntities(t *testing.T) {
	doc, err := Parse("<us-patent-grant><abstract>Signal&nbsp;to&ndash;noise</abstract></us-patent-grant>")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	grants := doc.Elements("us-patent-grant")
	if len(grants) != 1 {
		t.Fatalf("Expected 1 grant, got %d", len(grants))
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xml")
	if err := os.WriteFile(path, []byte(twoGrantCorpus), 0644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := len(doc.Elements("us-patent-grant")); got != 2 {
		t.Errorf("Expected 2 grants, got %d", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.xml")); err == nil {
		t.Error("Expected error for missing corpus file")
	}
}

func TestElements_TopLevelOnly(t *testing.T) {
	doc, err := Parse(`
<us-patent-grant>
  <related><us-patent-grant><invention-title>Nested</invention-title></us-patent-grant></related>
</us-patent-grant>
`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := len(doc.Elements("us-patent-grant")); got != 1 {
		t.Errorf("Expected only the top-level grant, got %d", got)
	}
}
