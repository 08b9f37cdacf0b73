package csvfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shelves"
)

func newCatalog(t *testing.T) *shelves.Catalog {
	t.Helper()
	c, err := shelves.NewCatalog(2)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

const sample = `book_ID,title,author,genre,publication_year,available
1,Dune,Frank Herbert,Science,1965,true
2,Emma,Jane Austen,romance,1815,False
3,"Pride and Prejudice",Jane Austen,Romance,1813
4,,Nobody,Fiction,2000,true
five,Beloved,Toni Morrison,Fiction,1987,true
6,SPQR,Mary Beard,Politics,2015,true
1,Duplicate,Some One,Mystery,1999,true
7,The Hobbit,J. R. R. Tolkien,Fantasy,1937,
`

func TestLoadSkipsInvalidRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shelves.csv")
	defer teardown()
	//
	c := newCatalog(t)
	report, err := Load(strings.NewReader(sample), c)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if report.Rows != 8 || report.Added != 4 || len(report.Skipped) != 4 {
		t.Fatalf("unexpected report: %+v", report)
	}
	wantLines := []int{5, 6, 7, 8}
	for i, skipped := range report.Skipped {
		if skipped.Line != wantLines[i] {
			t.Errorf("expected skipped row at line %d, got %d (%v)", wantLines[i], skipped.Line, skipped.Err)
		}
	}
	if !errors.Is(report.Skipped[0], ErrRow) {
		t.Errorf("expected ErrRow for empty title, got %v", report.Skipped[0].Err)
	}
	if !errors.Is(report.Skipped[3], shelves.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID for repeated ID, got %v", report.Skipped[3].Err)
	}
	if b, ok := c.ByID(2); !ok || b.Available || b.Genre != shelves.Romance {
		t.Errorf("unexpected book 2: %v/%v", b, ok)
	}
	if b, _ := c.ByID(3); !b.Available {
		t.Errorf("missing availability should default to true")
	}
	if b, _ := c.ByID(7); !b.Available {
		t.Errorf("empty availability should default to true")
	}
}

func TestLoadRequiresHeader(t *testing.T) {
	c := newCatalog(t)
	_, err := Load(strings.NewReader("id,title\n1,Dune\n"), c)
	if !errors.Is(err, ErrHeader) {
		t.Fatalf("expected ErrHeader, got %v", err)
	}
	_, err = Load(strings.NewReader(""), c)
	if !errors.Is(err, ErrHeader) {
		t.Fatalf("expected ErrHeader for empty input, got %v", err)
	}
}

func TestLoadColumnOrderIsFree(t *testing.T) {
	c := newCatalog(t)
	input := "title,publication_year,genre,author,book_ID\nEmma,1815,Romance,Jane Austen,12\n"
	if _, err := Load(strings.NewReader(input), c); err != nil {
		t.Fatal(err)
	}
	if b, ok := c.ByTitle("Emma"); !ok || b.ID != 12 || b.Author != "Jane Austen" {
		t.Fatalf("unexpected book %v/%v", b, ok)
	}
}

func TestLoadDetectsEncoding(t *testing.T) {
	latin1 := "book_ID,title,author,genre,publication_year\n" +
		"5,Jane Eyre,Charlotte Bront\xeb,Romance,1847\n"
	c := newCatalog(t)
	report, err := Load(strings.NewReader(latin1), c)
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := c.ByID(5); b.Author != "Charlotte Brontë" {
		t.Fatalf("expected Windows-1252 decoding, author is %q (encoding %s)", b.Author, report.Encoding)
	}
	//
	utf8BOM := "\xef\xbb\xbfbook_ID,title,author,genre,publication_year\n" +
		"5,Jane Eyre,Charlotte Brontë,Romance,1847\n"
	c = newCatalog(t)
	report, err = Load(strings.NewReader(utf8BOM), c)
	if err != nil {
		t.Fatalf("Load with BOM failed: %v", err)
	}
	if report.Encoding != "utf-8" {
		t.Errorf("expected utf-8 to be detected, got %s", report.Encoding)
	}
	if b, _ := c.ByID(5); b.Author != "Charlotte Brontë" {
		t.Fatalf("unexpected author %q", b.Author)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := newCatalog(t)
	if _, err := Load(strings.NewReader(sample), c); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, c); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != strings.Join(Header, ",") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,Dune,") {
		t.Fatalf("expected export in title order, first row is %q", lines[1])
	}
	other := newCatalog(t)
	report, err := Load(&buf, other)
	if err != nil || len(report.Skipped) != 0 {
		t.Fatalf("reloading export failed: %v %+v", err, report)
	}
	want, got := c.Books(), other.Books()
	if len(want) != len(got) {
		t.Fatalf("round trip lost books: %d vs %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("round trip changed book %v to %v", want[i], got[i])
		}
	}
}

func TestFilesWithCompression(t *testing.T) {
	c := newCatalog(t)
	if _, err := Load(strings.NewReader(sample), c); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"library.csv", "library.csv.sz"} {
		path := filepath.Join(dir, name)
		if err := SaveFile(path, c); err != nil {
			t.Fatalf("SaveFile(%s) failed: %v", name, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if compressed := !bytes.HasPrefix(raw, []byte("book_ID")); compressed != isCompressed(path) {
			t.Fatalf("%s: unexpected file format", name)
		}
		other := newCatalog(t)
		other.Add(shelves.Book{ID: 99, Title: "Stale", Author: "X", Genre: shelves.Fiction, Year: 2000})
		report, err := LoadFile(path, other)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", name, err)
		}
		if report.Added != c.Len() || other.Len() != c.Len() {
			t.Fatalf("%s: expected %d books, loaded %d", name, c.Len(), other.Len())
		}
		if _, ok := other.ByID(99); ok {
			t.Fatalf("%s: LoadFile should reset the catalog", name)
		}
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.csv"), c); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if c.Len() == 0 {
		t.Fatalf("failing LoadFile must not reset the catalog")
	}
}

func TestLoadRejectsInvalidAvailability(t *testing.T) {
	c := newCatalog(t)
	input := "book_ID,title,author,genre,publication_year,available\n1,Dune,Frank Herbert,Science,1965,maybe\n"
	report, err := Load(strings.NewReader(input), c)
	if err != nil {
		t.Fatal(err)
	}
	if report.Added != 0 || len(report.Skipped) != 1 || !errors.Is(report.Skipped[0], ErrRow) {
		t.Errorf("expected the row to be skipped with ErrRow, have %+v", report)
	}
}
