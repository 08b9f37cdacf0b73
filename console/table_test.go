package console

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shelves"
	"github.com/npillmayer/uax/uax11"
)

var books = []shelves.Book{
	{ID: 7, Title: "三体", Author: "Liu Cixin", Genre: shelves.Science, Year: 2008, Available: true},
	{ID: 12, Title: "The Name of the Rose", Author: "Umberto Eco", Genre: shelves.Mystery, Year: 1980, Available: false},
}

func plainTable(linewidth int) *Table {
	tb := NewTable(uax11.LatinContext, linewidth)
	tb.Colors = false
	return tb
}

func TestWidthOfWideCharacters(t *testing.T) {
	tb := plainTable(0)
	if w := tb.Width("三体"); w != 4 {
		t.Errorf("expected width 4 for two wide characters, got %d", w)
	}
	for s, want := range map[string]int{
		"Dune":       4,
		"2008":       4,
		"7":          1,
		"a1":         2,
		"Liu 三体 7": 10,
		"":           0,
	} {
		if w := tb.Width(s); w != want {
			t.Errorf("expected width %d for %q, got %d", want, s, w)
		}
	}
}

func TestTableColumnsAlign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shelves.console")
	defer teardown()
	//
	tb := plainTable(0)
	var out strings.Builder
	if err := tb.Write(&out, books); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	// the author column starts at the same display position in every line
	pos := -1
	for i, line := range lines {
		author := "Author"
		if i > 0 {
			author = books[i-1].Author
		}
		idx := strings.Index(line, author)
		if idx < 0 {
			t.Fatalf("line %q lacks %q", line, author)
		}
		if p := tb.Width(line[:idx]); pos >= 0 && p != pos {
			t.Fatalf("author column misaligned in line %d: %d vs %d\n%s", i, p, pos, out.String())
		} else {
			pos = p
		}
	}
	if !strings.HasSuffix(lines[2], "borrowed") {
		t.Errorf("expected status 'borrowed' at end of %q", lines[2])
	}
}

func TestTableShrinksToLineWidth(t *testing.T) {
	tb := plainTable(50)
	var out strings.Builder
	if err := tb.Write(&out, books); err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		if w := tb.Width(line); w > 50 {
			t.Errorf("line exceeds 50 ens (%d): %q", w, line)
		}
	}
	if !strings.Contains(out.String(), "…") {
		t.Errorf("expected a truncated title:\n%s", out.String())
	}
}

func TestWriteStats(t *testing.T) {
	tb := plainTable(0)
	var out strings.Builder
	stats := []shelves.GenreCount{{Genre: shelves.NonFiction, Count: 3}, {Genre: shelves.Science, Count: 1}}
	if err := tb.WriteStats(&out, stats); err != nil {
		t.Fatal(err)
	}
	want := "Non-Fiction  3\nScience      1\n"
	if out.String() != want {
		t.Errorf("unexpected stats output %q", out.String())
	}
}
