package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/npillmayer/shelves"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names of a catalog file, in export order.
const (
	ColID        = "book_ID"
	ColTitle     = "title"
	ColAuthor    = "author"
	ColGenre     = "genre"
	ColYear      = "publication_year"
	ColAvailable = "available"
)

// Header is the header line written on export.
var Header = []string{ColID, ColTitle, ColAuthor, ColGenre, ColYear, ColAvailable}

var requiredColumns = Header[:5]

// CompressedSuffix marks snappy-compressed catalog files.
const CompressedSuffix = ".sz"

// Adder receives the books of an import; *shelves.Catalog implements it.
type Adder interface {
	Add(shelves.Book) error
}

// Catalog is the target of a file import; *shelves.Catalog implements it.
type Catalog interface {
	Adder
	Reset()
}

// RowError describes a skipped row.
type RowError struct {
	Line int // line number in the decoded input, starting at 1
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Report summarizes an import.
type Report struct {
	Encoding string     // name of the detected text encoding
	Rows     int        // number of data rows read
	Added    int        // number of books added
	Skipped  []RowError // rows not imported
}

// Load reads catalog rows from r and adds a book for each valid row to cat.
// It returns an error only if the input cannot be read at all or its header
// is unusable; invalid rows are listed in the report.
func Load(r io.Reader, cat Adder) (Report, error) {
	var report Report
	content, err := io.ReadAll(r)
	if err != nil {
		return report, err
	}
	enc, name, _ := charset.DetermineEncoding(content, "text/csv")
	report.Encoding = name
	tracer().Debugf("csv: decoding input as %s", name)
	decoded := transform.NewReader(bytes.NewReader(content), unicode.BOMOverride(enc.NewDecoder()))
	//
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	head, err := reader.Read()
	if err == io.EOF {
		return report, fmt.Errorf("%w: input is empty", ErrHeader)
	} else if err != nil {
		return report, err
	}
	columns, err := indexColumns(head)
	if err != nil {
		return report, err
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			report.Rows++
			report.skip(perr.Line, fmt.Errorf("%w: %v", ErrRow, perr.Err))
			continue
		} else if err != nil {
			return report, err
		}
		report.Rows++
		line, _ := reader.FieldPos(0)
		book, err := columns.book(row)
		if err == nil {
			err = cat.Add(book)
		}
		if err != nil {
			report.skip(line, err)
			continue
		}
		report.Added++
	}
	tracer().Infof("csv: %d rows read, %d books added, %d rows skipped",
		report.Rows, report.Added, len(report.Skipped))
	return report, nil
}

func (report *Report) skip(line int, err error) {
	tracer().Errorf("csv: skipping invalid row at line %d: %v", line, err)
	report.Skipped = append(report.Skipped, RowError{Line: line, Err: err})
}

// LoadFile resets cat and imports the catalog file at path into it.
// Files with suffix ".sz" are decompressed on the fly.
func LoadFile(path string, cat Catalog) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()
	var r io.Reader = f
	if isCompressed(path) {
		r = snappy.NewReader(f)
	}
	cat.Reset()
	return Load(r, cat)
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedSuffix)
}

// --- Row parsing -----------------------------------------------------------

// columnIndex maps column names to field positions.
type columnIndex map[string]int

func indexColumns(head []string) (columnIndex, error) {
	columns := make(columnIndex, len(head))
	for i, name := range head {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrHeader, strings.Join(missing, ", "))
	}
	return columns, nil
}

// field returns the trimmed value of column name in row, and false if the
// row has no such column.
func (columns columnIndex) field(row []string, name string) (string, bool) {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func (columns columnIndex) book(row []string) (shelves.Book, error) {
	var b shelves.Book
	var missing []string
	for _, name := range requiredColumns {
		if v, _ := columns.field(row, name); v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return b, fmt.Errorf("%w: missing required fields %s", ErrRow, strings.Join(missing, ", "))
	}
	var err error
	id, _ := columns.field(row, ColID)
	if b.ID, err = strconv.Atoi(id); err != nil {
		return b, fmt.Errorf("%w: book ID %q is not a number", ErrRow, id)
	}
	year, _ := columns.field(row, ColYear)
	if b.Year, err = strconv.Atoi(year); err != nil {
		return b, fmt.Errorf("%w: publication year %q is not a number", ErrRow, year)
	}
	genre, _ := columns.field(row, ColGenre)
	if b.Genre, err = shelves.ParseGenre(genre); err != nil {
		return b, fmt.Errorf("%w: %v", ErrRow, err)
	}
	b.Title, _ = columns.field(row, ColTitle)
	b.Author, _ = columns.field(row, ColAuthor)
	b.Available = true
	if avail, ok := columns.field(row, ColAvailable); ok && avail != "" {
		if b.Available, err = strconv.ParseBool(avail); err != nil {
			return b, fmt.Errorf("%w: availability %q is not a boolean", ErrRow, avail)
		}
	}
	return b, nil
}
