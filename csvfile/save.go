package csvfile

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/golang/snappy"
	"github.com/npillmayer/shelves"
)

// Lister provides the books of an export; *shelves.Catalog implements it.
type Lister interface {
	Books() []shelves.Book
}

// Save writes the books of cat to w as UTF-8 CSV, in the order Books
// returns them (title order for a catalog).
func Save(w io.Writer, cat Lister) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	books := cat.Books()
	for _, b := range books {
		err := writer.Write([]string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			string(b.Genre),
			strconv.Itoa(b.Year),
			strconv.FormatBool(b.Available),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	tracer().Infof("csv: exported %d books", len(books))
	return nil
}

// SaveFile exports cat to a file at path, snappy-compressing it if path has
// suffix ".sz".
func SaveFile(path string, cat Lister) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if !isCompressed(path) {
		return Save(f, cat)
	}
	zw := snappy.NewBufferedWriter(f)
	if err = Save(zw, cat); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
