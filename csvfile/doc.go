/*
Package csvfile imports and exports library catalogs as CSV files.

A catalog file starts with a header line naming the columns

    book_ID,title,author,genre,publication_year,available

in any order. Column "available" is optional and defaults to true. Rows
which do not describe a valid book are skipped and reported, but do not
stop the import.

Input files are not required to be UTF-8: the text encoding is sniffed from
the file's content (byte order marks, UTF-8 validity, falling back to
Windows-1252), and undecodable bytes are replaced. Files with suffix ".sz"
are snappy-compressed (framing format) on import and export.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package csvfile

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'shelves.csv'
func tracer() tracing.Trace {
	return tracing.Select("shelves.csv")
}

var (
	// ErrHeader signals a header line lacking a required column.
	ErrHeader = errors.New("csvfile: invalid header")
	// ErrRow signals a row which does not describe a valid book.
	ErrRow = errors.New("csvfile: invalid row")
)
