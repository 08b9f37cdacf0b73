/*
Package shelves is an in-memory library catalog.

Books are indexed twice: by title in a B-tree (package btree), which yields
the catalog's sorted listings, and by numeric ID in a map. The catalog keeps
simple genre statistics and a table of users with their borrow history and
genre preferences, which package recommend uses to suggest books.

Catalog

A Catalog is safe for concurrent use. All mutating operations are serialized
by a single mutex, which also guards the title tree, as the tree itself is
not synchronized. Changes to the catalog are broadcast to subscribers as
Event values:

    events, _ := catalog.Subscribe(ctx, 16)
    go func() {
        for msg := range events {
            ev := msg.(shelves.Event)
            …
        }
    }()

Titles

Titles are compared byte-wise and case-sensitive. Different books may share
a title; lookups by title always find the earliest one added.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package shelves

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shelves.catalog'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.catalog")
}

// CatalogError is an error type for the shelves module
type CatalogError string

func (e CatalogError) Error() string {
	return string(e)
}

// ErrDuplicateID is flagged when a book is added with an ID already present
// in the catalog.
const ErrDuplicateID = CatalogError("duplicate book ID")

// ErrInvalidBook is flagged for books failing validation.
const ErrInvalidBook = CatalogError("invalid book")

// ErrNotFound is flagged whenever a book ID is not present in the catalog.
const ErrNotFound = CatalogError("book not found")

// ErrUnavailable is flagged when borrowing a book which is already borrowed.
const ErrUnavailable = CatalogError("book is already borrowed")

// ErrNotBorrowed is flagged when returning a book which is not borrowed.
const ErrNotBorrowed = CatalogError("book is not borrowed")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = CatalogError("illegal arguments")
