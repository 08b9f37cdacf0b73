/*
Package console prints catalog listings as fixed-width tables to terminals.

Column widths are measured in “en”s, i.e. fixed width positions, respecting
the East Asian Width property of characters (Unicode UAX#11): wide
characters such as CJK ideographs occupy two positions. Whether ambiguous
characters are narrow or wide depends on the user's environment.

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package console

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shelves"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// tracer traces with key 'shelves.console'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.console")
}

var setupGraphemes sync.Once

// Table is a type for outputting book listings to a console with a fixed
// width font.
type Table struct {
	Context   *uax11.Context // East Asian Width context; nil means Latin
	LineWidth int            // maximum line length in ens; 0 means unlimited
	Colors    bool           // colorize header and availability
	header    *color.Color
	available *color.Color
	borrowed  *color.Color
}

// MinColumnWidth is the narrowest a shrinking column gets.
const MinColumnWidth = 8

const separator = "  "

// NewTable creates a table formatter. Colors are used unless they are
// disabled for the process (see package fatih/color).
func NewTable(ctx *uax11.Context, linewidth int) *Table {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	return &Table{
		Context:   ctx,
		LineWidth: linewidth,
		Colors:    !color.NoColor,
		header:    color.New(color.Bold, color.Underline),
		available: color.New(color.FgGreen),
		borrowed:  color.New(color.FgRed),
	}
}

// ForTerminal creates a table formatter configured from the current
// terminal's properties and the user's environment.
func ForTerminal() *Table {
	return NewTable(uax11.ContextFromEnvironment(), LineWidthFromTerminal())
}

// LineWidthFromTerminal is a simple helper to find a line width. It checks
// whether stdout is a terminal, and if so it reads the terminal's width.
// Otherwise lines are not limited.
func LineWidthFromTerminal() int {
	if !term.IsTerminal(1) {
		return 0
	}
	w, _, err := term.GetSize(1)
	if err != nil {
		return 80
	}
	if w < 40 {
		w = 40
	}
	tracer().P("format", "console").Debugf("setting line length to %d en", w)
	return w
}

// Width returns the display width of s in ens.
//
// Printable ASCII always occupies one en. uax11 measures ASCII digits as
// wide, so only runs of other characters are handed to it.
func (tb *Table) Width(s string) int {
	width, start := 0, -1
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 0x20 && c < 0x7f {
			if start >= 0 {
				width += tb.uaxWidth(s[start:i])
				start = -1
			}
			width++
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		width += tb.uaxWidth(s[start:])
	}
	return width
}

func (tb *Table) uaxWidth(s string) int {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return uax11.StringWidth(grapheme.StringFromString(s), tb.Context)
}

// Write outputs books as a table, one line per book, preceded by a header
// line.
func (tb *Table) Write(w io.Writer, books []shelves.Book) error {
	rows := make([][]string, 0, len(books)+1)
	rows = append(rows, []string{"ID", "Title", "Author", "Genre", "Year", "Status"})
	for _, b := range books {
		status := "available"
		if !b.Available {
			status = "borrowed"
		}
		rows = append(rows, []string{
			strconv.Itoa(b.ID), b.Title, b.Author, string(b.Genre), strconv.Itoa(b.Year), status,
		})
	}
	widths := tb.columnWidths(rows)
	tb.shrink(widths, 1, 2) // title first, then author
	for i, row := range rows {
		var line strings.Builder
		for col, cell := range row {
			if col > 0 {
				line.WriteString(separator)
			}
			text := tb.pad(tb.truncate(cell, widths[col]), widths[col])
			if col == len(row)-1 {
				text = strings.TrimRight(text, " ")
			}
			switch {
			case !tb.Colors:
				line.WriteString(text)
			case i == 0:
				line.WriteString(tb.header.Sprint(text))
			case col == len(row)-1 && books[i-1].Available:
				line.WriteString(tb.available.Sprint(text))
			case col == len(row)-1:
				line.WriteString(tb.borrowed.Sprint(text))
			default:
				line.WriteString(text)
			}
		}
		line.WriteByte('\n')
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteStats outputs genre statistics as a two-column table.
func (tb *Table) WriteStats(w io.Writer, stats []shelves.GenreCount) error {
	width := 0
	for _, gc := range stats {
		if n := tb.Width(string(gc.Genre)); n > width {
			width = n
		}
	}
	for _, gc := range stats {
		line := tb.pad(string(gc.Genre), width) + separator + strconv.Itoa(gc.Count) + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (tb *Table) columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for col, cell := range row {
			if n := tb.Width(cell); n > widths[col] {
				widths[col] = n
			}
		}
	}
	return widths
}

// shrink narrows the given columns, in order, until a line fits into
// LineWidth or all of them are at MinColumnWidth.
func (tb *Table) shrink(widths []int, columns ...int) {
	if tb.LineWidth <= 0 {
		return
	}
	total := len(separator) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	for _, col := range columns {
		excess := total - tb.LineWidth
		if excess <= 0 {
			return
		}
		room := widths[col] - MinColumnWidth
		if room <= 0 {
			continue
		}
		if room > excess {
			room = excess
		}
		widths[col] -= room
		total -= room
	}
}

// truncate shortens s to at most width ens, marking a cut with an ellipsis.
func (tb *Table) truncate(s string, width int) string {
	if tb.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && tb.Width(string(runes))+tb.Width("…") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (tb *Table) pad(s string, width int) string {
	if n := width - tb.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
