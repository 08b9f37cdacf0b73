/*
Package html renders catalog listings as HTML.

Listings are built as trees of golang.org/x/net/html nodes, which clients may
embed into documents of their own, or written as a complete page with Render.
*/
package html

import (
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shelves"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'shelves.html'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.html")
}

// Columns are the column headings of a listing.
var Columns = []string{"ID", "Title", "Author", "Genre", "Year", "Status"}

// Status texts for the availability of a book.
const (
	StatusAvailable = "Available"
	StatusBorrowed  = "Borrowed"
)

// Status returns the status text for a book.
func Status(b shelves.Book) string {
	if b.Available {
		return StatusAvailable
	}
	return StatusBorrowed
}

// Listing creates a table element with one row per book, in the order given.
// Rows of borrowed books carry class "borrowed".
func Listing(books []shelves.Book) *html.Node {
	table := element(atom.Table, "class", "catalog")
	thead := element(atom.Thead)
	table.AppendChild(thead)
	thead.AppendChild(row(atom.Th, Columns))
	tbody := element(atom.Tbody)
	table.AppendChild(tbody)
	for _, b := range books {
		tr := row(atom.Td, []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			string(b.Genre),
			strconv.Itoa(b.Year),
			Status(b),
		})
		if !b.Available {
			tr.Attr = append(tr.Attr, html.Attribute{Key: "class", Val: "borrowed"})
		}
		tbody.AppendChild(tr)
	}
	return table
}

// Render writes a complete HTML page listing books to w.
func Render(w io.Writer, title string, books []shelves.Book) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html, "lang", "en")
	doc.AppendChild(root)
	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), title))
	body.AppendChild(Listing(books))
	tracer().Debugf("html: rendering %d books", len(books))
	return html.Render(w, doc)
}

const stylesheet = `table.catalog { border-collapse: collapse; }
table.catalog th, table.catalog td { border: 1px solid #999; padding: 2px 8px; }
tr.borrowed { color: #888; }`

// InnerText returns the textual content of an HTML element and all its
// descendents. It resembles the text produced by
//
//      document.getElementById("myNode").innerText
//
// in JavaScript, with the text of sibling table cells separated by tabs and
// table rows ending with a newline.
func InnerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) && c.NextSibling != nil {
			b.WriteByte('\t')
		}
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
		b.WriteByte('\n')
	}
}

// --- Helpers ---------------------------------------------------------------

// element creates an element node; attrs are key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func row(cell atom.Atom, values []string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		tr.AppendChild(withText(element(cell), v))
	}
	return tr
}
