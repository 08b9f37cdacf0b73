package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shelves"
	"github.com/npillmayer/shelves/console"
	"github.com/npillmayer/shelves/csvfile"
	"github.com/npillmayer/shelves/html"
	"github.com/npillmayer/shelves/recommend"
)

// tracer traces with key 'shelves.cli'.
func tracer() tracing.Trace {
	return tracing.Select("shelves.cli")
}

// errUsage signals a malformed command line.
var errUsage = errors.New("usage")

// errQuit is returned by Execute for the EXIT command.
var errQuit = errors.New("quit")

const helpText = `Commands:
  ADD id|title|author|genre|year[|available]   add a book
  DEL <id>                                     delete a book
  GET <title>                                  look up a book by title
  ID <id>                                      look up a book by ID
  FIND <field> [contains|exact|starts] <term>  search by title, author, genre or id
  AVAIL <title> on|off                         set the availability of a book
  BORROW <user> <id>                           borrow a book
  RETURN <id>                                  return a book
  USER <user>                                  show a user's statistics
  RECOMMEND <user> [n]                         suggest books to a user
  LIST                                         list all books by title
  STATS                                        books per genre
  LOAD <file>                                  replace the catalog by a CSV file (.sz: compressed)
  SAVE <file>                                  export the catalog as CSV (.sz: compressed)
  HTML <file>                                  export the catalog as an HTML page
  TREE                                         show the title index
  DOT <file>                                   write the title index in Graphviz format
  CHECK                                        verify the title index
  HELP                                         show this text
  EXIT                                         leave
`

// CLI is an interactive command interpreter for a catalog.
type CLI struct {
	scanner *bufio.Scanner
	out     io.Writer
	cat     *shelves.Catalog
	rec     *recommend.Recommender
	table   *console.Table
	count   int // default number of recommendations
}

// NewCLI creates a command interpreter reading commands from scanner.
func NewCLI(scanner *bufio.Scanner, out io.Writer, cat *shelves.Catalog,
	rec *recommend.Recommender, table *console.Table, count int) *CLI {
	//
	return &CLI{
		scanner: scanner,
		out:     out,
		cat:     cat,
		rec:     rec,
		table:   table,
		count:   count,
	}
}

// Start runs the command loop until EXIT or end of input.
func (cli *CLI) Start() {
	fmt.Fprintf(cli.out, "Library catalog with %d books. Type HELP for a list of commands.\n", cli.cat.Len())
	for {
		fmt.Fprint(cli.out, "> ")
		if !cli.scanner.Scan() {
			fmt.Fprintln(cli.out)
			return
		}
		err := cli.Execute(cli.scanner.Text())
		if errors.Is(err, errQuit) {
			return
		} else if err != nil {
			fmt.Fprintf(cli.out, "Error: %v\n", err)
		}
	}
}

// Execute interprets a single command line.
func (cli *CLI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, args = line[:i], strings.TrimSpace(line[i+1:])
	}
	tracer().Debugf("cli: command %q, args %q", cmd, args)
	switch strings.ToUpper(cmd) {
	case "ADD":
		return cli.add(args)
	case "DEL", "DELETE":
		id, err := bookID(args)
		if err != nil {
			return err
		}
		b, ok := cli.cat.Remove(id)
		if !ok {
			return fmt.Errorf("%w: %d", shelves.ErrNotFound, id)
		}
		fmt.Fprintf(cli.out, "Deleted %q (ID %d)\n", b.Title, b.ID)
	case "GET":
		if args == "" {
			return fmt.Errorf("%w: GET <title>", errUsage)
		}
		b, ok := cli.cat.ByTitle(args)
		if !ok {
			return fmt.Errorf("%w: no book titled %q", shelves.ErrNotFound, args)
		}
		return cli.table.Write(cli.out, []shelves.Book{b})
	case "ID":
		id, err := bookID(args)
		if err != nil {
			return err
		}
		b, ok := cli.cat.ByID(id)
		if !ok {
			return fmt.Errorf("%w: %d", shelves.ErrNotFound, id)
		}
		return cli.table.Write(cli.out, []shelves.Book{b})
	case "FIND":
		return cli.find(args)
	case "AVAIL":
		return cli.avail(args)
	case "BORROW":
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return fmt.Errorf("%w: BORROW <user> <id>", errUsage)
		}
		id, err := bookID(fields[1])
		if err != nil {
			return err
		}
		b, err := cli.cat.Borrow(fields[0], id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s borrowed %q\n", fields[0], b.Title)
	case "RETURN":
		id, err := bookID(args)
		if err != nil {
			return err
		}
		b, err := cli.cat.Return(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Returned %q\n", b.Title)
	case "USER":
		if args == "" {
			return fmt.Errorf("%w: USER <user>", errUsage)
		}
		u := cli.cat.User(args)
		fav := "none"
		if g, ok := u.FavoriteGenre(); ok {
			fav = string(g)
		}
		fmt.Fprintf(cli.out, "User %s: %d books borrowed, favorite genre %s\n", u.ID, u.TotalBorrowed(), fav)
	case "RECOMMEND":
		return cli.recommend(args)
	case "LIST":
		return cli.table.Write(cli.out, cli.cat.Books())
	case "STATS":
		return cli.table.WriteStats(cli.out, cli.cat.GenreStats())
	case "LOAD":
		if args == "" {
			return fmt.Errorf("%w: LOAD <file>", errUsage)
		}
		report, err := csvfile.LoadFile(args, cli.cat)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Loaded %d books (%s), skipped %d rows\n", report.Added, report.Encoding, len(report.Skipped))
		for _, skipped := range report.Skipped {
			fmt.Fprintf(cli.out, "  %v\n", skipped)
		}
	case "SAVE":
		if args == "" {
			return fmt.Errorf("%w: SAVE <file>", errUsage)
		}
		if err := csvfile.SaveFile(args, cli.cat); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Exported %d books to %s\n", cli.cat.Len(), args)
	case "HTML":
		if args == "" {
			return fmt.Errorf("%w: HTML <file>", errUsage)
		}
		return writeFile(args, func(w io.Writer) error {
			return html.Render(w, "Library Catalog", cli.cat.Books())
		})
	case "TREE":
		fmt.Fprintf(cli.out, "%s\n", cli.cat.Visualize())
	case "DOT":
		if args == "" {
			return fmt.Errorf("%w: DOT <file>", errUsage)
		}
		return writeFile(args, cli.cat.WriteDot)
	case "CHECK":
		if err := cli.cat.Check(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Title index is consistent")
	case "HELP", "?":
		fmt.Fprint(cli.out, helpText)
	case "EXIT", "QUIT":
		return errQuit
	default:
		return fmt.Errorf("%w: unknown command %q, type HELP for a list of commands", errUsage, cmd)
	}
	return nil
}

func (cli *CLI) add(args string) error {
	fields := strings.Split(args, "|")
	if len(fields) < 5 || len(fields) > 6 {
		return fmt.Errorf("%w: ADD id|title|author|genre|year[|available]", errUsage)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	id, err := bookID(fields[0])
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("%w: invalid year %q", shelves.ErrInvalidBook, fields[4])
	}
	genre, err := shelves.ParseGenre(fields[3])
	if err != nil {
		return err
	}
	b := shelves.Book{ID: id, Title: fields[1], Author: fields[2], Genre: genre, Year: year, Available: true}
	if len(fields) == 6 {
		if b.Available, err = strconv.ParseBool(fields[5]); err != nil {
			return fmt.Errorf("%w: invalid availability %q", shelves.ErrInvalidBook, fields[5])
		}
	}
	if err := cli.cat.Add(b); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added %q (ID %d)\n", b.Title, b.ID)
	return nil
}

func (cli *CLI) find(args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return fmt.Errorf("%w: FIND <field> [contains|exact|starts] <term>", errUsage)
	}
	field, err := shelves.ParseField(fields[0])
	if err != nil {
		return err
	}
	match, terms := shelves.Contains, fields[1:]
	if len(terms) > 1 {
		switch strings.ToLower(terms[0]) {
		case "contains", "exact", "starts":
			match, terms = shelves.ParseMatch(terms[0]), terms[1:]
		}
	}
	books, err := cli.cat.Find(field, strings.Join(terms, " "), match)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Fprintln(cli.out, "No books found")
		return nil
	}
	return cli.table.Write(cli.out, books)
}

func (cli *CLI) avail(args string) error {
	i := strings.LastIndexAny(args, " \t")
	if i < 0 {
		return fmt.Errorf("%w: AVAIL <title> on|off", errUsage)
	}
	title, flag := strings.TrimSpace(args[:i]), strings.ToLower(args[i+1:])
	var available bool
	switch flag {
	case "on", "yes", "true":
		available = true
	case "off", "no", "false":
	default:
		return fmt.Errorf("%w: AVAIL <title> on|off", errUsage)
	}
	if !cli.cat.UpdateAvailability(title, available) {
		return fmt.Errorf("%w: no book titled %q", shelves.ErrNotFound, title)
	}
	fmt.Fprintf(cli.out, "%q is now %s\n", title, map[bool]string{true: "available", false: "borrowed"}[available])
	return nil
}

func (cli *CLI) recommend(args string) error {
	fields := strings.Fields(args)
	if len(fields) < 1 || len(fields) > 2 {
		return fmt.Errorf("%w: RECOMMEND <user> [n]", errUsage)
	}
	n := cli.count
	if len(fields) == 2 {
		var err error
		if n, err = strconv.Atoi(fields[1]); err != nil || n <= 0 {
			return fmt.Errorf("%w: RECOMMEND <user> [n]", errUsage)
		}
	}
	books := cli.rec.Recommend(cli.cat, fields[0], n)
	if len(books) == 0 {
		fmt.Fprintln(cli.out, "No recommendations")
		return nil
	}
	return cli.table.Write(cli.out, books)
}

func bookID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid book ID %q", errUsage, s)
	}
	return id, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
