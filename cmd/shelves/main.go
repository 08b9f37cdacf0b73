/*
Command shelves is an interactive library catalog.

Usage:

	shelves [flags]

The catalog may be loaded from a CSV file at startup (-load) and seeded with
generated books (-seed). Commands are read from standard input; type HELP
for a list of commands.

Configuration is read from a NestedText file "shelves.nt" at the standard
configuration locations of the OS, or from the file given with -config.
Flags take precedence over configuration files.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/npillmayer/shelves"
	"github.com/npillmayer/shelves/console"
	"github.com/npillmayer/shelves/csvfile"
	"github.com/npillmayer/shelves/recommend"
)

var degree, seedNumRecords *int
var shouldSeed *bool
var loadPath, configPath, traceLevel *string
var randomSeed *int64

func main() {
	setupFlags()

	conf, err := loadConfiguration(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "degree":
			conf.Set(keyDegree, *degree)
		case "trace":
			setTraceLevel(conf, normalizeLevel(*traceLevel))
		}
	})
	if err := setupTracing(conf); err != nil {
		log.Fatal(err)
	}

	minDegree, err := catalogDegree(conf)
	if err != nil {
		log.Fatal(err)
	}
	cat, err := shelves.NewCatalog(minDegree)
	if err != nil {
		log.Fatal(err)
	}
	defer cat.Close()

	if *loadPath != "" {
		report, err := csvfile.LoadFile(*loadPath, cat)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Loaded %d books from %s, skipped %d rows\n", report.Added, *loadPath, len(report.Skipped))
	}
	if *shouldSeed {
		added := seedCatalog(cat, *seedNumRecords, *randomSeed)
		fmt.Printf("Seeded catalog with %d books\n", added)
	}

	count := conf.GetInt(keyRecommendations)
	if count <= 0 {
		count = recommend.DefaultCount
	}
	scanner := bufio.NewScanner(os.Stdin)
	cli := NewCLI(scanner, os.Stdout, cat, recommend.New(*randomSeed), console.ForTerminal(), count)
	cli.Start()
}

func setupFlags() {
	degree = flag.Int("degree", 3, "Minimum degree of the title index (at least 2).")
	loadPath = flag.String("load", "", "Load the catalog from a CSV file upon startup.")
	shouldSeed = flag.Bool("seed", false, "Seed the catalog using books created with go-faker.")
	seedNumRecords = flag.Int("records", 100, "Amount of books to seed the catalog with upon startup.")
	randomSeed = flag.Int64("rand", 1, "Seed for the random number generators.")
	traceLevel = flag.String("trace", "Error", "Trace level for all packages (Debug, Info, Error).")
	configPath = flag.String("config", "", "Read configuration from a NestedText file.")
	flag.Usage = func() {
		fmt.Println("\nLibrary catalog CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}
