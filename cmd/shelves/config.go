package main

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// Configuration keys.
const (
	keyDegree          = "shelves.degree"
	keyRecommendations = "shelves.recommendations"
	keyTraceAdapter    = "tracing.adapter"
	traceLevelPrefix   = "tracelevel"
)

// traceKeys lists the trace keys of all packages of the application.
var traceKeys = []string{
	"shelves.catalog",
	"shelves.btree",
	"shelves.csv",
	"shelves.recommend",
	"shelves.html",
	"shelves.console",
	"shelves.cli",
}

func defaults() map[string]interface{} {
	d := map[string]interface{}{
		keyDegree:                  3,
		keyRecommendations:         5,
		traceLevelPrefix + ".root": "Error",
	}
	for _, key := range traceKeys {
		d[traceLevelPrefix+"."+key] = "Error"
	}
	return d
}

// loadConfiguration creates the application configuration. Settings are
// taken, in increasing priority, from built-in defaults, from a "shelves.nt"
// file at the OS-dependent standard configuration locations and from a
// NestedText file at path, if path is non-empty.
func loadConfiguration(path string) (*koanfadapter.KConf, error) {
	conf := koanfadapter.New(nil, "shelves", []string{".nt"})
	k := conf.Koanf()
	if err := k.Load(confmap.Provider(defaults(), k.Delim()), nil); err != nil {
		return nil, err
	}
	conf.InitDefaults()
	if path != "" {
		if err := k.Load(file.Provider(path), koanfadapter.Parser()); err != nil {
			return nil, fmt.Errorf("loading configuration %q: %w", path, err)
		}
	}
	return conf, nil
}

// catalogDegree returns the configured minimum degree of the title index.
// The zero value, which the tree would take for its default, is rejected
// like any other degree below 2.
func catalogDegree(conf schuko.Configuration) (int, error) {
	degree := conf.GetInt(keyDegree)
	if degree < 2 {
		return 0, fmt.Errorf("invalid degree %d (%s), must be at least 2", degree, conf.GetString(keyDegree))
	}
	return degree, nil
}

// setTraceLevel sets the trace level for all application tracers.
func setTraceLevel(conf *koanfadapter.KConf, level string) {
	for _, key := range traceKeys {
		conf.Set(traceLevelPrefix+"."+key, level)
	}
	conf.Set(traceLevelPrefix+".root", level)
}

// setupTracing installs trace2go as the tracer factory, using the Go
// standard logger (adapter "go") unless the configuration tells otherwise.
func setupTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if conf.GetString(keyTraceAdapter) == "" {
		return fmt.Errorf("configuration lacks key %q", keyTraceAdapter)
	}
	if err := trace2go.ConfigureRoot(conf, traceLevelPrefix, trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// normalizeLevel maps user input to one of the trace level names.
func normalizeLevel(level string) string {
	return tracing.TraceLevelFromString(strings.TrimSpace(level)).String()
}
