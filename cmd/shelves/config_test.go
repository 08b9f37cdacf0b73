package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfiguration(t *testing.T) {
	conf, err := loadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if conf.GetString(keyTraceAdapter) != "go" {
		t.Errorf("expected trace adapter 'go', have %q", conf.GetString(keyTraceAdapter))
	}
	for _, key := range traceKeys {
		if conf.GetString(traceLevelPrefix+"."+key) == "" {
			t.Errorf("expected a default trace level for %q", key)
		}
	}
}

func TestConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.nt")
	nt := "shelves:\n  degree: 5\n  recommendations: 8\ntracelevel:\n  shelves.btree: Debug\n"
	if err := os.WriteFile(path, []byte(nt), 0644); err != nil {
		t.Fatal(err)
	}
	conf, err := loadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	if d := conf.GetInt(keyDegree); d != 5 {
		t.Errorf("expected degree 5, have %d", d)
	}
	if n := conf.GetInt(keyRecommendations); n != 8 {
		t.Errorf("expected 8 recommendations, have %d", n)
	}
	conf.Set(keyDegree, 7)
	if d := conf.GetInt(keyDegree); d != 7 {
		t.Errorf("expected degree 7 after override, have %d", d)
	}
	setTraceLevel(conf, normalizeLevel("debug"))
	if lvl := conf.GetString(traceLevelPrefix + ".shelves.csv"); lvl != "Debug" {
		t.Errorf("expected trace level Debug, have %q", lvl)
	}
}

func TestMissingConfigurationFile(t *testing.T) {
	if _, err := loadConfiguration(filepath.Join(t.TempDir(), "none.nt")); err == nil {
		t.Errorf("expected an error for a missing configuration file")
	}
}

func TestDegreeMustBeAtLeastTwo(t *testing.T) {
	conf, err := loadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if d, err := catalogDegree(conf); err != nil || d != 3 {
		t.Errorf("expected default degree 3, have %d/%v", d, err)
	}
	for _, degree := range []int{0, 1, -4} {
		conf.Set(keyDegree, degree)
		if _, err := catalogDegree(conf); err == nil {
			t.Errorf("expected degree %d to be rejected", degree)
		}
	}
	conf.Set(keyDegree, "many")
	if _, err := catalogDegree(conf); err == nil {
		t.Errorf("expected a non-numeric degree to be rejected")
	}
}
