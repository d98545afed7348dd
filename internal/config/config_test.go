package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Default ---

func TestDefault_ShouldReturnDataBaseUnderHome(t *testing.T) {
	c := Default()
	if !strings.HasSuffix(c.DataBase, ".vanity") {
		t.Errorf("expected DataBase to end with .vanity, got %q", c.DataBase)
	}
}

// --- DBPath / LogPath ---

func TestDBPath_ShouldAppendStateDuckdbToDataDir(t *testing.T) {
	c := Config{DataBase: "/tmp/vanity"}
	got := c.DBPath()
	expected := filepath.Join("/tmp/vanity", "state.duckdb")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestLogPath_ShouldLiveInsideDataDir(t *testing.T) {
	c := Config{DataBase: "/tmp/vanity"}
	got := c.LogPath()
	if !strings.HasPrefix(got, "/tmp/vanity") {
		t.Errorf("expected log path under data dir, got %q", got)
	}
	if !strings.HasSuffix(got, "vanity.log") {
		t.Errorf("expected path ending in vanity.log, got %q", got)
	}
}

// --- CatalogPath ---

func TestCatalogPath_WhenOverrideGiven_ShouldReturnOverride(t *testing.T) {
	c := Config{DataBase: "/tmp/vanity"}
	got := c.CatalogPath("/srv/catalog/products.json")
	if got != "/srv/catalog/products.json" {
		t.Errorf("expected override path, got %q", got)
	}
}

func TestCatalogPath_WhenWorkingDirHasCatalog_ShouldPreferIt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CatalogFile), []byte(`{"products":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)

	c := Config{DataBase: "/tmp/vanity"}
	if got := c.CatalogPath(""); got != CatalogFile {
		t.Errorf("expected working dir catalog, got %q", got)
	}
}

func TestCatalogPath_WhenNoOverrideAndNoLocalFile_ShouldFallBackToDataDir(t *testing.T) {
	old, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)

	c := Config{DataBase: "/tmp/vanity"}
	got := c.CatalogPath("")
	expected := filepath.Join("/tmp/vanity", CatalogFile)
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

// --- RedisAddr ---

func TestRedisAddr_WhenEnvUnset_ShouldReturnEmpty(t *testing.T) {
	os.Unsetenv("VANITY_REDIS_ADDR")
	if got := RedisAddr(); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestRedisAddr_WhenEnvSet_ShouldReturnAddress(t *testing.T) {
	t.Setenv("VANITY_REDIS_ADDR", "localhost:6379")
	if got := RedisAddr(); got != "localhost:6379" {
		t.Errorf("expected localhost:6379, got %q", got)
	}
}
