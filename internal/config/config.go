// Package config resolves filesystem paths and environment settings.
package config

import (
	"os"
	"path/filepath"
)

// CatalogFile is the catalog document name looked up next to the binary
// and inside the data directory.
const CatalogFile = "products.json"

// Config holds the base paths used by the application.
type Config struct {
	DataBase string
}

// Default returns a Config rooted at ~/.vanity.
func Default() Config {
	return Config{
		DataBase: filepath.Join(os.Getenv("HOME"), ".vanity"),
	}
}

// DataDir returns the directory holding the state database and logs.
func (c Config) DataDir() string {
	return c.DataBase
}

// DBPath returns the DuckDB state database file path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataBase, "state.duckdb")
}

// LogPath returns the application log file path. The TUI owns the
// terminal, so all logging goes to this file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataBase, "vanity.log")
}

// CatalogPath resolves the catalog document location. An explicit override
// wins, then a products.json in the working directory, then the data dir.
func (c Config) CatalogPath(override string) string {
	if override != "" {
		return override
	}
	if fileExists(CatalogFile) {
		return CatalogFile
	}
	return filepath.Join(c.DataBase, CatalogFile)
}

// RedisAddr returns the optional Redis state backend address.
// Empty means the default DuckDB backend.
func RedisAddr() string {
	return os.Getenv("VANITY_REDIS_ADDR")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
