package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

const stateSchema = `
CREATE TABLE IF NOT EXISTS app_state (
    key    VARCHAR PRIMARY KEY,
    value  VARCHAR NOT NULL
);
`

// DuckDB is the default durable backend: a single key/value table in a
// local database file.
type DuckDB struct {
	db *sql.DB
}

// OpenDuckDB opens (creating if needed) the state database at dbPath.
func OpenDuckDB(dbPath string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", dbPath, err)
	}
	if _, err := db.Exec(stateSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	return &DuckDB{db: db}, nil
}

func (d *DuckDB) Get(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (d *DuckDB) Set(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO app_state (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (d *DuckDB) DeleteAll(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	_, err := d.db.Exec(
		fmt.Sprintf(`DELETE FROM app_state WHERE key IN (%s)`, placeholders), args...)
	return err
}

func (d *DuckDB) Close() error {
	return d.db.Close()
}
