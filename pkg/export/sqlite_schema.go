package export

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in the meta table of every written snapshot.
const SchemaVersion = 1

// CreateSchema creates the snapshot tables and indexes.
func CreateSchema(db *sql.DB) error {
	tables := []struct {
		name string
		sql  string
	}{
		{"groups", `
			CREATE TABLE IF NOT EXISTS "groups" (
				id INTEGER PRIMARY KEY,
				position INTEGER NOT NULL,
				name TEXT NOT NULL
			)`},
		{"nodes", `
			CREATE TABLE IF NOT EXISTS nodes (
				id INTEGER PRIMARY KEY,
				group_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				kind TEXT NOT NULL,
				FOREIGN KEY (group_id) REFERENCES "groups"(id)
			)`},
		{"contents", `
			CREATE TABLE IF NOT EXISTS contents (
				node_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				idx TEXT NOT NULL,
				caption TEXT NOT NULL,
				status TEXT NOT NULL,
				PRIMARY KEY (node_id, position),
				FOREIGN KEY (node_id) REFERENCES nodes(id)
			)`},
		{"snapshot_meta", `
			CREATE TABLE IF NOT EXISTS snapshot_meta (
				key TEXT PRIMARY KEY,
				value TEXT
			)`},
	}
	for _, t := range tables {
		if _, err := db.Exec(t.sql); err != nil {
			return fmt.Errorf("create %s table: %w", t.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_groups_position ON "groups"(position)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_group ON nodes(group_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_contents_status ON contents(status)`,
	}
	for _, sql := range indexes {
		if _, err := db.Exec(sql); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// InsertMetaValue stores a key/value pair in the meta table.
func InsertMetaValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO snapshot_meta (key, value) VALUES (?, ?)`, key, value)
	return err
}
