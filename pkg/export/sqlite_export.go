package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// WriteSQLite writes h to a new SQLite database at path, replacing any
// existing file. All rows are inserted in a single transaction.
func WriteSQLite(h model.Hierarchy, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := insertHierarchy(db, h); err != nil {
		return fmt.Errorf("insert hierarchy: %w", err)
	}

	counts := h.Counts()
	meta := map[string]string{
		"schema_version": strconv.Itoa(SchemaVersion),
		"generated_at":   time.Now().UTC().Format(time.RFC3339),
		"group_count":    strconv.Itoa(counts.Groups),
		"node_count":     strconv.Itoa(counts.Nodes),
		"content_count":  strconv.Itoa(counts.Contents),
		"overall_status": h.Status().String(),
	}
	for key, value := range meta {
		if err := InsertMetaValue(db, key, value); err != nil {
			return fmt.Errorf("insert meta %s: %w", key, err)
		}
	}

	return db.Close()
}

func insertHierarchy(db *sql.DB, h model.Hierarchy) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	groupStmt, err := tx.Prepare(`INSERT INTO "groups" (id, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer groupStmt.Close()

	nodeStmt, err := tx.Prepare(`INSERT INTO nodes (id, group_id, position, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()

	contentStmt, err := tx.Prepare(`
		INSERT INTO contents (node_id, position, idx, caption, status)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer contentStmt.Close()

	nodeID := 0
	for gi, g := range h {
		groupID := gi + 1
		if _, err := groupStmt.Exec(groupID, gi, g.Name()); err != nil {
			return fmt.Errorf("insert group %s: %w", g.Name(), err)
		}
		for ni, n := range g.Nodes() {
			nodeID++
			if _, err := nodeStmt.Exec(nodeID, groupID, ni, n.Kind().String()); err != nil {
				return fmt.Errorf("insert node %s/%s: %w", g.Name(), n.Name(), err)
			}
			for ci, c := range n.Contents() {
				if _, err := contentStmt.Exec(nodeID, ci, c.Index, c.Caption, c.Status.String()); err != nil {
					return fmt.Errorf("insert content %s/%s/%s: %w", g.Name(), n.Name(), c.Index, err)
				}
			}
		}
	}

	return tx.Commit()
}
