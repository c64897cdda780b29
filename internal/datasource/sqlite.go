package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// SQLiteReader provides read access to a snapshot database
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite snapshot for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000&_journal_mode=WAL", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -16000", // 16MB cache
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			debug.Log("sqlite %s: %s failed: %v", source.Path, pragma, err)
		}
	}

	return &SQLiteReader{
		db:   db,
		path: source.Path,
	}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type nodeRow struct {
	id   int64
	kind model.NodeKind
}

// LoadHierarchy reads the whole snapshot, ordered by position at every level,
// and rebuilds it through the model constructors.
func (r *SQLiteReader) LoadHierarchy() (model.Hierarchy, error) {
	defer metrics.TimerWithCallback(metrics.SQLiteRead, func(d time.Duration) {
		debug.LogTiming("sqlite read "+r.path, d)
	})()

	groupIDs, names, err := r.loadGroups()
	if err != nil {
		return nil, err
	}
	nodes, err := r.loadNodes()
	if err != nil {
		return nil, err
	}
	contents, err := r.loadContents()
	if err != nil {
		return nil, err
	}

	h := make(model.Hierarchy, 0, len(groupIDs))
	for i, gid := range groupIDs {
		rows := nodes[gid]
		built := make([]model.Node, 0, len(rows))
		for _, n := range rows {
			built = append(built, model.NewNode(n.kind, contents[n.id]))
		}
		h = append(h, model.NewGroup(names[i], built))
	}
	return h, nil
}

func (r *SQLiteReader) loadGroups() ([]int64, []string, error) {
	rows, err := r.db.Query(`SELECT id, name FROM "groups" ORDER BY position, id`)
	if err != nil {
		return nil, nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var ids []int64
	var names []string
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, fmt.Errorf("scan group: %w", err)
		}
		ids = append(ids, id)
		names = append(names, name)
	}
	return ids, names, rows.Err()
}

func (r *SQLiteReader) loadNodes() (map[int64][]nodeRow, error) {
	rows, err := r.db.Query(`SELECT id, group_id, kind FROM nodes ORDER BY group_id, position, id`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]nodeRow)
	for rows.Next() {
		var id, groupID int64
		var kind string
		if err := rows.Scan(&id, &groupID, &kind); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		k, err := model.ParseNodeKind(kind)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", id, err)
		}
		out[groupID] = append(out[groupID], nodeRow{id: id, kind: k})
	}
	return out, rows.Err()
}

func (r *SQLiteReader) loadContents() (map[int64][]model.Content, error) {
	rows, err := r.db.Query(`SELECT node_id, idx, caption, status FROM contents ORDER BY node_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]model.Content)
	for rows.Next() {
		var nodeID int64
		var c model.Content
		var status string
		if err := rows.Scan(&nodeID, &c.Index, &c.Caption, &status); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		if c.Status, err = model.ParseStatus(status); err != nil {
			return nil, fmt.Errorf("content %s of node %d: %w", c.Index, nodeID, err)
		}
		out[nodeID] = append(out[nodeID], c)
	}
	return out, rows.Err()
}
