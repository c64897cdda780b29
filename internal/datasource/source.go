// Package datasource resolves where nv reads its snapshots from and builds
// the matching loader.Producer.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeSample is the built-in random demo generator
	SourceTypeSample SourceType = "sample"
	// SourceTypeJSON is a single JSON snapshot document
	SourceTypeJSON SourceType = "json"
	// SourceTypeYAML is a single YAML snapshot document
	SourceTypeYAML SourceType = "yaml"
	// SourceTypeSQLite is a SQLite snapshot database
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeDir is a directory of JSON/YAML snapshot documents
	SourceTypeDir SourceType = "dir"
)

// ParseSourceType validates a configured source type name.
func ParseSourceType(s string) (SourceType, error) {
	switch t := SourceType(strings.ToLower(strings.TrimSpace(s))); t {
	case SourceTypeSample, SourceTypeJSON, SourceTypeYAML, SourceTypeSQLite, SourceTypeDir:
		return t, nil
	default:
		return "", fmt.Errorf("unknown source type: %q", s)
	}
}

// DataSource describes a resolved snapshot source
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the file or directory path; empty for the sample generator
	Path string `json:"path,omitempty"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time,omitempty"`
	// Size is the file size in bytes
	Size int64 `json:"size,omitempty"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	if s.Type == SourceTypeSample {
		return "sample data"
	}
	return fmt.Sprintf("%s (%s)", s.Path, s.Type)
}

// Detect infers the source type from a path. An empty path selects the
// sample generator; a directory selects SourceTypeDir; otherwise the file
// extension decides.
func Detect(path string) (DataSource, error) {
	if path == "" {
		return DataSource{Type: SourceTypeSample}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("cannot stat source: %w", err)
	}
	src := DataSource{Path: path, ModTime: info.ModTime(), Size: info.Size()}
	if info.IsDir() {
		src.Type = SourceTypeDir
		return src, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		src.Type = SourceTypeJSON
	case ".yaml", ".yml":
		src.Type = SourceTypeYAML
	case ".db", ".sqlite", ".sqlite3":
		src.Type = SourceTypeSQLite
	default:
		return DataSource{}, fmt.Errorf("cannot detect source type of %s", path)
	}
	return src, nil
}
