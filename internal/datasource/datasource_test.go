package datasource

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/nodeview/pkg/config"
	"github.com/vanderheijden86/nodeview/pkg/export"
	"github.com/vanderheijden86/nodeview/pkg/loader"
	"github.com/vanderheijden86/nodeview/pkg/testutil"
)

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		path string
		want SourceType
	}{
		{"", SourceTypeSample},
		{dir, SourceTypeDir},
		{touch("a.json"), SourceTypeJSON},
		{touch("a.YAML"), SourceTypeYAML},
		{touch("a.yml"), SourceTypeYAML},
		{touch("a.db"), SourceTypeSQLite},
		{touch("a.sqlite3"), SourceTypeSQLite},
	}
	for _, tt := range tests {
		src, err := Detect(tt.path)
		if err != nil {
			t.Errorf("Detect(%q): %v", tt.path, err)
			continue
		}
		if src.Type != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.path, src.Type, tt.want)
		}
	}

	if _, err := Detect(touch("notes.txt")); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := Detect(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestResolveExplicitType(t *testing.T) {
	src, err := Resolve(config.SourceConfig{Path: "/data/snap", Type: "SQLite"})
	if err != nil {
		t.Fatal(err)
	}
	if src.Type != SourceTypeSQLite || src.Path != "/data/snap" {
		t.Errorf("Resolve() = %+v", src)
	}

	if _, err := Resolve(config.SourceConfig{Type: "json"}); err == nil {
		t.Error("json without a path should fail")
	}
	if _, err := Resolve(config.SourceConfig{Type: "carrier-pigeon", Path: "x"}); err == nil {
		t.Error("unknown type should fail")
	}
	src, err = Resolve(config.SourceConfig{Type: "sample", Path: "ignored"})
	if err != nil || src.Type != SourceTypeSample {
		t.Errorf("sample Resolve() = %+v, %v", src, err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	want := testutil.Mixed()
	if err := export.WriteSQLite(want, path); err != nil {
		t.Fatalf("WriteSQLite: %v", err)
	}

	p, src, err := NewProducer(config.SourceConfig{Path: path}, config.DefaultSampleConfig())
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	if src.Type != SourceTypeSQLite {
		t.Fatalf("source type = %s", src.Type)
	}
	got, err := p.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	testutil.AssertHierarchyEqual(t, got, want)
	testutil.AssertDerivedStatuses(t, got)
}

func TestSQLiteRejectsBadStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	if err := export.WriteSQLite(testutil.ScenarioA(), path); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE contents SET status = 'Exploded' WHERE position = 0`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	_, err = LoadFromSource(DataSource{Type: SourceTypeSQLite, Path: path})
	if err == nil || !strings.Contains(err.Error(), "Exploded") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestNewSQLiteReaderRejectsOtherTypes(t *testing.T) {
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeJSON, Path: "x.json"}); err == nil {
		t.Error("expected error for non-SQLite source")
	}
}

func TestProducerForFileTypes(t *testing.T) {
	dir := t.TempDir()
	data, err := loader.Encode(testutil.ScenarioA(), loader.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "a.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	for _, cfg := range []config.SourceConfig{{Path: path}, {Path: dir}} {
		p, _, err := NewProducer(cfg, config.DefaultSampleConfig())
		if err != nil {
			t.Fatalf("NewProducer(%+v): %v", cfg, err)
		}
		h, err := p.Snapshot()
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		testutil.AssertHierarchyEqual(t, h, testutil.ScenarioA())
	}
}

func TestProducerForForcedFileType(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		typ    string
		format loader.Format
	}{
		{"json", loader.FormatJSON},
		{"yaml", loader.FormatYAML},
	} {
		t.Run(tc.typ, func(t *testing.T) {
			data, err := loader.Encode(testutil.ScenarioA(), tc.format)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(dir, "snapshot-"+tc.typ+".txt")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatal(err)
			}

			p, src, err := NewProducer(config.SourceConfig{Path: path, Type: tc.typ}, config.DefaultSampleConfig())
			if err != nil {
				t.Fatalf("NewProducer: %v", err)
			}
			if string(src.Type) != tc.typ {
				t.Errorf("source type = %s, want %s", src.Type, tc.typ)
			}
			h, err := p.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			testutil.AssertHierarchyEqual(t, h, testutil.ScenarioA())
		})
	}
}

func TestProducerForSample(t *testing.T) {
	sample := config.DefaultSampleConfig()
	sample.Seed = 1
	p, src, err := NewProducer(config.SourceConfig{}, sample)
	if err != nil {
		t.Fatal(err)
	}
	if src.String() != "sample data" {
		t.Errorf("String() = %q", src.String())
	}
	h, err := p.Snapshot()
	if err != nil || len(h) < sample.MinGroups {
		t.Errorf("sample snapshot: %d groups, %v", len(h), err)
	}
}
