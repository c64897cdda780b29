package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/nodeview/pkg/model"
)

// maxParallelLoads bounds concurrent file decodes in LoadDir.
var maxParallelLoads = 4

// loadDocument is replaced in tests.
var loadDocument = LoadFile

// SnapshotFiles lists the snapshot documents directly inside dir, sorted by
// name. Subdirectories and files with other extensions are skipped.
func SnapshotFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFor(e.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir decodes every snapshot document in dir concurrently and
// concatenates their groups in file-name order. After the first decode error
// no further files are started; that error is returned.
func LoadDir(dir string) (model.Hierarchy, error) {
	files, err := SnapshotFiles(dir)
	if err != nil {
		return nil, err
	}

	parts := make([]model.Hierarchy, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelLoads)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := loadDocument(path)
			if err != nil {
				return err
			}
			parts[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make(model.Hierarchy, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
