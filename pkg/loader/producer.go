// Package loader produces hierarchy snapshots for the viewer.
//
// A Producer hands out a fresh, fully-formed model.Hierarchy each time it is
// asked. Snapshots are built through model.NewNode and model.NewGroup, so
// derived statuses are always re-aggregated on load regardless of what the
// source document claims.
package loader

import (
	"time"

	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// Producer supplies hierarchy snapshots. It is called at startup and on
// every reload.
type Producer interface {
	Snapshot() (model.Hierarchy, error)
}

// ProducerFunc adapts a plain function to the Producer interface.
type ProducerFunc func() (model.Hierarchy, error)

// Snapshot calls f.
func (f ProducerFunc) Snapshot() (model.Hierarchy, error) { return f() }

// FileProducer re-reads a single snapshot document on every call.
type FileProducer struct {
	Path string
	// Format forces the document encoding; empty means use the extension.
	Format Format
}

// Snapshot loads the document at p.Path.
func (p FileProducer) Snapshot() (model.Hierarchy, error) {
	return timedLoad(p.Path, func() (model.Hierarchy, error) { return LoadFileAs(p.Path, p.Format) })
}

// DirProducer re-reads every snapshot document in a directory on every call.
type DirProducer struct {
	Dir string
}

// Snapshot loads all documents below p.Dir.
func (p DirProducer) Snapshot() (model.Hierarchy, error) {
	return timedLoad(p.Dir, func() (model.Hierarchy, error) { return LoadDir(p.Dir) })
}

func timedLoad(label string, load func() (model.Hierarchy, error)) (model.Hierarchy, error) {
	defer metrics.TimerWithCallback(metrics.SnapshotLoad, func(d time.Duration) {
		debug.LogTiming("load "+label, d)
	})()
	return load()
}
