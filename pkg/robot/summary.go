package robot

import (
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/version"
)

// Summary is the --robot-summary payload.
type Summary struct {
	Version     string                `json:"version"`
	GeneratedAt time.Time             `json:"generated_at"`
	Source      string                `json:"source"`
	Overall     model.Status          `json:"overall"`
	Groups      analysis.LevelCounts  `json:"groups"`
	Nodes       analysis.LevelCounts  `json:"nodes"`
	Contents    analysis.LevelCounts  `json:"contents"`
	Alerts      model.Document        `json:"alerts"`
	Timings     []metrics.TimingStats `json:"timings,omitempty"`
}

// NewSummary builds the robot summary for a snapshot. Alerts holds the
// alert-filtered hierarchy.
func NewSummary(h model.Hierarchy, source string, now time.Time) Summary {
	sum := analysis.Summarize(h)
	return Summary{
		Version:     version.Version,
		GeneratedAt: now.UTC(),
		Source:      source,
		Overall:     sum.Overall,
		Groups:      sum.Groups,
		Nodes:       sum.Nodes,
		Contents:    sum.Contents,
		Alerts:      model.NewDocument(analysis.FilterAlerts(h)),
		Timings:     metrics.AllTimingStats(),
	}
}

// Write encodes v as indented JSON followed by a newline.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
