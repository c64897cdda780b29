package analysis_test

import (
	"testing"

	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/testutil"
)

func TestSummarizeMixed(t *testing.T) {
	s := analysis.Summarize(testutil.Mixed())

	if s.Overall != model.StatusNg {
		t.Errorf("overall = %v, want Ng", s.Overall)
	}
	want := analysis.LevelCounts{Total: 3, Ok: 1, Warning: 1, Ng: 1}
	if s.Groups != want {
		t.Errorf("groups = %+v, want %+v", s.Groups, want)
	}
	if s.Nodes.Total != 7 || s.Nodes.Alerting() != 2 {
		t.Errorf("nodes = %+v", s.Nodes)
	}
	if s.Contents.Total != 10 || s.Contents.Ng != 1 || s.Contents.Warning != 2 {
		t.Errorf("contents = %+v", s.Contents)
	}
	if !s.HasAlerts() {
		t.Error("expected HasAlerts")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := analysis.Summarize(nil)
	if s.Overall != model.StatusOk || s.HasAlerts() || s.Groups.Total != 0 {
		t.Errorf("unexpected summary for empty hierarchy: %+v", s)
	}
}
