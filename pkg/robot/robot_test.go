package robot

import (
	"bytes"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/nodeview/pkg/model"
	"github.com/vanderheijden86/nodeview/pkg/testutil"
)

func TestShouldSuppressTTYQueries(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		envRobot bool
		envTest  bool
		want     bool
	}{
		{"interactive", []string{"nv"}, false, false, false},
		{"interactive with source", []string{"nv", "--source", "x.yaml"}, false, false, false},
		{"robot flag", []string{"nv", "--robot-summary"}, false, false, true},
		{"export flag", []string{"nv", "--export-md", "r.md"}, false, false, true},
		{"version", []string{"nv", "--version"}, false, false, true},
		{"help", []string{"nv", "-h"}, false, false, true},
		{"env robot", []string{"nv"}, true, false, true},
		{"env test", []string{"nv"}, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSuppressTTYQueries(tt.args, tt.envRobot, tt.envTest); got != tt.want {
				t.Errorf("shouldSuppressTTYQueries(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestSummaryJSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSummary(testutil.Mixed(), "sample data", now)

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded struct {
		Source   string `json:"source"`
		Overall  string `json:"overall"`
		Contents struct {
			Total int `json:"total"`
			Ng    int `json:"ng"`
		} `json:"contents"`
		Alerts model.Document `json:"alerts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if decoded.Source != "sample data" || decoded.Overall != "Ng" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Contents.Total != 10 || decoded.Contents.Ng != 1 {
		t.Errorf("contents = %+v", decoded.Contents)
	}
	if len(decoded.Alerts.Groups) != 2 {
		t.Fatalf("alert groups = %d, want 2", len(decoded.Alerts.Groups))
	}
	if g := decoded.Alerts.Groups[1]; g.Name != "Node Log 02" || g.Status == nil || *g.Status != model.StatusNg {
		t.Errorf("second alert group = %+v", g)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		t.Error("output should end with a newline")
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := NewSummary(nil, "empty", time.Now())
	if s.Overall != model.StatusOk || len(s.Alerts.Groups) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
