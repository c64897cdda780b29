package analysis

import "github.com/vanderheijden86/nodeview/pkg/model"

// LevelCounts tallies one level of the hierarchy by status.
type LevelCounts struct {
	Total   int `json:"total"`
	Ok      int `json:"ok"`
	Warning int `json:"warning"`
	Ng      int `json:"ng"`
}

// Alerting returns how many entries are Warning or Ng.
func (c LevelCounts) Alerting() int {
	return c.Warning + c.Ng
}

func (c *LevelCounts) add(s model.Status) {
	c.Total++
	switch s {
	case model.StatusOk:
		c.Ok++
	case model.StatusWarning:
		c.Warning++
	case model.StatusNg:
		c.Ng++
	}
}

// Summary holds per-level status counts and the overall status of a snapshot.
type Summary struct {
	Overall  model.Status `json:"overall"`
	Groups   LevelCounts  `json:"groups"`
	Nodes    LevelCounts  `json:"nodes"`
	Contents LevelCounts  `json:"contents"`
}

// HasAlerts reports whether any content row is alerting.
func (s Summary) HasAlerts() bool {
	return s.Contents.Alerting() > 0
}

// Summarize counts groups, nodes and contents by status in a single pass.
func Summarize(h model.Hierarchy) Summary {
	var s Summary
	for _, g := range h {
		s.Groups.add(g.Status())
		for _, n := range g.Nodes() {
			s.Nodes.add(n.Status())
			for _, c := range n.Contents() {
				s.Contents.add(c.Status)
			}
		}
	}
	s.Overall = h.Status()
	return s
}
