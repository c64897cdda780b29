package loader

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/nodeview/pkg/config"
	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/metrics"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// Captions used for generated content rows.
const (
	CaptionOk      = "running..."
	CaptionWarning = "driving in degraded condition"
	CaptionNg      = "stopped"
)

// SampleGenerator produces random demo snapshots. Each call draws a new
// snapshot from the same random stream, so a fixed seed yields a
// reproducible sequence of reloads.
type SampleGenerator struct {
	cfg config.SampleConfig
	rng *rand.Rand
}

// NewSampleGenerator creates a generator. A zero seed uses the current time.
func NewSampleGenerator(cfg config.SampleConfig) *SampleGenerator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SampleGenerator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Snapshot generates a new hierarchy. It never fails.
func (s *SampleGenerator) Snapshot() (model.Hierarchy, error) {
	defer metrics.TimerWithCallback(metrics.SnapshotLoad, func(d time.Duration) {
		debug.LogTiming("sample snapshot", d)
	})()

	count := s.between(s.cfg.MinGroups, s.cfg.MaxGroups)
	h := make(model.Hierarchy, 0, count)
	for i := 0; i < count; i++ {
		h = append(h, model.NewGroup(fmt.Sprintf("Node Log %02d", i), s.nodes()))
	}
	return h, nil
}

func (s *SampleGenerator) nodes() []model.Node {
	kinds := []model.NodeKind{model.NodeA, model.NodeB, model.NodeC}
	if s.chance(s.cfg.NodeDProbability) {
		kinds = append(kinds, model.NodeD)
	}
	if s.chance(s.cfg.NodeEProbability) {
		kinds = append(kinds, model.NodeE)
	}

	nodes := make([]model.Node, 0, len(kinds))
	for _, kind := range kinds {
		nodes = append(nodes, model.NewNode(kind, s.contents()))
	}
	return nodes
}

func (s *SampleGenerator) contents() []model.Content {
	count := s.between(s.cfg.MinContents, s.cfg.MaxContents)
	contents := make([]model.Content, 0, count)
	for j := 0; j < count; j++ {
		c := model.Content{Index: fmt.Sprintf("device %02d", j)}
		switch {
		case s.chance(s.cfg.NgProbability):
			c.Caption, c.Status = CaptionNg, model.StatusNg
		case s.chance(s.cfg.WarningProbability):
			c.Caption, c.Status = CaptionWarning, model.StatusWarning
		default:
			c.Caption, c.Status = CaptionOk, model.StatusOk
		}
		contents = append(contents, c)
	}
	return contents
}

// between returns a value in [lo, hi). Degenerate ranges return lo.
func (s *SampleGenerator) between(lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo)
}

func (s *SampleGenerator) chance(p float64) bool {
	return s.rng.Float64() < p
}
