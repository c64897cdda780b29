package selection

import (
	"github.com/vanderheijden86/nodeview/pkg/analysis"
	"github.com/vanderheijden86/nodeview/pkg/debug"
	"github.com/vanderheijden86/nodeview/pkg/model"
)

// Option configures a Controller.
type Option func(*Controller)

// KeepViewModeOnReload keeps alert-only mode across reloads. The filtered
// hierarchy is then recomputed on the next access. By default a reload
// returns to the full view.
func KeepViewModeOnReload(keep bool) Option {
	return func(c *Controller) { c.keepMode = keep }
}

// StartAlertOnly starts the controller in alert-only mode.
func StartAlertOnly(on bool) Option {
	return func(c *Controller) { c.alertOnly = on }
}

// Controller owns the hierarchy, view mode and selection for one viewer
// session. It is not safe for concurrent use; the UI mutates it only from
// its update loop.
type Controller struct {
	full      model.Hierarchy
	filtered  model.Hierarchy
	fresh     bool // filtered reflects full
	alertOnly bool
	keepMode  bool
	sel       Selection
}

// New creates a controller over an initial hierarchy.
func New(h model.Hierarchy, opts ...Option) *Controller {
	c := &Controller{full: h}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectGroup focuses group g of the current hierarchy. An out-of-range
// index leaves the selection unchanged and returns false.
func (c *Controller) SelectGroup(g int) bool {
	if _, ok := c.CurrentHierarchy().GroupAt(g); !ok {
		debug.Log("selection: ignoring group %d (have %d)", g, len(c.CurrentHierarchy()))
		return false
	}
	c.sel = GroupAt(g)
	return true
}

// SelectNode focuses node n of group g of the current hierarchy. Either
// index out of range leaves the selection unchanged and returns false.
func (c *Controller) SelectNode(g, n int) bool {
	if _, ok := c.CurrentHierarchy().NodeAt(g, n); !ok {
		debug.Log("selection: ignoring node (%d, %d)", g, n)
		return false
	}
	c.sel = NodeAt(g, n)
	return true
}

// Clear empties the selection.
func (c *Controller) Clear() {
	c.sel = None
}

// Reload replaces the full hierarchy and drops any filtered view. The
// selection is always cleared.
func (c *Controller) Reload(h model.Hierarchy) {
	c.full = h
	c.filtered = nil
	c.fresh = false
	if !c.keepMode {
		c.alertOnly = false
	}
	c.Clear()
	debug.Log("selection: reloaded %d groups (alert-only=%v)", len(h), c.alertOnly)
}

// ToggleFilter flips between full and alert-only views. Entering alert-only
// mode recomputes the filtered hierarchy; leaving it discards it. The
// selection is always cleared.
func (c *Controller) ToggleFilter() {
	c.alertOnly = !c.alertOnly
	if c.alertOnly {
		c.refilter()
	} else {
		c.filtered = nil
		c.fresh = false
	}
	c.Clear()
}

// AlertOnly reports whether the alert-only view is active.
func (c *Controller) AlertOnly() bool { return c.alertOnly }

// FullHierarchy returns the unfiltered snapshot.
func (c *Controller) FullHierarchy() model.Hierarchy { return c.full }

// CurrentHierarchy returns the hierarchy the selection indexes into.
func (c *Controller) CurrentHierarchy() model.Hierarchy {
	if !c.alertOnly {
		return c.full
	}
	if !c.fresh {
		c.refilter()
	}
	return c.filtered
}

// CurrentSelection returns the selection.
func (c *Controller) CurrentSelection() Selection { return c.sel }

// Resolve returns the entities behind the current selection.
func (c *Controller) Resolve() Resolved {
	h := c.CurrentHierarchy()
	switch c.sel.state {
	case GroupFocused:
		g, ok := h.GroupAt(c.sel.group)
		if !ok {
			return Resolved{}
		}
		return Resolved{State: GroupFocused, Group: g, Nodes: Summarize(g)}
	case NodeFocused:
		g, ok := h.GroupAt(c.sel.group)
		if !ok {
			return Resolved{}
		}
		n, ok := g.NodeAt(c.sel.node)
		if !ok {
			return Resolved{}
		}
		return Resolved{State: NodeFocused, Group: g, Node: n, Contents: n.Contents()}
	default:
		return Resolved{}
	}
}

func (c *Controller) refilter() {
	c.filtered = analysis.FilterAlerts(c.full)
	c.fresh = true
}
