package model

import (
	"errors"
	"testing"
)

func contents(statuses ...Status) []Content {
	out := make([]Content, len(statuses))
	for i, s := range statuses {
		out[i] = Content{Index: "device", Caption: s.String(), Status: s}
	}
	return out
}

func TestNewNodeDerivesStatus(t *testing.T) {
	tests := []struct {
		name string
		in   []Status
		want Status
	}{
		{"empty", nil, StatusOk},
		{"ok only", []Status{StatusOk, StatusOk}, StatusOk},
		{"warning", []Status{StatusOk, StatusWarning}, StatusWarning},
		{"ng wins", []Status{StatusWarning, StatusNg, StatusOk}, StatusNg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(NodeB, contents(tt.in...))
			if n.Status() != tt.want {
				t.Errorf("node status = %v, want %v", n.Status(), tt.want)
			}
			if len(n.Contents()) != len(tt.in) {
				t.Errorf("contents = %d, want %d", len(n.Contents()), len(tt.in))
			}
		})
	}
}

func TestNewNodeCopiesContents(t *testing.T) {
	in := contents(StatusOk)
	n := NewNode(NodeA, in)
	in[0].Status = StatusNg
	if n.Contents()[0].Status != StatusOk {
		t.Error("node should not observe caller's later mutation")
	}
	if n.Status() != StatusOk {
		t.Errorf("node status = %v, want Ok", n.Status())
	}
}

func TestNewNodeStoresUndefinedStatusAsNg(t *testing.T) {
	n := NewNode(NodeC, []Content{
		{Index: "device 00", Caption: "ok", Status: StatusOk},
		{Index: "device 01", Caption: "corrupt", Status: Status(3)},
	})
	if n.Status() != StatusNg {
		t.Errorf("node status = %v, want Ng", n.Status())
	}
	if got := n.Contents()[1].Status; got != StatusNg {
		t.Errorf("stored content status = %v, want Ng", got)
	}
}

func TestNewGroupDerivesStatus(t *testing.T) {
	g := NewGroup("X", []Node{
		NewNode(NodeA, contents(StatusOk, StatusOk)),
		NewNode(NodeB, contents(StatusOk, StatusWarning)),
	})
	if g.Status() != StatusWarning {
		t.Errorf("group status = %v, want Warning", g.Status())
	}
	if g.Name() != "X" {
		t.Errorf("group name = %q", g.Name())
	}

	empty := NewGroup("empty", nil)
	if empty.Status() != StatusOk {
		t.Errorf("empty group status = %v, want Ok", empty.Status())
	}
}

func TestHierarchyBounds(t *testing.T) {
	h := Hierarchy{
		NewGroup("X", []Node{NewNode(NodeA, nil), NewNode(NodeC, contents(StatusNg))}),
	}
	if _, ok := h.GroupAt(-1); ok {
		t.Error("GroupAt(-1) should fail")
	}
	if _, ok := h.GroupAt(1); ok {
		t.Error("GroupAt(1) should fail")
	}
	n, ok := h.NodeAt(0, 1)
	if !ok || n.Kind() != NodeC {
		t.Errorf("NodeAt(0,1) = %v, %v", n.Kind(), ok)
	}
	if _, ok := h.NodeAt(0, 2); ok {
		t.Error("NodeAt(0,2) should fail")
	}
	if _, ok := h.NodeAt(3, 0); ok {
		t.Error("NodeAt(3,0) should fail")
	}
	if h.Status() != StatusNg {
		t.Errorf("hierarchy status = %v, want Ng", h.Status())
	}
}

func TestHierarchyCounts(t *testing.T) {
	h := Hierarchy{
		NewGroup("X", []Node{
			NewNode(NodeA, contents(StatusOk, StatusOk)),
			NewNode(NodeB, contents(StatusOk, StatusNg)),
		}),
		NewGroup("Y", []Node{
			NewNode(NodeA, contents(StatusWarning)),
		}),
	}
	c := h.Counts()
	if c.Groups != 2 || c.Nodes != 3 || c.Contents != 5 {
		t.Errorf("counts = %+v", c)
	}
	if c.ByStatus[StatusOk] != 3 || c.ByStatus[StatusWarning] != 1 || c.ByStatus[StatusNg] != 1 {
		t.Errorf("by status = %v", c.ByStatus)
	}
}

func TestParseNodeKind(t *testing.T) {
	for _, k := range AllNodeKinds() {
		got, err := ParseNodeKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseNodeKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseNodeKind("nodee"); err != nil || got != NodeE {
		t.Errorf("ParseNodeKind(nodee) = %v, %v", got, err)
	}
	if _, err := ParseNodeKind("NodeZ"); !errors.Is(err, ErrUnknownNodeKind) {
		t.Errorf("expected ErrUnknownNodeKind, got %v", err)
	}
	if len(AllNodeKinds()) != 5 {
		t.Errorf("expected 5 node kinds, got %d", len(AllNodeKinds()))
	}
}

func TestDocumentReaggregates(t *testing.T) {
	wrong := StatusOk
	doc := Document{Groups: []GroupDoc{{
		Name:   "X",
		Status: &wrong,
		Nodes: []NodeDoc{{
			Kind:     NodeA,
			Status:   &wrong,
			Contents: contents(StatusOk, StatusNg),
		}},
	}}}

	if got := doc.StaleStatuses(); got != 2 {
		t.Errorf("StaleStatuses() = %d, want 2", got)
	}

	h := doc.Hierarchy()
	if h[0].Status() != StatusNg || h[0].Nodes()[0].Status() != StatusNg {
		t.Errorf("statuses were not re-aggregated: group=%v node=%v", h[0].Status(), h[0].Nodes()[0].Status())
	}

	back := NewDocument(h)
	if back.StaleStatuses() != 0 {
		t.Error("document built from a hierarchy should carry consistent statuses")
	}
	if *back.Groups[0].Status != StatusNg {
		t.Errorf("document group status = %v, want Ng", *back.Groups[0].Status)
	}
}
