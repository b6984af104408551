package store

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"grid-canvas/errors"
	"grid-canvas/graph"
	"grid-canvas/placement"
)

// Severity grades a layout issue.
type Severity int

const (
	// Warning issues are tolerated: overlapping siblings are allowed and
	// only flagged.
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is one problem found by Check.
type Issue struct {
	NodeID   string
	Severity Severity
	Code     errors.Code
	Message  string
}

// Report is the result of Check.
type Report struct {
	Nodes  int
	Issues []Issue
}

// Errors returns the number of error-level issues.
func (r Report) Errors() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == Error {
			n++
		}
	}
	return n
}

// Err joins the error-level issues into one error, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, is := range r.Issues {
		if is.Severity == Error {
			errs = append(errs, errors.New(is.Code, "%s: %s", is.NodeID, is.Message))
		}
	}
	return errors.Join(errs...)
}

// Check validates the tree against a grid of the given column count:
// parents must exist and be canvases, the tree must be acyclic, nodes must
// have a positive size and fit horizontally, and overlapping siblings are
// reported as warnings.
func (s *Store) Check(columns int) Report {
	rep := Report{Nodes: len(s.nodes)}
	add := func(id string, sev Severity, code errors.Code, format string, args ...any) {
		rep.Issues = append(rep.Issues, Issue{NodeID: id, Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := s.Order(); err != nil {
		var cyc *graph.CycleError
		if stderrors.As(err, &cyc) {
			add(strings.Join(cyc.IDs, ","), Error, errors.ErrCodeCycle, "parent links form a cycle")
		}
	}

	for _, n := range s.Nodes() {
		if n.ID == s.root {
			continue
		}
		if n.W <= 0 || n.H <= 0 {
			add(n.ID, Error, errors.ErrCodeOutOfBounds, "size %dx%d is not positive", n.W, n.H)
		}
		if n.X < 0 || n.Y < 0 || n.X+n.W > columns {
			add(n.ID, Error, errors.ErrCodeOutOfBounds, "cells (%d,%d)+(%d,%d) fall outside %d columns", n.X, n.Y, n.W, n.H, columns)
		}
		if n.VerticalOnly && n.X != 0 {
			add(n.ID, Error, errors.ErrCodeOutOfBounds, "vertical-only node sits in column %d", n.X)
		}
		if p, ok := s.nodes[n.ParentID]; ok && !p.IsCanvas() {
			add(n.ID, Error, errors.ErrCodeInvalidLayout, "parent %q is not a canvas", p.ID)
		}
		siblings := s.Children(n.ParentID)
		for _, other := range placement.Conflicting(n.Rect(), siblings, n.ID) {
			if n.ID < other {
				add(n.ID, Warning, errors.ErrCodeConflict, "overlaps %s", other)
			}
		}
	}

	for id, n := range s.nodes {
		if id == s.root {
			continue
		}
		if _, ok := s.nodes[n.ParentID]; !ok {
			add(id, Error, errors.ErrCodeNodeNotFound, "parent %q does not exist", n.ParentID)
		}
	}
	sort.SliceStable(rep.Issues, func(i, j int) bool { return rep.Issues[i].NodeID < rep.Issues[j].NodeID })
	return rep
}
