// Package scene defines the retained-mode canvas port the renderer draws
// onto, and the node vocabulary it draws with.
//
// The port is deliberately narrow: add and remove nodes, move them,
// resize and repaint the surface, serialize for the editor. Everything
// graphics-library-specific lives behind an implementation — Mem keeps
// nodes in memory for tests and the editor model, ggcanvas rasterizes
// through the gg drawing context.
package scene

import (
	"errors"

	"github.com/sitesmith/studio/schema"
)

// ErrNodeNotFound is returned by node mutations addressing an unknown id.
var ErrNodeNotFound = errors.New("scene: node not found")

// ErrDuplicateNode is returned when adding a node whose id is taken.
var ErrDuplicateNode = errors.New("scene: duplicate node id")

// Transform repositions an existing node.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Canvas is the drawing surface contract. Node order is z-order: the
// last added node paints in front. A canvas is a single mutable resource;
// the renderer assumes exclusive ownership for the duration of a render
// pass, and concurrent renders onto one canvas are unsafe by
// construction.
type Canvas interface {
	// AddNode appends a node at the front of the z-order.
	AddNode(n Node) error

	// RemoveNode deletes the node with the given id.
	RemoveNode(id string) error

	// SetTransform moves the node with the given id.
	SetTransform(id string, t Transform) error

	// SetSize sets the pixel dimensions of the surface.
	SetSize(width, height float64)

	// SetBackground repaints the surface background.
	SetBackground(bg schema.Background)

	// Clear removes every node.
	Clear()

	// Nodes returns the nodes in z-order (back to front).
	Nodes() []Node

	// Serialize returns the editor-facing JSON form of the scene.
	Serialize() ([]byte, error)
}
