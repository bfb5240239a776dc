package scene

import (
	"encoding/json"

	"github.com/sitesmith/studio/schema"
)

// Mem is an in-memory Canvas. It is the scene model behind the editor's
// selection and serialization surface, and the substitute canvas in
// renderer tests. Mem is not safe for concurrent use, matching the
// exclusive-ownership contract of the port.
type Mem struct {
	width, height float64
	background    schema.Background
	nodes         []Node
	index         map[string]int
}

// NewMem creates an empty in-memory canvas.
func NewMem() *Mem {
	return &Mem{index: make(map[string]int)}
}

// AddNode implements Canvas.
func (m *Mem) AddNode(n Node) error {
	id := n.Base().ID
	if _, ok := m.index[id]; ok {
		return ErrDuplicateNode
	}
	m.index[id] = len(m.nodes)
	m.nodes = append(m.nodes, n)
	return nil
}

// RemoveNode implements Canvas.
func (m *Mem) RemoveNode(id string) error {
	i, ok := m.index[id]
	if !ok {
		return ErrNodeNotFound
	}
	m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)
	delete(m.index, id)
	for j := i; j < len(m.nodes); j++ {
		m.index[m.nodes[j].Base().ID] = j
	}
	return nil
}

// SetTransform implements Canvas.
func (m *Mem) SetTransform(id string, t Transform) error {
	i, ok := m.index[id]
	if !ok {
		return ErrNodeNotFound
	}
	b := m.nodes[i].Base()
	b.X, b.Y, b.Rotation = t.X, t.Y, t.Rotation
	return nil
}

// SetSize implements Canvas.
func (m *Mem) SetSize(width, height float64) {
	m.width, m.height = width, height
}

// SetBackground implements Canvas.
func (m *Mem) SetBackground(bg schema.Background) {
	m.background = bg
}

// Clear implements Canvas.
func (m *Mem) Clear() {
	m.nodes = nil
	m.index = make(map[string]int)
}

// Nodes implements Canvas. The returned slice is the canvas's own
// ordering; callers must not reorder it.
func (m *Mem) Nodes() []Node {
	return m.nodes
}

// Size returns the surface dimensions.
func (m *Mem) Size() (width, height float64) {
	return m.width, m.height
}

// Background returns the current surface background.
func (m *Mem) Background() schema.Background {
	return m.background
}

// serializedNode wraps a node with its kind tag for the editor.
type serializedNode struct {
	Kind Kind `json:"kind"`
	Node Node `json:"node"`
}

// serializedScene is the editor-facing JSON shape.
type serializedScene struct {
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background schema.Background `json:"background"`
	Nodes      []serializedNode  `json:"nodes"`
}

// Serialize implements Canvas.
func (m *Mem) Serialize() ([]byte, error) {
	out := serializedScene{
		Width:      m.width,
		Height:     m.height,
		Background: m.background,
		Nodes:      make([]serializedNode, len(m.nodes)),
	}
	for i, n := range m.nodes {
		out.Nodes[i] = serializedNode{Kind: n.Kind(), Node: n}
	}
	return json.Marshal(out)
}
