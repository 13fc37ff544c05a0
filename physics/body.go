package physics

import (
	"fmt"
	"slices"
)

// Body groups vertices for collective velocity damping
// Insertion order is kept; it drives center-of-mass sums and drawable order
// Constraints are owned by the System, not the body
type Body struct {
	Name     string
	vertices []*Vertex
}

func NewBody(name string) *Body {
	return &Body{Name: name}
}

// AddVertex appends v; a vertex belongs to at most one body
func (b *Body) AddVertex(v *Vertex) error {
	if v == nil {
		return ErrNilVertex
	}
	if v.body != nil && v.body != b {
		return fmt.Errorf("add to body %q: %w", b.Name, ErrVertexOwned)
	}
	if v.body == b {
		return nil
	}
	v.body = b
	b.vertices = append(b.vertices, v)
	return nil
}

// Vertices returns a copy of the vertex list in insertion order
func (b *Body) Vertices() []*Vertex {
	return slices.Clone(b.vertices)
}

func (b *Body) Len() int {
	return len(b.vertices)
}

// Contains reports whether v was added to this body
func (b *Body) Contains(v *Vertex) bool {
	return v != nil && v.body == b
}

// FindVertexAt returns the first vertex whose pick radius covers (x, y)
func (b *Body) FindVertexAt(x, y float64) *Vertex {
	for _, v := range b.vertices {
		if v.HitTest(x, y) {
			return v
		}
	}
	return nil
}
