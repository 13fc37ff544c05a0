package physics

import (
	"fmt"

	"github.com/lixenwraith/pbd/vmath"
)

// Shape builders add a body and its constraints to a system in one call
// Gravity is applied as a force of -g·m along Y to every dynamic vertex

func applyGravity(v *Vertex, g float64) {
	v.AddForce(vmath.V2(0, -g*v.mass))
}

// NewRope builds a chain of segments+1 vertices from start along dir, linked by rigid distance constraints
// The first vertex is an anchor vertex when anchored is set
func NewRope(s *System, name string, start, dir vmath.Vec3, length float64, segments int, anchored bool, gravity float64) (*Body, error) {
	if segments < 1 {
		return nil, fmt.Errorf("rope %q: %d segments: %w", name, segments, ErrInvalidSize)
	}
	if !validSize(length) {
		return nil, fmt.Errorf("rope %q length %g: %w", name, length, ErrInvalidSize)
	}
	dir = vmath.V3Normalize(dir)
	if dir == (vmath.Vec3{}) {
		return nil, fmt.Errorf("rope %q: zero direction: %w", name, ErrInvalidSize)
	}

	rope := NewBody(name)

	var head *Vertex
	if anchored {
		head = NewAnchorVertex(start[0], start[1])
	} else {
		v, err := NewVertex(start[0], start[1], 1)
		if err != nil {
			return nil, err
		}
		head = v
	}
	applyGravity(head, gravity)
	if err := rope.AddVertex(head); err != nil {
		return nil, err
	}

	links := make([]Constraint, 0, segments)
	step := length / float64(segments)
	prev := head
	for i := 1; i <= segments; i++ {
		p := start.Add(dir.Mul(float64(i) * step))
		v, err := NewVertex(p[0], p[1], 1)
		if err != nil {
			return nil, err
		}
		applyGravity(v, gravity)
		if err := rope.AddVertex(v); err != nil {
			return nil, err
		}
		link, err := NewDistanceConstraintAtRest(1, prev, v)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
		prev = v
	}

	s.AddBody(rope)
	for _, c := range links {
		s.AddConstraint(c)
	}
	return rope, nil
}

// NewBox builds a four-vertex box held rigid by its perimeter and both diagonals
// Vertices are ordered top-left, top-right, bottom-right, bottom-left
func NewBox(s *System, name string, center, size vmath.Vec3, gravity float64) (*Body, error) {
	if !validSize(size[0]) || !validSize(size[1]) {
		return nil, fmt.Errorf("box %q %gx%g: %w", name, size[0], size[1], ErrInvalidSize)
	}

	hw, hh := 0.5*size[0], 0.5*size[1]
	corners := [4]vmath.Vec3{
		vmath.V2(center[0]-hw, center[1]+hh),
		vmath.V2(center[0]+hw, center[1]+hh),
		vmath.V2(center[0]+hw, center[1]-hh),
		vmath.V2(center[0]-hw, center[1]-hh),
	}

	box := NewBody(name)
	var vs [4]*Vertex
	for i, c := range corners {
		v, err := NewVertex(c[0], c[1], 1)
		if err != nil {
			return nil, err
		}
		applyGravity(v, gravity)
		if err := box.AddVertex(v); err != nil {
			return nil, err
		}
		vs[i] = v
	}

	pairs := [][2]int{
		{0, 1}, {3, 2}, {0, 3}, {1, 2}, // perimeter
		{0, 2}, {1, 3}, // diagonals
	}
	links := make([]Constraint, 0, len(pairs))
	for _, p := range pairs {
		link, err := NewDistanceConstraintAtRest(1, vs[p[0]], vs[p[1]])
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	s.AddBody(box)
	for _, c := range links {
		s.AddConstraint(c)
	}
	return box, nil
}

// NewFabric builds an nx by ny grid hanging down from (x, y), rows spaced height/ny apart
// The top row is pinned with anchor constraints; two anchor vertices cannot share a distance constraint
// so pinning uses constraints instead of anchor vertices
func NewFabric(s *System, name string, x, y, width, height float64, nx, ny int, gravity float64) (*Body, error) {
	if nx < 1 || ny < 1 || !validSize(width) || !validSize(height) {
		return nil, fmt.Errorf("fabric %q %dx%d: %w", name, nx, ny, ErrInvalidSize)
	}

	segW := width / float64(nx)
	segH := height / float64(ny)

	fabric := NewBody(name)
	var links []Constraint
	grid := make([][]*Vertex, ny)

	for i := range ny {
		grid[i] = make([]*Vertex, nx)
		for j := range nx {
			v, err := NewVertex(x+float64(j)*segW, y-float64(i)*segH, 1)
			if err != nil {
				return nil, err
			}
			if err := fabric.AddVertex(v); err != nil {
				return nil, err
			}
			grid[i][j] = v

			if j > 0 {
				link, err := NewDistanceConstraint(1, grid[i][j-1], v, segW)
				if err != nil {
					return nil, err
				}
				links = append(links, link)
			}

			if i == 0 {
				pin, err := NewAnchorConstraint(v, v.pos[0], v.pos[1])
				if err != nil {
					return nil, err
				}
				links = append(links, pin)
				continue
			}

			link, err := NewDistanceConstraint(1, grid[i-1][j], v, segH)
			if err != nil {
				return nil, err
			}
			links = append(links, link)
			applyGravity(v, gravity)
		}
	}

	s.AddBody(fabric)
	for _, c := range links {
		s.AddConstraint(c)
	}
	return fabric, nil
}
