package main

import (
	"math"

	"github.com/lixenwraith/pbd/vmath"
)

// Viewport maps world units (y up) to terminal cells (row 0 at top)
// Cells are roughly twice as tall as wide, so the vertical scale is doubled
type Viewport struct {
	Cols, Rows int
	ScaleX     float64 // world units per column
	ScaleY     float64 // world units per row
}

func NewViewport(cols, rows int) Viewport {
	return Viewport{Cols: cols, Rows: rows, ScaleX: 8, ScaleY: 16}
}

// World returns the world extent covered by the screen
func (v Viewport) World() (w, h float64) {
	return float64(v.Cols) * v.ScaleX, float64(v.Rows) * v.ScaleY
}

// ToCell returns the cell containing world point p
func (v Viewport) ToCell(p vmath.Vec3) (col, row int) {
	_, h := v.World()
	return floorInt(p[0] / v.ScaleX), floorInt((h - p[1]) / v.ScaleY)
}

// ToWorld returns the world point at the center of a cell
func (v Viewport) ToWorld(col, row int) vmath.Vec3 {
	_, h := v.World()
	return vmath.V2((float64(col)+0.5)*v.ScaleX, h-(float64(row)+0.5)*v.ScaleY)
}

func (v Viewport) Visible(col, row int) bool {
	return col >= 0 && col < v.Cols && row >= 0 && row < v.Rows
}

func floorInt(f float64) int {
	return int(math.Floor(f))
}

// ToCellF returns fractional cell coordinates of world point p
func (v Viewport) ToCellF(p vmath.Vec3) (col, row float64) {
	_, h := v.World()
	return p[0] / v.ScaleX, (h - p[1]) / v.ScaleY
}

// maxWalk bounds a single walk so a vertex flung far off screen cannot stall a frame
const maxWalk = 4096

// cellWalker iterates every cell a segment passes through (supercover DDA)
// Coordinates are fractional cells
type cellWalker struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	steps   int
	started bool
	done    bool
}

func newCellWalker(x1, y1, x2, y2 float64) cellWalker {
	for _, f := range [4]float64{x1, y1, x2, y2} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cellWalker{done: true}
		}
	}

	w := cellWalker{
		currX: floorInt(x1), currY: floorInt(y1),
		targetX: floorInt(x2), targetY: floorInt(y2),
		stepX: 1, stepY: 1,
	}

	dx, dy := x2-x1, y2-y1
	if dx < 0 {
		w.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		w.stepY = -1
		dy = -dy
	}

	if dx == 0 {
		w.tMaxX = math.Inf(1)
	} else {
		w.tDeltaX = 1 / dx
		fx := x1 - math.Floor(x1)
		if w.stepX > 0 {
			w.tMaxX = (1 - fx) * w.tDeltaX
		} else {
			w.tMaxX = fx * w.tDeltaX
		}
	}

	if dy == 0 {
		w.tMaxY = math.Inf(1)
	} else {
		w.tDeltaY = 1 / dy
		fy := y1 - math.Floor(y1)
		if w.stepY > 0 {
			w.tMaxY = (1 - fy) * w.tDeltaY
		} else {
			w.tMaxY = fy * w.tDeltaY
		}
	}

	return w
}

// Next advances to the next cell; the first call yields the start cell
func (w *cellWalker) Next() bool {
	if w.done {
		return false
	}
	if !w.started {
		w.started = true
		return true
	}
	if (w.currX == w.targetX && w.currY == w.targetY) || w.steps >= maxWalk {
		w.done = true
		return false
	}
	w.steps++

	switch {
	case w.tMaxX < w.tMaxY:
		if w.currX != w.targetX {
			w.stepAlongX()
		} else {
			w.stepAlongY()
		}
	case w.tMaxX > w.tMaxY:
		if w.currY != w.targetY {
			w.stepAlongY()
		} else {
			w.stepAlongX()
		}
	default:
		// Exact corner crossing
		if w.currX != w.targetX {
			w.stepAlongX()
		}
		if w.currY != w.targetY {
			w.stepAlongY()
		}
	}
	return true
}

func (w *cellWalker) stepAlongX() {
	w.currX += w.stepX
	w.tMaxX += w.tDeltaX
}

func (w *cellWalker) stepAlongY() {
	w.currY += w.stepY
	w.tMaxY += w.tDeltaY
}

func (w *cellWalker) Pos() (int, int) {
	return w.currX, w.currY
}
