package liquidlogo

// Mask is the binary classification of a pixmap into logo shape and
// background, together with the derived Dirichlet boundary band.
//
// A pixel is outside the shape iff it is fully opaque pure white
// (255,255,255,255) or fully transparent (alpha 0); every other pixel is
// inside. The rule is exact equality with no tolerance: anti-aliased edge
// pixels with any non-255 channel or partial alpha count as inside, and
// edge reconciliation happens during output remapping instead.
//
// A boundary pixel is an inside pixel with at least one 8-connected
// neighbor that is off-grid or outside the shape. Boundary pixels are
// clamped to potential 0 for the whole solve. The remaining inside
// pixels form the interior, the unknowns of the linear system.
//
// A Mask is built once from a Pixmap and never mutated afterward.
type Mask struct {
	width  int
	height int

	inside   []bool
	boundary []bool

	// interior holds the linear indices of inside, non-boundary pixels
	// in row-major order.
	interior []int32
}

// NewMask classifies a pixmap into shape, boundary, and interior.
func NewMask(pm *Pixmap) *Mask {
	w, h := pm.width, pm.height
	m := &Mask{
		width:    w,
		height:   h,
		inside:   make([]bool, w*h),
		boundary: make([]bool, w*h),
	}

	data := pm.data
	for i := 0; i < w*h; i++ {
		r := data[i*4+0]
		g := data[i*4+1]
		b := data[i*4+2]
		a := data[i*4+3]
		opaqueWhite := r == 255 && g == 255 && b == 255 && a == 255
		m.inside[i] = !opaqueWhite && a != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !m.inside[i] {
				continue
			}
			if m.touchesOutside(x, y) {
				m.boundary[i] = true
			} else {
				m.interior = append(m.interior, int32(i))
			}
		}
	}

	return m
}

// touchesOutside reports whether any 8-connected neighbor of (x, y) is
// off-grid or outside the shape. Off-grid always counts as outside.
// Returns on the first outside neighbor found.
func (m *Mask) touchesOutside(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
				return true
			}
			if !m.inside[ny*m.width+nx] {
				return true
			}
		}
	}
	return false
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Inside reports whether (x, y) is part of the shape.
// Coordinates outside the mask bounds are never part of the shape.
func (m *Mask) Inside(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.inside[y*m.width+x]
}

// Boundary reports whether (x, y) is a boundary pixel.
func (m *Mask) Boundary(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.boundary[y*m.width+x]
}

// Interior reports whether (x, y) is an interior pixel (inside the shape
// and not on the boundary).
func (m *Mask) Interior(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	i := y*m.width + x
	return m.inside[i] && !m.boundary[i]
}

// InteriorIndices returns the linear indices of all interior pixels in
// row-major order. The returned slice is owned by the mask and must not
// be modified.
func (m *Mask) InteriorIndices() []int32 {
	return m.interior
}

// InteriorCount returns the number of interior pixels, the size of the
// linear system the solver works on.
func (m *Mask) InteriorCount() int {
	return len(m.interior)
}
