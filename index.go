package liquidlogo

// noNeighbor marks a stencil slot with no contribution: the neighbor is
// off-grid or not part of the shape, and counts as potential 0.
const noNeighbor int32 = -1

// Stencil slot order within a neighbor row.
const (
	nbEast = iota
	nbWest
	nbNorth
	nbSouth
)

// NeighborTable precomputes, for every interior pixel, the linear pixel
// indices of its four axis-aligned neighbors, plus the red-black parity
// partition of the interior. It exists purely to keep bounds and mask
// checks out of the hot relaxation loop.
//
// A neighbor slot holds the neighbor's linear index iff that neighbor
// lies within the grid and is itself inside the shape; boundary pixels
// qualify and contribute their clamped 0 value through the field.
// Off-grid or outside-shape neighbors hold noNeighbor.
//
// Built once from a Mask, read-only during solving.
type NeighborTable struct {
	// interior aliases the mask's interior index list; neighbors is
	// aligned with it row for row.
	interior  []int32
	neighbors [][4]int32

	// red and black hold positions into interior/neighbors, split by
	// (x+y) parity. Every interior pixel appears in exactly one class,
	// and within one class no pixel is an axis-aligned neighbor of
	// another, which is what makes the half-sweeps order-independent.
	red   []int32
	black []int32
}

// BuildNeighborTable resolves the four stencil neighbors of every
// interior pixel of the mask and partitions the interior by parity.
func BuildNeighborTable(m *Mask) *NeighborTable {
	interior := m.InteriorIndices()
	t := &NeighborTable{
		interior:  interior,
		neighbors: make([][4]int32, len(interior)),
	}

	w, h := m.width, m.height
	for k, p := range interior {
		x := int(p) % w
		y := int(p) / w

		row := [4]int32{noNeighbor, noNeighbor, noNeighbor, noNeighbor}
		if x+1 < w && m.inside[p+1] {
			row[nbEast] = p + 1
		}
		if x-1 >= 0 && m.inside[p-1] {
			row[nbWest] = p - 1
		}
		if y-1 >= 0 && m.inside[p-int32(w)] {
			row[nbNorth] = p - int32(w)
		}
		if y+1 < h && m.inside[p+int32(w)] {
			row[nbSouth] = p + int32(w)
		}
		t.neighbors[k] = row

		if (x+y)&1 == 0 {
			t.red = append(t.red, int32(k))
		} else {
			t.black = append(t.black, int32(k))
		}
	}

	return t
}

// Len returns the number of interior pixels covered by the table.
func (t *NeighborTable) Len() int {
	return len(t.interior)
}

// stencilSum adds up the potentials of the contributing neighbors of
// interior row k. Missing neighbors contribute 0.
func (t *NeighborTable) stencilSum(u []float64, k int32) float64 {
	row := &t.neighbors[k]
	var s float64
	if row[nbEast] != noNeighbor {
		s += u[row[nbEast]]
	}
	if row[nbWest] != noNeighbor {
		s += u[row[nbWest]]
	}
	if row[nbNorth] != noNeighbor {
		s += u[row[nbNorth]]
	}
	if row[nbSouth] != noNeighbor {
		s += u[row[nbSouth]]
	}
	return s
}
