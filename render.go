package liquidlogo

import (
	"errors"
	"fmt"
)

// ErrNilPixmap is returned when Render is called with a nil pixmap.
var ErrNilPixmap = errors.New("liquidlogo: nil pixmap")

// Render runs the full bevel-field pipeline on a source pixmap and
// returns the (grayscale, coverage) output at the source resolution,
// together with solver metrics.
//
// The pipeline classifies the shape mask, detects the Dirichlet
// boundary, builds the sparse neighbor index, runs the relaxation solve,
// and normalizes the field into the output. In working-resolution mode
// (and in direct mode when the source falls outside the solve-size
// band), the solve runs on a resampled grid and the result is upsampled
// and reconciled against the full-resolution mask.
//
// Render owns all of its intermediate state exclusively: nothing is
// shared or cached across calls, and identical input plus identical
// options produces identical output. Invalid input (nil pixmap, zero
// dimensions, truncated buffer) fails fast before any mask work, with
// no partial output.
func Render(pm *Pixmap, opts ...Option) (*Output, Stats, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if pm == nil {
		return nil, Stats{}, ErrNilPixmap
	}
	if pm.width <= 0 || pm.height <= 0 {
		return nil, Stats{}, fmt.Errorf("liquidlogo: invalid dimensions %dx%d (both must be > 0)", pm.width, pm.height)
	}
	if len(pm.data) != pm.width*pm.height*4 {
		return nil, Stats{}, fmt.Errorf("liquidlogo: pixel buffer holds %d bytes, need %d for %dx%d RGBA",
			len(pm.data), pm.width*pm.height*4, pm.width, pm.height)
	}

	// Choose the grid the solve actually runs on.
	var sw, sh int
	if cfg.working {
		sw, sh = fitLongSide(pm.width, pm.height, cfg.workingSize)
		if cfg.fixedSweeps <= 0 {
			cfg.fixedSweeps = cfg.workingSweeps
		}
	} else {
		sw, sh = clampSolveSize(pm.width, pm.height)
	}

	solvePm := pm
	if sw != pm.width || sh != pm.height {
		solvePm = resizePixmap(pm, sw, sh)
		Logger().Debug("solving at reduced resolution",
			"source", []int{pm.width, pm.height},
			"grid", []int{sw, sh},
			"working", cfg.working)
	}

	mask := NewMask(solvePm)
	var table *NeighborTable
	if cfg.useTable {
		table = BuildNeighborTable(mask)
	}

	field, stats := solve(mask, table, &cfg)
	out := normalize(field, mask, cfg.contrast)

	if sw != pm.width || sh != pm.height {
		up := upsampleImage(out.ToImage(), pm.width, pm.height)
		out = reconcile(up, pm, NewMask(pm))
	}

	return out, stats, nil
}
