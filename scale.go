package liquidlogo

import (
	"image"

	"golang.org/x/image/draw"
)

// Solver tuning constants. Base sweep counts are calibrated so that a
// grid whose shorter side equals defaultReferenceSize produces a
// gradient of baseGradientProportion of the shape size; everything else
// is derived from them by the scaling law in sweepsFor.
const (
	defaultSourceTerm = 0.01
	defaultOmega      = 1.9
	defaultThreshold  = 1e-4

	// Longer-side band the direct-mode solve resolution is clamped into.
	minSolveSize = 64
	maxSolveSize = 1600

	defaultReferenceSize   = 400
	baseGradientProportion = 0.25

	// Hard cap on sweeps for any termination policy.
	sweepHardCap = 4000

	defaultWorkingSize   = 500
	defaultWorkingSweeps = 100
)

// baseSweeps returns the per-discipline sweep count at the reference
// size and gradient proportion. Red-black disciplines converge roughly
// twice as fast per sweep as Jacobi, and SOR faster still.
func baseSweeps(m Method) int {
	switch m {
	case Jacobi:
		return 400
	case GaussSeidel:
		return 200
	default:
		return 120
	}
}

// sweepsFor derives the fixed sweep count for a solve grid.
//
// The gradient half-width of the diffusion grows with the square root of
// the sweep count, so holding the rendered gradient proportionally
// consistent requires sweeps to scale quadratically with resolution and
// linearly with the gradient-proportion target: doubling the desired
// gradient width costs 4× the sweeps, as does doubling the linear
// resolution.
func sweepsFor(m Method, w, h int, gradientProportion float64, referenceSize int) int {
	short := w
	if h < short {
		short = h
	}
	scale := float64(short) / float64(referenceSize)
	n := int(float64(baseSweeps(m)) * scale * scale * (gradientProportion / baseGradientProportion))
	if n < 1 {
		n = 1
	}
	if n > sweepHardCap {
		n = sweepHardCap
	}
	return n
}

// clampSolveSize clamps the longer side of (w, h) into the
// [minSolveSize, maxSolveSize] band, preserving aspect ratio. Sizes
// already within the band come back unchanged.
func clampSolveSize(w, h int) (int, int) {
	long := w
	if h > long {
		long = h
	}
	switch {
	case long < minSolveSize:
		return fitLongSide(w, h, minSolveSize)
	case long > maxSolveSize:
		return fitLongSide(w, h, maxSolveSize)
	default:
		return w, h
	}
}

// fitLongSide scales (w, h) so the longer side equals target, preserving
// aspect ratio. Neither dimension drops below 1.
func fitLongSide(w, h, target int) (int, int) {
	if w >= h {
		nh := h * target / w
		if nh < 1 {
			nh = 1
		}
		return target, nh
	}
	nw := w * target / h
	if nw < 1 {
		nw = 1
	}
	return nw, target
}

// resizePixmap resamples a pixmap to (w, h) with the Catmull-Rom kernel.
// Used to bring the source down to the solve resolution; the quality
// kernel matters here because the mask classification runs on the
// result.
func resizePixmap(pm *Pixmap, w, h int) *Pixmap {
	if w == pm.width && h == pm.height {
		return pm
	}
	src := pm.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// upsampleImage resamples an image to (w, h) with the bilinear kernel.
// Used to bring the solved low-resolution output back up to source
// resolution before mask reconciliation.
func upsampleImage(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
