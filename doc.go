// Package liquidlogo computes a smooth, radially-graded bevel intensity
// field inside an arbitrary 2D shape derived from a logo image.
//
// # Overview
//
// Given an RGBA pixel buffer, the package classifies pixels into logo
// shape and background, then solves a discrete screened-Poisson problem
// (Δu = −C with u = 0 on the shape boundary) by relaxation. The solved
// potential field is zero at the shape edge and grows toward the
// interior, producing a soft raised-edge look when rendered.
//
// # Quick Start
//
//	import liquidlogo "github.com/WiikDev/liquid-logo"
//
//	pm := liquidlogo.FromImage(img)
//	out, stats, err := liquidlogo.Render(pm)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out.SavePNG("bevel.png")
//
// # Pipeline
//
// The pipeline runs mask classification, boundary detection, sparse
// neighbor indexing, relaxation sweeps, and normalization as one
// sequential computation:
//
//	Pixmap → Mask → NeighborTable → relaxation solve → Output
//
// Three update disciplines are available: Jacobi, Gauss-Seidel, and
// successive over-relaxation (SOR), the latter two using red-black
// checkerboard ordering. SOR is the default.
//
// # Resolution scaling
//
// The gradient half-width of the diffusion grows with the square root of
// the sweep count, so the sweep count scales quadratically with grid
// resolution to keep the rendered gradient proportionally consistent
// across image sizes. Alternatively, working-resolution mode solves on a
// small fixed grid and upsamples, reconciling the result against the
// full-resolution mask to preserve anti-aliased edges.
//
// # Scope
//
// Image decoding, vector rasterization, and final encoding are the
// caller's concern; the package consumes a Pixmap and produces an Output
// of (grayscale, coverage) byte pairs at the source resolution.
package liquidlogo
