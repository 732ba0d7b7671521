package liquidlogo

// Option configures a single Render invocation.
// Use functional options to customize solver behavior.
//
// Example:
//
//	// Defaults: SOR, direct mode, fixed sweep count from the scaling law
//	out, stats, err := liquidlogo.Render(pm)
//
//	// Jacobi with adaptive termination
//	out, stats, err := liquidlogo.Render(pm,
//	    liquidlogo.WithMethod(liquidlogo.Jacobi),
//	    liquidlogo.WithAdaptiveConvergence(1e-4))
type Option func(*config)

// config holds the per-invocation configuration. There is deliberately
// no process-wide tunable state: every Render call builds its own config
// from the defaults plus options and threads it through the pipeline.
type config struct {
	method Method

	source float64 // constant source term C
	omega  float64 // SOR relaxation factor

	adaptive  bool
	threshold float64
	maxSweeps int

	// fixedSweeps > 0 bypasses the resolution scaling law.
	fixedSweeps int

	working       bool
	workingSize   int
	workingSweeps int

	gradientProportion float64
	referenceSize      int

	contrast float64

	workers  int
	useTable bool
}

func defaultConfig() config {
	return config{
		method:             SOR,
		source:             defaultSourceTerm,
		omega:              defaultOmega,
		threshold:          defaultThreshold,
		maxSweeps:          sweepHardCap,
		workingSize:        defaultWorkingSize,
		workingSweeps:      defaultWorkingSweeps,
		gradientProportion: baseGradientProportion,
		referenceSize:      defaultReferenceSize,
		contrast:           1.0,
		workers:            1,
		useTable:           true,
	}
}

// WithMethod selects the relaxation update discipline.
// The default is SOR.
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

// WithSourceTerm sets the constant source term C of the Poisson
// equation. Larger values steepen the potential everywhere but cancel
// out in normalization; the default is 0.01.
func WithSourceTerm(source float64) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithRelaxationFactor sets the SOR blend factor ω. Values above 1
// over-relax and accelerate convergence; the useful range is (0, 2).
// The default is 1.9. Ignored by Jacobi and Gauss-Seidel.
func WithRelaxationFactor(omega float64) Option {
	return func(c *config) {
		c.omega = omega
	}
}

// WithAdaptiveConvergence switches termination from a fixed sweep count
// to residual-based convergence: every 10th sweep the RMS residual over
// interior pixels is computed, and the solve stops as soon as it falls
// below threshold, or when the maximum sweep count is reached.
func WithAdaptiveConvergence(threshold float64) Option {
	return func(c *config) {
		c.adaptive = true
		c.threshold = threshold
	}
}

// WithMaxSweeps caps the number of relaxation sweeps for any
// termination policy.
func WithMaxSweeps(n int) Option {
	return func(c *config) {
		c.maxSweeps = n
	}
}

// WithFixedSweeps forces an exact sweep count, bypassing the resolution
// scaling law. Ignored when adaptive convergence is enabled.
func WithFixedSweeps(n int) Option {
	return func(c *config) {
		c.fixedSweeps = n
	}
}

// WithWorkingResolution enables working-resolution mode: the solve runs
// on a grid whose longer side is size pixels (0 selects the default of
// 500), and the result is upsampled back to the source resolution and
// reconciled against the full-resolution mask. Much faster than a
// full-resolution solve on large sources, at some loss of grid-level
// accuracy.
func WithWorkingResolution(size int) Option {
	return func(c *config) {
		c.working = true
		if size > 0 {
			c.workingSize = size
		}
	}
}

// WithGradientProportion sets the target gradient width as a proportion
// of the shape size. The sweep count scales linearly with this value
// relative to the baseline of 0.25: gradient half-width grows with the
// square root of the sweep count, so doubling the desired width costs
// four times the sweeps.
func WithGradientProportion(p float64) Option {
	return func(c *config) {
		c.gradientProportion = p
	}
}

// WithReferenceSize sets the grid dimension at which the per-method base
// sweep counts are calibrated. The default is 400.
func WithReferenceSize(size int) Option {
	return func(c *config) {
		c.referenceSize = size
	}
}

// WithContrast sets the power-law exponent α applied during
// normalization: gray = 255·(1 − (u/max)^α). The default of 1.0 is a
// linear remap; larger values push the bright core outward.
func WithContrast(alpha float64) Option {
	return func(c *config) {
		c.contrast = alpha
	}
}

// WithWorkers sets the number of goroutines used within each red or
// black half-sweep. The parity split makes every update within one
// half-sweep independent, so parallel execution changes timing only,
// never numerical results. The default of 1 runs serially; 0 selects
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithoutNeighborTable disables the precomputed sparse neighbor index.
// The solver then resolves neighbor contributions on the fly with
// per-pixel bounds and mask checks. Numerically identical to the
// indexed path and slower; useful for comparison and for very small
// one-shot grids where the precomputation does not pay off.
func WithoutNeighborTable() Option {
	return func(c *config) {
		c.useTable = false
	}
}
