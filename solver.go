package liquidlogo

import (
	"math"
	"time"

	"github.com/WiikDev/liquid-logo/internal/parallel"
)

// Method selects the relaxation update discipline.
type Method int

const (
	// Jacobi updates every interior pixel from a snapshot of the
	// previous sweep. Needs two field buffers and converges slowest per
	// sweep, but is the easiest discipline to reason about.
	Jacobi Method = iota

	// GaussSeidel updates in place in two parity half-sweeps (red, then
	// black), so each update sees the freshest resident values.
	// Converges roughly twice as fast as Jacobi per sweep.
	GaussSeidel

	// SOR is the red-black Gauss-Seidel update blended with the previous
	// value by a relaxation factor ω > 1. Converges in far fewer sweeps
	// and is the production default.
	SOR
)

// String returns a string representation of the method.
func (m Method) String() string {
	switch m {
	case Jacobi:
		return "jacobi"
	case GaussSeidel:
		return "gauss-seidel"
	case SOR:
		return "sor"
	default:
		return "unknown"
	}
}

// residualInterval is the sweep stride at which adaptive termination
// checks the RMS residual.
const residualInterval = 10

// Field holds the solved potential, one float64 per pixel. Boundary and
// outside pixels are exactly 0; interior values grow toward the center
// of the shape. Read-only once the solve returns.
type Field struct {
	width  int
	height int
	values []float64
}

// Width returns the field width.
func (f *Field) Width() int { return f.width }

// Height returns the field height.
func (f *Field) Height() int { return f.height }

// At returns the potential at (x, y).
// Returns 0 for coordinates outside the field bounds.
func (f *Field) At(x, y int) float64 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.values[y*f.width+x]
}

// Values returns the underlying potential slice in row-major order.
// The slice is owned by the field and must not be modified.
func (f *Field) Values() []float64 {
	return f.values
}

// interiorMax returns the maximum potential over the interior pixels of
// the mask. Boundary and outside pixels are excluded so that a
// degenerate all-zero interior is detectable. Returns 0 for an empty
// interior.
func (f *Field) interiorMax(m *Mask) float64 {
	var maxVal float64
	for _, p := range m.interior {
		if v := f.values[p]; v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Stats reports solver metrics for one solve. Metrics are returned
// rather than logged so that the hot sweep loop stays free of
// observability calls.
type Stats struct {
	// Method is the update discipline that ran.
	Method Method

	// GridWidth and GridHeight are the dimensions of the grid the solve
	// actually ran on, which differ from the source dimensions in
	// working-resolution mode.
	GridWidth  int
	GridHeight int

	// Sweeps is the number of full relaxation sweeps performed.
	Sweeps int

	// Residual is the RMS residual |4u − S − C| over interior pixels
	// after the final sweep. NaN when the interior is empty.
	Residual float64

	// Converged is true when adaptive termination stopped because the
	// residual fell below the threshold (always false for fixed-count
	// termination).
	Converged bool

	// Elapsed is the wall time of the solve, excluding mask and index
	// construction.
	Elapsed time.Duration
}

// Solve runs the relaxation solver on a prebuilt mask and returns the
// potential field with solve metrics.
//
// The neighbor table is optional: pass the table built by
// [BuildNeighborTable] for the indexed fast path, or nil to resolve
// neighbor contributions on the fly with per-pixel bounds and mask
// checks. Both paths produce identical numbers.
//
// Termination follows the options: a fixed sweep count (explicit via
// WithFixedSweeps, otherwise derived from the resolution scaling law),
// or adaptive residual-based convergence. An empty interior performs no
// sweeps and yields an all-zero field.
func Solve(m *Mask, t *NeighborTable, opts ...Option) (*Field, Stats) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.useTable {
		t = nil
	}
	return solve(m, t, &cfg)
}

func solve(m *Mask, t *NeighborTable, cfg *config) (*Field, Stats) {
	start := time.Now()

	f := &Field{
		width:  m.width,
		height: m.height,
		values: make([]float64, m.width*m.height),
	}
	stats := Stats{
		Method:     cfg.method,
		GridWidth:  m.width,
		GridHeight: m.height,
		Residual:   math.NaN(),
	}

	if m.InteriorCount() == 0 {
		Logger().Warn("solve skipped: empty interior",
			"width", m.width, "height", m.height)
		stats.Elapsed = time.Since(start)
		return f, stats
	}

	s := newSolveState(m, t, cfg, f.values)
	defer s.close()

	limit := cfg.fixedSweeps
	if limit <= 0 {
		limit = sweepsFor(cfg.method, m.width, m.height, cfg.gradientProportion, cfg.referenceSize)
	}
	if cfg.adaptive || limit > cfg.maxSweeps {
		limit = cfg.maxSweeps
	}

	for sweep := 1; sweep <= limit; sweep++ {
		switch cfg.method {
		case Jacobi:
			s.sweepJacobi()
		case GaussSeidel:
			s.sweepRedBlack(1.0)
		default:
			s.sweepRedBlack(cfg.omega)
		}
		stats.Sweeps = sweep

		if cfg.adaptive && sweep%residualInterval == 0 {
			r := s.residual()
			stats.Residual = r
			if r < cfg.threshold {
				stats.Converged = true
				break
			}
		}
	}

	// Jacobi swaps buffers each sweep; make sure the field sees the
	// final one.
	f.values = s.u
	stats.Residual = s.residual()
	stats.Elapsed = time.Since(start)

	Logger().Debug("solve complete",
		"method", cfg.method.String(),
		"grid", []int{m.width, m.height},
		"interior", m.InteriorCount(),
		"sweeps", stats.Sweeps,
		"residual", stats.Residual,
		"elapsed", stats.Elapsed)

	return f, stats
}

// solveState owns the mutable buffers of one solve. Each Render call
// builds its own state; nothing is shared or cached across invocations.
type solveState struct {
	m   *Mask
	t   *NeighborTable // nil selects the on-the-fly neighbor path
	cfg *config

	u    []float64
	next []float64 // Jacobi only

	// red and black hold positions into the table rows on the indexed
	// path, or pixel indices directly on the on-the-fly path.
	red   []int32
	black []int32

	pool *parallel.Pool
}

func newSolveState(m *Mask, t *NeighborTable, cfg *config, u []float64) *solveState {
	s := &solveState{m: m, t: t, cfg: cfg, u: u}

	if t != nil {
		s.red, s.black = t.red, t.black
	} else {
		for _, p := range m.interior {
			x := int(p) % m.width
			y := int(p) / m.width
			if (x+y)&1 == 0 {
				s.red = append(s.red, p)
			} else {
				s.black = append(s.black, p)
			}
		}
	}

	if cfg.method == Jacobi {
		s.next = make([]float64, len(u))
	}
	if cfg.workers != 1 {
		s.pool = parallel.NewPool(cfg.workers)
	}
	return s
}

func (s *solveState) close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// onTheFlySum resolves the stencil sum for pixel index p with explicit
// bounds and mask checks, matching the indexed path bit for bit.
func (s *solveState) onTheFlySum(u []float64, p int32) float64 {
	m := s.m
	x := int(p) % m.width
	y := int(p) / m.width
	var sum float64
	if x+1 < m.width && m.inside[p+1] {
		sum += u[p+1]
	}
	if x-1 >= 0 && m.inside[p-1] {
		sum += u[p-1]
	}
	if y-1 >= 0 && m.inside[p-int32(m.width)] {
		sum += u[p-int32(m.width)]
	}
	if y+1 < m.height && m.inside[p+int32(m.width)] {
		sum += u[p+int32(m.width)]
	}
	return sum
}

// sweepJacobi computes one full sweep into the scratch buffer from a
// snapshot of the previous sweep, then swaps buffers. Clearing the
// scratch buffer first re-clamps boundary and outside pixels to 0, since
// the blanket write below only covers the interior.
func (s *solveState) sweepJacobi() {
	clear(s.next)
	n := s.interiorLen()
	s.run(n, func(lo, hi int) { s.jacobiSpan(lo, hi) })
	s.u, s.next = s.next, s.u
}

func (s *solveState) jacobiSpan(lo, hi int) {
	c := s.cfg.source
	if s.t != nil {
		for k := lo; k < hi; k++ {
			p := s.t.interior[k]
			s.next[p] = (c + s.t.stencilSum(s.u, int32(k))) * 0.25
		}
	} else {
		for _, p := range s.m.interior[lo:hi] {
			s.next[p] = (c + s.onTheFlySum(s.u, p)) * 0.25
		}
	}
}

// sweepRedBlack runs one red half-sweep then one black half-sweep in
// place. omega == 1 is plain Gauss-Seidel; omega > 1 over-relaxes.
// The red-then-black order is fixed: black updates must see fresh red
// values, or convergence behavior changes.
func (s *solveState) sweepRedBlack(omega float64) {
	s.halfSweep(s.red, omega)
	s.halfSweep(s.black, omega)
}

func (s *solveState) halfSweep(class []int32, omega float64) {
	s.run(len(class), func(lo, hi int) { s.halfSweepSpan(class, lo, hi, omega) })
}

func (s *solveState) halfSweepSpan(class []int32, lo, hi int, omega float64) {
	c := s.cfg.source
	if s.t != nil {
		for _, k := range class[lo:hi] {
			p := s.t.interior[k]
			v := (c + s.t.stencilSum(s.u, k)) * 0.25
			if omega != 1 {
				v = omega*v + (1-omega)*s.u[p]
			}
			s.u[p] = v
		}
	} else {
		for _, p := range class[lo:hi] {
			v := (c + s.onTheFlySum(s.u, p)) * 0.25
			if omega != 1 {
				v = omega*v + (1-omega)*s.u[p]
			}
			s.u[p] = v
		}
	}
}

// residual returns the RMS of |4u(p) − S(p) − C| over interior pixels.
func (s *solveState) residual() float64 {
	n := s.interiorLen()
	if n == 0 {
		return math.NaN()
	}
	c := s.cfg.source
	var sum float64
	if s.t != nil {
		for k := range s.t.interior {
			p := s.t.interior[k]
			d := 4*s.u[p] - s.t.stencilSum(s.u, int32(k)) - c
			sum += d * d
		}
	} else {
		for _, p := range s.m.interior {
			d := 4*s.u[p] - s.onTheFlySum(s.u, p) - c
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(n))
}

func (s *solveState) interiorLen() int {
	if s.t != nil {
		return s.t.Len()
	}
	return len(s.m.interior)
}

// run splits [0, n) into spans and executes fn over them, on the worker
// pool when one is configured and inline otherwise. Every span within
// one call is independent of every other, so the split never changes
// results.
func (s *solveState) run(n int, fn func(lo, hi int)) {
	if s.pool == nil || n < parallel.MinSpan*2 {
		fn(0, n)
		return
	}
	s.pool.ForSpans(n, fn)
}
