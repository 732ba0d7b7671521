package liquidlogo

import (
	"math"
	"testing"
)

// distFromCenter returns the distance of (x, y) from the pixmap center
// used by diskPixmap.
func distFromCenter(size, x, y int) float64 {
	c := float64(size-1) / 2
	dx := float64(x) - c
	dy := float64(y) - c
	return math.Hypot(dx, dy)
}

func TestBoundaryInvariant(t *testing.T) {
	m := NewMask(diskPixmap(48, 20))
	tbl := BuildNeighborTable(m)

	for _, method := range []Method{Jacobi, GaussSeidel, SOR} {
		t.Run(method.String(), func(t *testing.T) {
			f, _ := Solve(m, tbl, WithMethod(method), WithFixedSweeps(60))

			for y := 0; y < 48; y++ {
				for x := 0; x < 48; x++ {
					u := f.At(x, y)
					switch {
					case !m.Inside(x, y):
						if u != 0 {
							t.Fatalf("outside pixel (%d,%d) has potential %v", x, y, u)
						}
					case m.Boundary(x, y):
						if u != 0 {
							t.Fatalf("boundary pixel (%d,%d) has potential %v", x, y, u)
						}
					default:
						// Every interior pixel picks up at least C/4 on
						// the first sweep.
						if u <= 0 {
							t.Fatalf("interior pixel (%d,%d) has potential %v", x, y, u)
						}
					}
				}
			}
		})
	}
}

func TestDiskPotential(t *testing.T) {
	// 64x64 grid, disk of radius 28, C=0.01, 300 Gauss-Seidel sweeps.
	m := NewMask(diskPixmap(64, 28))
	tbl := BuildNeighborTable(m)
	f, stats := Solve(m, tbl,
		WithMethod(GaussSeidel),
		WithSourceTerm(0.01),
		WithFixedSweeps(300))

	if stats.Sweeps != 300 {
		t.Fatalf("Sweeps = %d, want 300", stats.Sweeps)
	}

	center := f.At(31, 31)
	if center <= 0 {
		t.Fatalf("center potential = %v, want > 0", center)
	}

	// The center must beat every point within 2 pixels of the rim.
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if !m.Inside(x, y) {
				continue
			}
			if distFromCenter(64, x, y) > 26 && f.At(x, y) >= center {
				t.Errorf("rim pixel (%d,%d) = %v >= center %v", x, y, f.At(x, y), center)
			}
		}
	}

	// Radially monotone decreasing from center outward, averaged over
	// rings to absorb grid anisotropy.
	ringSum := make([]float64, 29)
	ringN := make([]int, 29)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if !m.Inside(x, y) {
				continue
			}
			r := int(distFromCenter(64, x, y))
			if r < len(ringSum) {
				ringSum[r] += f.At(x, y)
				ringN[r]++
			}
		}
	}
	prev := math.Inf(1)
	for r := 0; r < len(ringSum); r++ {
		if ringN[r] == 0 {
			continue
		}
		avg := ringSum[r] / float64(ringN[r])
		if avg > prev+1e-9 {
			t.Errorf("ring %d average %v exceeds ring %d average %v", r, avg, r-1, prev)
		}
		prev = avg
	}
}

func TestSquareWithHole(t *testing.T) {
	// A carved-out center pixel pins the field to 0 on its ring; the
	// solved field must dip smoothly into that ring, not jump.
	size := 33
	m := NewMask(squareWithHolePixmap(size, 2, 16, 16))
	tbl := BuildNeighborTable(m)
	f, _ := Solve(m, tbl, WithMethod(GaussSeidel), WithFixedSweeps(300))

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if got := f.At(16+dx, 16+dy); got != 0 {
				t.Errorf("hole ring pixel (%d,%d) = %v, want 0", 16+dx, 16+dy, got)
			}
		}
	}

	// Walking east from the ring the field must climb back up for a
	// few steps: a local minimum at the hole, no discontinuity.
	prev := 0.0
	for step := 2; step <= 6; step++ {
		u := f.At(16+step, 16)
		if u <= prev {
			t.Errorf("field does not climb away from hole: u(+%d) = %v <= %v", step, u, prev)
		}
		prev = u
	}
}

func TestResidualMonotone(t *testing.T) {
	pm := diskPixmap(48, 20)
	for _, method := range []Method{GaussSeidel, SOR} {
		t.Run(method.String(), func(t *testing.T) {
			m := NewMask(pm)
			tbl := BuildNeighborTable(m)

			prev := math.Inf(1)
			for _, sweeps := range []int{30, 60, 120, 240} {
				_, stats := Solve(m, tbl, WithMethod(method), WithFixedSweeps(sweeps))
				if stats.Residual > prev*(1+1e-9) {
					t.Errorf("residual after %d sweeps = %v, above previous checkpoint %v",
						sweeps, stats.Residual, prev)
				}
				prev = stats.Residual
			}
		})
	}
}

func TestOnTheFlyMatchesIndexed(t *testing.T) {
	m := NewMask(diskPixmap(48, 20))
	tbl := BuildNeighborTable(m)

	for _, method := range []Method{Jacobi, GaussSeidel, SOR} {
		t.Run(method.String(), func(t *testing.T) {
			indexed, _ := Solve(m, tbl, WithMethod(method), WithFixedSweeps(80))
			onTheFly, _ := Solve(m, nil, WithMethod(method), WithFixedSweeps(80))

			for i, v := range indexed.Values() {
				if onTheFly.Values()[i] != v {
					t.Fatalf("pixel %d: on-the-fly %v != indexed %v", i, onTheFly.Values()[i], v)
				}
			}
		})
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	// Large enough that the half-sweep spans actually hit the pool.
	m := NewMask(diskPixmap(128, 60))
	tbl := BuildNeighborTable(m)

	for _, method := range []Method{Jacobi, GaussSeidel, SOR} {
		t.Run(method.String(), func(t *testing.T) {
			serial, _ := Solve(m, tbl, WithMethod(method), WithFixedSweeps(40))
			par, _ := Solve(m, tbl, WithMethod(method), WithFixedSweeps(40), WithWorkers(4))

			for i, v := range serial.Values() {
				if par.Values()[i] != v {
					t.Fatalf("pixel %d: parallel %v != serial %v", i, par.Values()[i], v)
				}
			}
		})
	}
}

func TestEmptyInterior(t *testing.T) {
	tests := []struct {
		name string
		pm   *Pixmap
	}{
		{"all background", whitePixmap(16, 16)},
		// A 2-pixel-thick bar is all boundary, no interior.
		{"all boundary", func() *Pixmap {
			pm := whitePixmap(16, 16)
			for x := 2; x < 14; x++ {
				pm.SetPixel(x, 7, testBlack)
				pm.SetPixel(x, 8, testBlack)
			}
			return pm
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(tt.pm)
			tbl := BuildNeighborTable(m)
			f, stats := Solve(m, tbl)

			if stats.Sweeps != 0 {
				t.Errorf("Sweeps = %d, want 0", stats.Sweeps)
			}
			if !math.IsNaN(stats.Residual) {
				t.Errorf("Residual = %v, want NaN", stats.Residual)
			}
			for i, v := range f.Values() {
				if v != 0 {
					t.Fatalf("pixel %d has potential %v in degenerate solve", i, v)
				}
			}
		})
	}
}

func TestSolveIdempotent(t *testing.T) {
	pm := diskPixmap(48, 20)

	run := func() *Field {
		m := NewMask(pm)
		tbl := BuildNeighborTable(m)
		f, _ := Solve(m, tbl, WithMethod(SOR), WithFixedSweeps(100))
		return f
	}

	a, b := run(), run()
	for i, v := range a.Values() {
		if b.Values()[i] != v {
			t.Fatalf("pixel %d differs between identical runs: %v != %v", i, b.Values()[i], v)
		}
	}
}

func TestAdaptiveConvergence(t *testing.T) {
	m := NewMask(diskPixmap(48, 20))
	tbl := BuildNeighborTable(m)

	f, stats := Solve(m, tbl, WithMethod(SOR), WithAdaptiveConvergence(1e-5))
	if !stats.Converged {
		t.Fatalf("solve did not converge: %d sweeps, residual %v", stats.Sweeps, stats.Residual)
	}
	if stats.Residual >= 1e-5 {
		t.Errorf("Residual = %v, want < 1e-5", stats.Residual)
	}
	if stats.Sweeps%residualInterval != 0 {
		t.Errorf("Sweeps = %d, want a multiple of the residual check interval", stats.Sweeps)
	}
	if f.At(23, 23) <= 0 {
		t.Error("converged field should be positive in the interior")
	}
}

func TestAdaptiveHitsSweepCap(t *testing.T) {
	m := NewMask(diskPixmap(48, 20))
	tbl := BuildNeighborTable(m)

	// An unreachable threshold runs the solve into the cap.
	_, stats := Solve(m, tbl,
		WithMethod(GaussSeidel),
		WithAdaptiveConvergence(0),
		WithMaxSweeps(20))
	if stats.Converged {
		t.Error("solve should not report convergence at threshold 0")
	}
	if stats.Sweeps != 20 {
		t.Errorf("Sweeps = %d, want 20", stats.Sweeps)
	}
}

func TestSolveDerivesSweepCountFromScalingLaw(t *testing.T) {
	m := NewMask(diskPixmap(64, 28))
	tbl := BuildNeighborTable(m)

	_, stats := Solve(m, tbl, WithMethod(GaussSeidel))
	want := sweepsFor(GaussSeidel, 64, 64, baseGradientProportion, defaultReferenceSize)
	if stats.Sweeps != want {
		t.Errorf("Sweeps = %d, want %d from the scaling law", stats.Sweeps, want)
	}
}

func TestMethodsAgreeAtConvergence(t *testing.T) {
	m := NewMask(diskPixmap(32, 12))
	tbl := BuildNeighborTable(m)

	run := func(method Method) *Field {
		f, stats := Solve(m, tbl, WithMethod(method), WithAdaptiveConvergence(1e-9))
		if !stats.Converged {
			t.Fatalf("%s did not converge within the sweep cap", method)
		}
		return f
	}

	ref := run(GaussSeidel)
	for _, method := range []Method{Jacobi, SOR} {
		f := run(method)
		for i, v := range ref.Values() {
			if math.Abs(f.Values()[i]-v) > 1e-4 {
				t.Fatalf("%s disagrees with gauss-seidel at pixel %d: %v != %v",
					method, i, f.Values()[i], v)
			}
		}
	}
}
