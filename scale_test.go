package liquidlogo

import "testing"

func TestSweepsForScalesQuadraticallyWithResolution(t *testing.T) {
	base := sweepsFor(GaussSeidel, 200, 200, baseGradientProportion, 400)
	doubled := sweepsFor(GaussSeidel, 400, 400, baseGradientProportion, 400)

	// Doubling the linear resolution quadruples the sweeps.
	if want := base * 4; doubled != want {
		t.Errorf("sweeps at 2x resolution = %d, want %d (4x of %d)", doubled, want, base)
	}
}

func TestSweepsForScalesLinearlyWithGradientProportion(t *testing.T) {
	base := sweepsFor(SOR, 400, 400, baseGradientProportion, 400)
	doubled := sweepsFor(SOR, 400, 400, 2*baseGradientProportion, 400)

	if want := base * 2; doubled != want {
		t.Errorf("sweeps at 2x gradient proportion = %d, want %d", doubled, want)
	}
}

func TestSweepsForUsesShorterSide(t *testing.T) {
	square := sweepsFor(GaussSeidel, 200, 200, baseGradientProportion, 400)
	wide := sweepsFor(GaussSeidel, 1000, 200, baseGradientProportion, 400)

	if square != wide {
		t.Errorf("sweeps for 1000x200 = %d, want %d (shorter side governs)", wide, square)
	}
}

func TestSweepsForBounds(t *testing.T) {
	if got := sweepsFor(GaussSeidel, 2, 2, baseGradientProportion, 400); got != 1 {
		t.Errorf("tiny grid sweeps = %d, want floor of 1", got)
	}
	if got := sweepsFor(Jacobi, 10000, 10000, 1.0, 400); got != sweepHardCap {
		t.Errorf("huge grid sweeps = %d, want hard cap %d", got, sweepHardCap)
	}
}

func TestSweepsForMethodBases(t *testing.T) {
	j := sweepsFor(Jacobi, 400, 400, baseGradientProportion, 400)
	gs := sweepsFor(GaussSeidel, 400, 400, baseGradientProportion, 400)
	sor := sweepsFor(SOR, 400, 400, baseGradientProportion, 400)

	if j != 2*gs {
		t.Errorf("jacobi base %d, want 2x gauss-seidel base %d", j, gs)
	}
	if sor >= gs {
		t.Errorf("sor base %d should be below gauss-seidel base %d", sor, gs)
	}
}

func TestClampSolveSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"within band", 800, 600, 800, 600},
		{"at lower bound", minSolveSize, minSolveSize / 2, minSolveSize, minSolveSize / 2},
		{"below band", 32, 16, minSolveSize, minSolveSize / 2},
		{"above band", maxSolveSize * 2, maxSolveSize, maxSolveSize, maxSolveSize / 2},
		{"tall above band", 1000, maxSolveSize * 4, 250, maxSolveSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := clampSolveSize(tt.w, tt.h)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("clampSolveSize(%d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitLongSide(t *testing.T) {
	tests := []struct {
		name         string
		w, h, target int
		wantW, wantH int
	}{
		{"landscape", 1000, 500, 500, 500, 250},
		{"portrait", 500, 1000, 500, 250, 500},
		{"square", 800, 800, 400, 400, 400},
		{"extreme aspect", 2000, 1, 500, 500, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitLongSide(tt.w, tt.h, tt.target)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitLongSide(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, tt.target, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizePixmapIdentity(t *testing.T) {
	pm := diskPixmap(64, 28)
	if got := resizePixmap(pm, 64, 64); got != pm {
		t.Error("resize to identical dimensions should return the input pixmap")
	}
}

func TestResizePixmapDimensions(t *testing.T) {
	pm := diskPixmap(64, 28)
	small := resizePixmap(pm, 32, 16)
	if small.Width() != 32 || small.Height() != 16 {
		t.Errorf("resized to %dx%d, want 32x16", small.Width(), small.Height())
	}
}
