package liquidlogo

import "image/color"

// Test shapes are drawn as black logos on an opaque white background,
// which the classifier treats as outside.

var (
	testWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	testBlack = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

func colorWithAlpha(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// whitePixmap returns an all-background pixmap.
func whitePixmap(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Fill(testWhite)
	return pm
}

// diskPixmap returns a size×size pixmap with a centered black disk of
// the given radius.
func diskPixmap(size, radius int) *Pixmap {
	pm := whitePixmap(size, size)
	c := float64(size-1) / 2
	r2 := float64(radius) * float64(radius)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - c
			dy := float64(y) - c
			if dx*dx+dy*dy <= r2 {
				pm.SetPixel(x, y, testBlack)
			}
		}
	}
	return pm
}

// squarePixmap returns a size×size pixmap with a black square inset by
// margin pixels on every side.
func squarePixmap(size, margin int) *Pixmap {
	pm := whitePixmap(size, size)
	for y := margin; y < size-margin; y++ {
		for x := margin; x < size-margin; x++ {
			pm.SetPixel(x, y, testBlack)
		}
	}
	return pm
}

// squareWithHolePixmap is squarePixmap with a single white pixel carved
// out at (hx, hy).
func squareWithHolePixmap(size, margin, hx, hy int) *Pixmap {
	pm := squarePixmap(size, margin)
	pm.SetPixel(hx, hy, testWhite)
	return pm
}
