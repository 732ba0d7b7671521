package liquidlogo

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Output is the terminal artifact of the pipeline: one (grayscale,
// coverage) byte pair per pixel at the caller's source resolution,
// handed to an external encoder for serialization.
//
// Outside pixels are white with zero coverage. Inside pixels carry the
// remapped bevel intensity: 255 at the shape edge falling toward 0 at
// the bright interior core.
type Output struct {
	width    int
	height   int
	gray     []uint8
	coverage []uint8
}

func newOutput(width, height int) *Output {
	return &Output{
		width:    width,
		height:   height,
		gray:     make([]uint8, width*height),
		coverage: make([]uint8, width*height),
	}
}

// Width returns the output width.
func (o *Output) Width() int { return o.width }

// Height returns the output height.
func (o *Output) Height() int { return o.height }

// Gray returns the grayscale value at (x, y).
// Returns 255 (white) for coordinates outside the output bounds.
func (o *Output) Gray(x, y int) uint8 {
	if x < 0 || x >= o.width || y < 0 || y >= o.height {
		return 255
	}
	return o.gray[y*o.width+x]
}

// Coverage returns the coverage (alpha) value at (x, y).
// Returns 0 for coordinates outside the output bounds.
func (o *Output) Coverage(x, y int) uint8 {
	if x < 0 || x >= o.width || y < 0 || y >= o.height {
		return 0
	}
	return o.coverage[y*o.width+x]
}

// ToImage converts the output to an image.NRGBA with the grayscale value
// replicated across R, G, B and the coverage in the alpha channel.
func (o *Output) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, o.width, o.height))
	for i := range o.gray {
		img.Pix[i*4+0] = o.gray[i]
		img.Pix[i*4+1] = o.gray[i]
		img.Pix[i*4+2] = o.gray[i]
		img.Pix[i*4+3] = o.coverage[i]
	}
	return img
}

// SavePNG saves the output to a PNG file.
func (o *Output) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, o.ToImage())
}

// At implements the image.Image interface.
func (o *Output) At(x, y int) color.Color {
	g := o.Gray(x, y)
	return color.NRGBA{R: g, G: g, B: g, A: o.Coverage(x, y)}
}

// Bounds implements the image.Image interface.
func (o *Output) Bounds() image.Rectangle {
	return image.Rect(0, 0, o.width, o.height)
}

// ColorModel implements the image.Image interface.
func (o *Output) ColorModel() color.Model {
	return color.NRGBAModel
}

// normalize rescales the solved field by its interior maximum and remaps
// it to grayscale: gray = 255·(1 − (u/max)^α). Outside pixels become
// opaque white with zero coverage; inside pixels get full coverage.
//
// The maximum is taken over interior pixels only so that a degenerate
// all-zero interior is detected rather than masked by the clamped-0
// boundary band. A zero maximum yields flat white inside rather than a
// division by zero.
func normalize(f *Field, m *Mask, contrast float64) *Output {
	out := newOutput(m.width, m.height)

	maxVal := f.interiorMax(m)
	if maxVal == 0 {
		Logger().Warn("normalize: zero field maximum, emitting flat white",
			"width", m.width, "height", m.height)
	}

	for i := range out.gray {
		if !m.inside[i] {
			out.gray[i] = 255
			continue
		}
		out.coverage[i] = 255
		if maxVal == 0 {
			out.gray[i] = 255
			continue
		}
		t := f.values[i] / maxVal
		if t < 0 {
			// SOR overshoot can leave small negative transients at low
			// sweep counts.
			t = 0
		}
		if contrast != 1 {
			t = math.Pow(t, contrast)
		}
		out.gray[i] = uint8(255*(1-t) + 0.5)
	}

	return out
}

// reconcile re-derives the final output against the original-resolution
// mask after a low-resolution solve was upsampled to source size.
//
// The upsampled gray/coverage cannot be trusted alone: interpolation
// bleeds values across the shape edge. Per source pixel, the original
// classification wins — outside pixels become white with zero coverage,
// and inside pixels keep the upsampled gray but take their coverage from
// the original alpha, preserving true anti-aliased edges. Inside pixels
// whose upsampled counterpart carries zero coverage are forced to gray 0
// rather than leaking a stale interpolated value.
func reconcile(up *image.NRGBA, src *Pixmap, m *Mask) *Output {
	out := newOutput(src.width, src.height)

	for i := range out.gray {
		if !m.inside[i] {
			out.gray[i] = 255
			continue
		}
		g := up.Pix[i*4]
		if up.Pix[i*4+3] == 0 {
			g = 0
		}
		out.gray[i] = g
		out.coverage[i] = src.data[i*4+3]
	}

	return out
}
