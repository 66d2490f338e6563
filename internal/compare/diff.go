package compare

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-gradient/internal/raster"
)

// Ramp endpoints for the difference map: identical pixels are black, the
// largest difference is yellow, with red in between.
var (
	rampLow  = colorful.Color{R: 0, G: 0, B: 0}
	rampMid  = colorful.Color{R: 1, G: 0, B: 0}
	rampHigh = colorful.Color{R: 1, G: 1, B: 0}
)

// DiffImage renders |got - want| for every pixel.
//
// Differences are normalised to the largest difference in the pair and mapped
// onto a black -> red -> yellow ramp blended in CIE-Lab, so a single ±1
// mismatch is as visible as a saturated one. Identical images produce an
// all-black result.
func DiffImage(got, want *raster.Image) (*image.NRGBA, error) {
	if got == nil || want == nil || !got.SameShape(want) {
		return nil, fmt.Errorf("%w: cannot build difference image", ErrShapeMismatch)
	}

	width, height := got.Width(), got.Height()
	deltas := make([]int, width*height)
	maxDelta := 0
	for y := 0; y < height; y++ {
		gotRow, wantRow := got.Row(y), want.Row(y)
		for x := 0; x < width; x++ {
			d := int(gotRow[x]) - int(wantRow[x])
			if d < 0 {
				d = -d
			}
			deltas[y*width+x] = d
			if d > maxDelta {
				maxDelta = d
			}
		}
	}

	canvas := imaging.New(width, height, color.Black)
	if maxDelta == 0 {
		return canvas, nil
	}

	for i, d := range deltas {
		if d == 0 {
			continue
		}
		r, g, b := rampColor(float64(d) / float64(maxDelta)).RGB255()
		canvas.SetNRGBA(i%width, i/width, color.NRGBA{R: r, G: g, B: b, A: 255})
	}
	return canvas, nil
}

// rampColor maps t in [0, 1] onto the difference ramp.
func rampColor(t float64) colorful.Color {
	if t <= 0.5 {
		return rampLow.BlendLab(rampMid, t*2).Clamped()
	}
	return rampMid.BlendLab(rampHigh, (t-0.5)*2).Clamped()
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling so
// individual pixels stay distinguishable. Factors below 2 return img as NRGBA
// unchanged in size.
func Scale(img image.Image, factor int) *image.NRGBA {
	if factor < 2 {
		return imaging.Clone(img)
	}
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, imaging.NearestNeighbor)
}

// SaveDiff writes img to path. The format is chosen from the file extension
// (PNG, JPEG, GIF, TIFF or BMP).
func SaveDiff(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save difference image: %w", err)
	}
	return nil
}
