package gradient

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-gradient/internal/raster"
)

// MinSize is the smallest width and height the 3x3 kernels can be centred on.
const MinSize = 3

// Kernel is a 3x3 integer convolution matrix indexed [row][column].
type Kernel [3][3]int

var (
	sobelX = Kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = Kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Options configures ComputeWithOptions.
type Options struct {
	// Border is the policy for samples outside the image.
	Border Border

	// Parallel splits the rows across goroutines. Output is identical
	// either way.
	Parallel bool
}

// DefaultOptions returns replicate-edge borders with parallel rows.
func DefaultOptions() Options {
	return Options{Border: BorderReplicate, Parallel: true}
}

// Result holds the three gradient images derived from one source image.
// Each has the source's width, height and max value.
type Result struct {
	Horizontal *raster.Image
	Vertical   *raster.Image
	Magnitude  *raster.Image
}

// Compute runs ComputeWithOptions with DefaultOptions.
func Compute(img *raster.Image) (*Result, error) {
	return ComputeWithOptions(img, DefaultOptions())
}

// ComputeWithOptions computes the horizontal, vertical and magnitude Sobel
// gradients of img.
//
// Parameters:
//   - img: Source image, at least MinSize x MinSize.
//   - opts: Border policy and parallelism.
//
// Returns:
//   - *Result: Three images with the shape of img.
//   - error: An *InvalidInputError when img is nil, smaller than 3x3, or
//     opts.Border is not a known policy. No partial result is returned.
//
// For each pixel the raw derivatives Gx and Gy are computed once and reused
// for all three outputs. Directional outputs store min(|G|, max); magnitude
// stores min(round(sqrt(Gx²+Gy²)), max).
func ComputeWithOptions(img *raster.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, invalidf(0, 0, "nil image")
	}
	width, height := img.Width(), img.Height()
	if width < MinSize || height < MinSize {
		return nil, invalidf(width, height, "image is %dx%d, kernel needs at least %dx%d",
			width, height, MinSize, MinSize)
	}
	if !opts.Border.valid() {
		return nil, invalidf(width, height, "unknown border policy %v", opts.Border)
	}

	maxValue := img.MaxValue()
	horizontal := make([]uint16, width*height)
	vertical := make([]uint16, width*height)
	magnitude := make([]uint16, width*height)

	rows := func(start, end int) {
		var window [3][]uint16
		for y := start; y < end; y++ {
			for ky := -1; ky <= 1; ky++ {
				window[ky+1] = nil
				if py, ok := opts.Border.resolve(y+ky, height); ok {
					window[ky+1] = img.Row(py)
				}
			}

			offset := y * width
			for x := 0; x < width; x++ {
				gx, gy := derivatives(&window, x, width, opts.Border)
				horizontal[offset+x] = saturate(abs(gx), maxValue)
				vertical[offset+x] = saturate(abs(gy), maxValue)
				magnitude[offset+x] = saturate(norm(gx, gy), maxValue)
			}
		}
	}

	if opts.Parallel {
		parallel.Line(height, rows)
	} else {
		rows(0, height)
	}

	h, err := raster.New(width, height, maxValue, horizontal)
	if err != nil {
		return nil, fmt.Errorf("failed to build horizontal gradient: %w", err)
	}
	v, err := raster.New(width, height, maxValue, vertical)
	if err != nil {
		return nil, fmt.Errorf("failed to build vertical gradient: %w", err)
	}
	m, err := raster.New(width, height, maxValue, magnitude)
	if err != nil {
		return nil, fmt.Errorf("failed to build gradient magnitude: %w", err)
	}

	return &Result{Horizontal: h, Vertical: v, Magnitude: m}, nil
}

// derivatives returns the raw Gx and Gy at column x. window holds the rows
// above, at and below the pixel; a nil row contributes zeros.
func derivatives(window *[3][]uint16, x, width int, border Border) (gx, gy int) {
	for kx := -1; kx <= 1; kx++ {
		px, ok := border.resolve(x+kx, width)
		if !ok {
			continue
		}
		for ky := 0; ky < 3; ky++ {
			row := window[ky]
			if row == nil {
				continue
			}
			v := int(row[px])
			gx += v * sobelX[ky][kx+1]
			gy += v * sobelY[ky][kx+1]
		}
	}
	return gx, gy
}

// norm returns round(sqrt(gx² + gy²)), rounding half away from zero.
func norm(gx, gy int) int {
	fx, fy := float64(gx), float64(gy)
	return int(math.Round(math.Sqrt(fx*fx + fy*fy)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// saturate clamps a non-negative derivative to the sample range.
func saturate(v, maxValue int) uint16 {
	return uint16(clamp(v, 0, maxValue))
}
