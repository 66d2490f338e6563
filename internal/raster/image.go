package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// MaxSampleLimit is the largest maximum sample value an Image may declare.
const MaxSampleLimit = 65535

// ErrInvalidImage is returned by New when the supplied geometry or samples
// cannot form a valid Image.
var ErrInvalidImage = errors.New("invalid raster image")

// Image is an immutable grayscale sample grid.
type Image struct {
	width    int
	height   int
	maxValue int
	pix      []uint16
}

// New builds an Image from row-major samples.
//
// New takes ownership of samples: the caller must not modify the slice after
// a successful call.
//
// Returns an error wrapping ErrInvalidImage when:
//   - width or height is not positive
//   - maxValue is outside [1, MaxSampleLimit]
//   - len(samples) != width*height
//   - any sample exceeds maxValue
func New(width, height, maxValue int, samples []uint16) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidImage, width, height)
	}
	if maxValue < 1 || maxValue > MaxSampleLimit {
		return nil, fmt.Errorf("%w: max value %d outside [1, %d]", ErrInvalidImage, maxValue, MaxSampleLimit)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: got %d samples, want %d for %dx%d",
			ErrInvalidImage, len(samples), width*height, width, height)
	}
	for i, s := range samples {
		if int(s) > maxValue {
			return nil, fmt.Errorf("%w: sample %d at (%d,%d) exceeds max value %d",
				ErrInvalidImage, s, i%width, i/width, maxValue)
		}
	}
	return &Image{
		width:    width,
		height:   height,
		maxValue: maxValue,
		pix:      samples,
	}, nil
}

// Uniform returns a width x height image with every sample set to value.
func Uniform(width, height, maxValue int, value uint16) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidImage, width, height)
	}
	samples := make([]uint16, width*height)
	for i := range samples {
		samples[i] = value
	}
	return New(width, height, maxValue, samples)
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// MaxValue returns the maximum sample value declared for the image.
func (img *Image) MaxValue() int { return img.maxValue }

// Len returns the number of samples, always Width()*Height().
func (img *Image) Len() int { return len(img.pix) }

// At returns the sample at (x, y). It panics if the coordinates are outside
// the image, like slice indexing does.
func (img *Image) At(x, y int) uint16 {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(fmt.Sprintf("raster: coordinates (%d,%d) outside %dx%d image", x, y, img.width, img.height))
	}
	return img.pix[y*img.width+x]
}

// Row returns a view of row y. The returned slice aliases the image and must
// not be modified.
func (img *Image) Row(y int) []uint16 {
	start := y * img.width
	return img.pix[start : start+img.width : start+img.width]
}

// Samples returns a copy of all samples in row-major order.
func (img *Image) Samples() []uint16 {
	out := make([]uint16, len(img.pix))
	copy(out, img.pix)
	return out
}

// SameShape reports whether img and other have the same width, height and
// max value.
func (img *Image) SameShape(other *Image) bool {
	return img.width == other.width && img.height == other.height && img.maxValue == other.maxValue
}

// Equal reports whether img and other have the same shape and samples.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	if !img.SameShape(other) {
		return false
	}
	for i, s := range img.pix {
		if other.pix[i] != s {
			return false
		}
	}
	return true
}

// Gray converts the image to an *image.Gray. Samples are rescaled to the
// 0-255 range when MaxValue is not 255.
func (img *Image) Gray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		row := img.Row(y)
		for x, s := range row {
			v := int(s)
			if img.maxValue != 255 {
				v = (v*255 + img.maxValue/2) / img.maxValue
			}
			out.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return out
}

// FromGray builds an 8-bit Image (max value 255) from an *image.Gray.
func FromGray(src *image.Gray) (*Image, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	samples := make([]uint16, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samples = append(samples, uint16(src.GrayAt(x, y).Y))
		}
	}
	return New(width, height, 255, samples)
}
